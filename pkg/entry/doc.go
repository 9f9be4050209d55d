// Package entry renders finalized forms for data entry and validates
// submissions. Renderers implement the Renderer interface and register in
// a Registry; ParseSubmission enforces full-schema validation so no
// partial submission ever reaches the caller.
package entry
