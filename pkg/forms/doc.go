// Package forms defines the schema model shared across the module: a Form
// is an ordered sequence of Questions, each carrying an optional
// ValidationRule and, for select questions, an ordered Option list. The
// types here are passive data; validation lives in pkg/validation and
// persistence in pkg/store.
package forms
