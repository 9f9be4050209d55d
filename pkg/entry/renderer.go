package entry

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// Renderer converts a finalized form into a byte representation of its
// data-entry surface (HTML, terminal session output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form forms.Form, options RenderOptions) ([]byte, error)
}

// RenderOptions carries per-request data renderers can use without
// mutating the form: prefilled values, server-side validation errors, and
// theming.
type RenderOptions struct {
	// Action is the submission target emitted by HTML renderers.
	Action string

	// Method overrides the submission method (POST when empty).
	Method string

	// Values pre-populates controls, keyed by question ID.
	Values map[string]string

	// Errors surfaces validation feedback keyed by question ID so
	// renderers can show inline messages next to the failing control.
	Errors map[string][]string

	// Hidden lists extra hidden inputs (CSRF tokens and the like)
	// rendered alongside the questions.
	Hidden map[string]string

	// Theme configures go-theme driven styling: CSS variables and a
	// resolvable stylesheet asset.
	Theme *theme.RendererConfig
}
