// Package store defines the persistence gateway the editor and auto-save
// pipeline write through. Implementations are key-based: forms are stored
// whole, but question appends/updates are atomically scoped to the
// question sub-key so concurrent saves for different questions of the
// same form never clobber each other.
package store

import (
	"context"
	"errors"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

var (
	// ErrNotFound signals a lookup for a form ID the store has never seen.
	ErrNotFound = errors.New("store: form not found")

	// ErrOperationFailed is the generic transient failure surfaced by
	// stores that simulate flaky backends. Callers treat it as retryable.
	ErrOperationFailed = errors.New("store: operation failed")
)

// Gateway is the asynchronous persistence surface consumed by the editor
// and the auto-save reconcilers. Operations may fail and may complete in
// a different order than they were issued; single-writer discipline per
// question is the caller's responsibility.
type Gateway interface {
	// CreateForm persists a new form, assigning timestamps. The returned
	// form is the authoritative persisted snapshot.
	CreateForm(ctx context.Context, form forms.Form) (forms.Form, error)

	// UpdateForm replaces the stored form wholesale (title edits,
	// question removal/reorder). UpdatedAt advances monotonically.
	UpdateForm(ctx context.Context, form forms.Form) (forms.Form, error)

	// AppendQuestion atomically appends a question to the form. The store
	// assigns the persisted question's ID, which may differ from any
	// client-side placeholder.
	AppendQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error)

	// UpdateQuestion atomically replaces the question with the matching
	// ID inside the form, appending it when absent.
	UpdateQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error)

	// ListForms returns every stored form.
	ListForms(ctx context.Context) ([]forms.Form, error)

	// GetForm returns the form with the given ID or ErrNotFound.
	GetForm(ctx context.Context, id string) (forms.Form, error)
}
