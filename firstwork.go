// Package firstwork exposes the module's primary entry points: building
// and editing form schemas with debounced auto-save, persisting them
// through a pluggable store, and rendering them for data entry with
// validation enforced on submission.
package firstwork

import (
	"context"

	"github.com/AdityaMittal31/FirstWork/pkg/editor"
	"github.com/AdityaMittal31/FirstWork/pkg/entry"
	entryhtml "github.com/AdityaMittal31/FirstWork/pkg/entry/html"
	entrytui "github.com/AdityaMittal31/FirstWork/pkg/entry/tui"
	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/store"
)

// Form re-exports the schema model's top-level type.
type Form = forms.Form

// Question re-exports the schema model's question type.
type Question = forms.Question

// FormValues maps question IDs to submitted scalars.
type FormValues = forms.FormValues

// RenderOptions carries per-request data for entry renderers.
type RenderOptions = entry.RenderOptions

// NewEditor creates a fresh form through the gateway and returns the
// editor bound to it.
func NewEditor(ctx context.Context, gateway store.Gateway, title string, options ...editor.Option) (*editor.Editor, error) {
	return editor.New(ctx, gateway, title, options...)
}

// LoadEditor opens an existing form for editing.
func LoadEditor(ctx context.Context, gateway store.Gateway, formID string, options ...editor.Option) (*editor.Editor, error) {
	return editor.Load(ctx, gateway, formID, options...)
}

// NewMemoryStore returns the in-memory gateway used by demos and tests.
func NewMemoryStore(options ...store.MemoryOption) *store.MemoryStore {
	return store.NewMemoryStore(options...)
}

// OpenSQLiteStore opens the durable SQLite-backed gateway.
func OpenSQLiteStore(ctx context.Context, path string) (*store.SQLiteStore, error) {
	return store.OpenSQLite(ctx, path)
}

// DefaultRegistry returns a registry with the built-in entry renderers
// (html, tui) registered.
func DefaultRegistry() (*entry.Registry, error) {
	registry := entry.NewRegistry()

	htmlRenderer, err := entryhtml.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(entrytui.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML renders the form's entry surface as standalone HTML. It is
// the simplest entry point for callers that just want markup.
func RenderHTML(ctx context.Context, form forms.Form, options entry.RenderOptions) ([]byte, error) {
	renderer, err := entryhtml.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, options)
}

// ParseSubmission validates a raw submission against the form atomically
// and returns the typed values, or the per-question failure messages.
func ParseSubmission(form forms.Form, raw map[string]string) (forms.FormValues, map[string][]string, error) {
	return entry.ParseSubmission(form, raw)
}
