// Package editor composes the authoritative in-memory form, one auto-save
// reconciler per question, and the persistence gateway into the editing
// surface the presentation layer binds to.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/AdityaMittal31/FirstWork/pkg/autosave"
	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/store"
	"github.com/AdityaMittal31/FirstWork/pkg/validation"
)

// Option customises an Editor.
type Option func(*Editor)

// WithDebounceWindow overrides the debounce window used by every
// reconciler this editor creates, and by the whole-form saver.
func WithDebounceWindow(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.window = d
		}
	}
}

// Editor owns a form and orchestrates its mutation: question add, update
// (through per-question reconcilers), delete, and debounced metadata
// saves. Reconcilers are keyed by question ID, created when a question is
// added and torn down when it is removed.
type Editor struct {
	gateway store.Gateway
	window  time.Duration

	mu          sync.Mutex
	form        forms.Form
	reconcilers map[string]*autosave.Reconciler
	saver       *autosave.FormSaver
	closed      bool
}

// New creates a fresh form through the gateway and returns an editor
// bound to it.
func New(ctx context.Context, gateway store.Gateway, title string, options ...Option) (*Editor, error) {
	if gateway == nil {
		return nil, fmt.Errorf("editor: gateway is required")
	}

	created, err := gateway.CreateForm(ctx, forms.NewForm(title))
	if err != nil {
		return nil, fmt.Errorf("editor: create form: %w", err)
	}

	return newEditor(gateway, created, options...)
}

// Load opens an existing form for editing. Each persisted question gets a
// reconciler seeded with its stored snapshot so unchanged edits are
// suppressed.
func Load(ctx context.Context, gateway store.Gateway, formID string, options ...Option) (*Editor, error) {
	if gateway == nil {
		return nil, fmt.Errorf("editor: gateway is required")
	}

	form, err := gateway.GetForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("editor: load form: %w", err)
	}

	return newEditor(gateway, form, options...)
}

func newEditor(gateway store.Gateway, form forms.Form, options ...Option) (*Editor, error) {
	e := &Editor{
		gateway:     gateway,
		window:      autosave.DefaultWindow,
		form:        form.Clone(),
		reconcilers: make(map[string]*autosave.Reconciler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	saver, err := autosave.NewFormSaver(gateway.UpdateForm, autosave.WithSaverWindow(e.window))
	if err != nil {
		return nil, err
	}
	e.saver = saver

	for _, q := range form.Questions {
		rec, err := e.newReconciler(q.ID, autosave.WithAcknowledged(q))
		if err != nil {
			return nil, err
		}
		e.reconcilers[q.ID] = rec
	}

	return e, nil
}

// Form returns a snapshot of the authoritative in-memory form, including
// optimistic edits that have not been persisted yet.
func (e *Editor) Form() forms.Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.Clone()
}

// AddQuestion appends a default question (text type, no validation) and
// persists the addition. The store assigns the persisted ID; when the
// append fails the question stays local under its placeholder ID and the
// next edit retries through the question's reconciler.
func (e *Editor) AddQuestion(ctx context.Context) (forms.Question, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return forms.Question{}, fmt.Errorf("editor: closed")
	}
	formID := e.form.ID
	e.mu.Unlock()

	q := forms.NewQuestion()
	persisted, err := e.gateway.AppendQuestion(ctx, formID, q)

	var recOpts []autosave.Option
	if err != nil {
		slog.Error("append question", slog.String("form_id", formID), slog.Any("error", err))
	} else {
		q = persisted
		recOpts = append(recOpts, autosave.WithAcknowledged(persisted))
	}

	rec, recErr := e.newReconciler(q.ID, recOpts...)
	if recErr != nil {
		return forms.Question{}, recErr
	}

	e.mu.Lock()
	e.form.Questions = append(e.form.Questions, q.Clone())
	e.reconcilers[q.ID] = rec
	e.mu.Unlock()

	if err != nil {
		return q, fmt.Errorf("editor: append question: %w", err)
	}
	return q, nil
}

// UpdateQuestion routes an edit to the question's reconciler: the local
// form reflects the edit immediately, and a validated persist is
// scheduled after the debounce window.
func (e *Editor) UpdateQuestion(id string, q forms.Question) error {
	e.mu.Lock()
	rec, ok := e.reconcilers[id]
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("editor: unknown question %q", id)
	}
	q.ID = id
	rec.SubmitEdit(q)
	return nil
}

// DeleteQuestion removes the question locally, tears down its reconciler
// (cancelling any pending persist so no ghost write fires afterward), and
// persists the removal.
func (e *Editor) DeleteQuestion(ctx context.Context, id string) error {
	e.mu.Lock()
	rec, ok := e.reconcilers[id]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("editor: unknown question %q", id)
	}
	delete(e.reconcilers, id)

	if idx := e.form.QuestionIndex(id); idx >= 0 {
		e.form.Questions = append(e.form.Questions[:idx], e.form.Questions[idx+1:]...)
	}
	snapshot := e.form.Clone()
	e.mu.Unlock()

	rec.Close()

	if _, err := e.gateway.UpdateForm(ctx, snapshot); err != nil {
		return fmt.Errorf("editor: persist question removal: %w", err)
	}
	return nil
}

// SaveMetadata updates the form title locally and schedules a debounced
// whole-form save, independent of any per-question pipeline.
func (e *Editor) SaveMetadata(title string) {
	e.mu.Lock()
	e.form.Title = strings.TrimSpace(title)
	snapshot := e.form.Clone()
	e.mu.Unlock()

	e.saver.Submit(snapshot)
}

// ValidQuestions returns the subsequence of questions passing definition
// validation, in form order. Consumers that must never see malformed
// questions (the entry renderer) read this view.
func (e *Editor) ValidQuestions() []forms.Question {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]forms.Question, 0, len(e.form.Questions))
	for _, q := range e.form.Questions {
		if validation.ValidateDefinition(q).Valid {
			out = append(out, q.Clone())
		}
	}
	return out
}

// QuestionState exposes the {IsSaving, LastError} tuple for one question,
// intended for direct display binding.
func (e *Editor) QuestionState(id string) (autosave.State, bool) {
	e.mu.Lock()
	rec, ok := e.reconcilers[id]
	e.mu.Unlock()

	if !ok {
		return autosave.State{}, false
	}
	return rec.State(), true
}

// FormState exposes the whole-form saver's state.
func (e *Editor) FormState() autosave.State {
	return e.saver.State()
}

// Flush persists every pending edit immediately: each question's
// reconciler first, then the whole-form saver.
func (e *Editor) Flush() {
	e.mu.Lock()
	recs := make([]*autosave.Reconciler, 0, len(e.reconcilers))
	for _, rec := range e.reconcilers {
		recs = append(recs, rec)
	}
	e.mu.Unlock()

	for _, rec := range recs {
		rec.Flush()
	}
	e.saver.Flush()
}

// Close flushes pending work and tears down every reconciler. The editor
// is unusable afterward.
func (e *Editor) Close() {
	e.Flush()

	e.mu.Lock()
	e.closed = true
	recs := make([]*autosave.Reconciler, 0, len(e.reconcilers))
	for _, rec := range e.reconcilers {
		recs = append(recs, rec)
	}
	e.reconcilers = make(map[string]*autosave.Reconciler)
	e.mu.Unlock()

	for _, rec := range recs {
		rec.Close()
	}
	e.saver.Close()
}

// newReconciler wires a reconciler whose sink writes the optimistic
// snapshot back into the editor's form and whose persist targets the
// store's per-question sub-key update.
func (e *Editor) newReconciler(questionID string, options ...autosave.Option) (*autosave.Reconciler, error) {
	opts := append([]autosave.Option{
		autosave.WithWindow(e.window),
		autosave.WithSink(func(q forms.Question) {
			e.applyOptimistic(q)
		}),
	}, options...)

	rec, err := autosave.NewReconciler(func(ctx context.Context, q forms.Question) (forms.Question, error) {
		return e.gateway.UpdateQuestion(ctx, e.formID(), q)
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("editor: reconciler for question %q: %w", questionID, err)
	}
	return rec, nil
}

func (e *Editor) applyOptimistic(q forms.Question) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx := e.form.QuestionIndex(q.ID); idx >= 0 {
		e.form.Questions[idx] = q.Clone()
	}
}

func (e *Editor) formID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.ID
}
