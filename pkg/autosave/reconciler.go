// Package autosave owns the debounced validate-then-persist pipeline that
// sits between in-progress edits and the persistence gateway. A Reconciler
// is bound to exactly one question's lifetime; a FormSaver applies the
// same cancel-and-coalesce discipline to whole-form metadata saves.
package autosave

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/validation"
)

// DefaultWindow is the quiet period an edit must survive before a persist
// is attempted.
const DefaultWindow = 750 * time.Millisecond

// PersistFunc writes a validated question to the gateway and returns the
// persisted snapshot. The editor binds this to the store's per-question
// update for the owning form.
type PersistFunc func(ctx context.Context, q forms.Question) (forms.Question, error)

// SinkFunc receives every edit synchronously, before validation, so the
// owning editor reflects keystrokes without lag (optimistic update).
type SinkFunc func(q forms.Question)

// State is a display-ready snapshot of the reconciler: whether a persist
// is in flight and the last surfaced error, if any.
type State struct {
	IsSaving  bool
	LastError string
}

// Option customises a Reconciler.
type Option func(*Reconciler)

// WithWindow overrides the debounce window. Non-positive values keep the
// default.
func WithWindow(d time.Duration) Option {
	return func(r *Reconciler) {
		if d > 0 {
			r.window = d
		}
	}
}

// WithSink registers the optimistic-update callback.
func WithSink(sink SinkFunc) Option {
	return func(r *Reconciler) {
		r.sink = sink
	}
}

// WithAcknowledged seeds the last-persisted snapshot, used when the
// question was just appended through the gateway and the server copy is
// already known.
func WithAcknowledged(q forms.Question) Option {
	return func(r *Reconciler) {
		ack := q.Clone()
		r.lastAck = &ack
	}
}

// Reconciler coalesces rapid edits to one question into at most one
// scheduled persist. Edits propagate to the sink immediately; only
// definition-valid snapshots that differ from the last acknowledged value
// ever reach the gateway, and only after the debounce window passes
// without a newer edit.
type Reconciler struct {
	persist PersistFunc
	sink    SinkFunc
	window  time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	pending    forms.Question
	hasPending bool
	lastAck    *forms.Question
	saving     bool
	lastErr    string
	closed     bool
}

// NewReconciler constructs a Reconciler for one question.
func NewReconciler(persist PersistFunc, options ...Option) (*Reconciler, error) {
	if persist == nil {
		return nil, errors.New("autosave: persist func is required")
	}
	r := &Reconciler{
		persist: persist,
		window:  DefaultWindow,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// SubmitEdit ingests one edit. The snapshot is forwarded to the sink
// unconditionally, any pending timer is cancelled, and a new persist is
// scheduled only when the definition is valid and differs from the last
// acknowledged value. Invalid edits surface their reason through
// State().LastError and never reach the gateway.
func (r *Reconciler) SubmitEdit(q forms.Question) {
	snapshot := q.Clone()
	if r.sink != nil {
		r.sink(snapshot)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.cancelTimerLocked()

	if result := validation.ValidateDefinition(snapshot); !result.Valid {
		r.lastErr = result.Reason
		r.hasPending = false
		return
	}

	if r.lastAck != nil && snapshot.Equal(*r.lastAck) {
		r.lastErr = ""
		r.hasPending = false
		return
	}

	r.pending = snapshot
	r.hasPending = true
	gen := r.generation

	slog.Debug("autosave scheduled",
		slog.String("question_id", snapshot.ID),
		slog.Duration("window", r.window))

	r.timer = time.AfterFunc(r.window, func() {
		r.fire(gen)
	})
}

// Flush persists a pending edit immediately instead of waiting out the
// remaining quiet period. It blocks until the gateway call returns.
func (r *Reconciler) Flush() {
	r.mu.Lock()
	if !r.hasPending || r.closed {
		r.mu.Unlock()
		return
	}
	r.cancelTimerLocked()
	gen := r.generation
	r.mu.Unlock()

	r.fire(gen)
}

// State reports the current saving flag and last error for display.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{IsSaving: r.saving, LastError: r.lastErr}
}

// LastAcknowledged returns the most recent snapshot the gateway confirmed,
// if any.
func (r *Reconciler) LastAcknowledged() (forms.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastAck == nil {
		return forms.Question{}, false
	}
	return r.lastAck.Clone(), true
}

// Close cancels pending work and marks the reconciler torn down. A late
// gateway response for an in-flight save is discarded, so a deleted
// question is never written back into storage.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.hasPending = false
	r.cancelTimerLocked()
}

// fire runs when the debounce window elapses. The generation check makes
// cancellation race-free: a timer superseded after it was scheduled is a
// no-op even if its callback already started.
func (r *Reconciler) fire(gen uint64) {
	r.mu.Lock()
	if r.closed || gen != r.generation || !r.hasPending {
		r.mu.Unlock()
		return
	}

	snapshot := r.pending.Clone()

	// Re-validate the freshest snapshot; state may have advanced since
	// the timer was scheduled.
	if result := validation.ValidateDefinition(snapshot); !result.Valid {
		r.lastErr = result.Reason
		r.hasPending = false
		r.timer = nil
		r.mu.Unlock()
		return
	}

	r.saving = true
	r.lastErr = ""
	r.hasPending = false
	r.timer = nil
	r.mu.Unlock()

	saved, err := r.persist(context.Background(), snapshot)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.saving = false
	if err != nil {
		// The optimistic local value is not rolled back; the next edit
		// reschedules and effectively retries.
		r.lastErr = err.Error()
		slog.Error("autosave failed",
			slog.String("question_id", snapshot.ID),
			slog.Any("error", err))
		return
	}

	ack := saved.Clone()
	r.lastAck = &ack
	slog.Debug("autosave acknowledged", slog.String("question_id", saved.ID))
}

func (r *Reconciler) cancelTimerLocked() {
	r.generation++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
