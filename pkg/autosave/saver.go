package autosave

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// PersistFormFunc writes a whole form to the gateway and returns the
// persisted snapshot.
type PersistFormFunc func(ctx context.Context, form forms.Form) (forms.Form, error)

// SaverOption customises a FormSaver.
type SaverOption func(*FormSaver)

// WithSaverWindow overrides the debounce window for whole-form saves.
func WithSaverWindow(d time.Duration) SaverOption {
	return func(s *FormSaver) {
		if d > 0 {
			s.window = d
		}
	}
}

// FormSaver debounces whole-form saves (title and metadata edits) with
// the same cancel-and-coalesce discipline as the per-question Reconciler,
// independent of any question's pipeline.
type FormSaver struct {
	persist PersistFormFunc
	window  time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	pending    forms.Form
	hasPending bool
	lastAck    *forms.Form
	saving     bool
	lastErr    string
	closed     bool
}

// NewFormSaver constructs a FormSaver.
func NewFormSaver(persist PersistFormFunc, options ...SaverOption) (*FormSaver, error) {
	if persist == nil {
		return nil, errors.New("autosave: persist form func is required")
	}
	s := &FormSaver{
		persist: persist,
		window:  DefaultWindow,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Submit ingests a form snapshot, cancelling any pending save and
// scheduling a new one unless the snapshot matches the last acknowledged
// state.
func (s *FormSaver) Submit(form forms.Form) {
	snapshot := form.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.cancelTimerLocked()

	if s.lastAck != nil && snapshot.Equal(*s.lastAck) {
		s.lastErr = ""
		s.hasPending = false
		return
	}

	s.pending = snapshot
	s.hasPending = true
	gen := s.generation

	s.timer = time.AfterFunc(s.window, func() {
		s.fire(gen)
	})
}

// Flush persists a pending save immediately, blocking until the gateway
// call returns. Used on editor shutdown.
func (s *FormSaver) Flush() {
	s.mu.Lock()
	if !s.hasPending || s.closed {
		s.mu.Unlock()
		return
	}
	s.cancelTimerLocked()
	gen := s.generation
	s.mu.Unlock()

	s.fire(gen)
}

// State reports the saving flag and last error for display.
func (s *FormSaver) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{IsSaving: s.saving, LastError: s.lastErr}
}

// Close cancels pending work; a late response from an in-flight save is
// discarded.
func (s *FormSaver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.hasPending = false
	s.cancelTimerLocked()
}

func (s *FormSaver) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.generation || !s.hasPending {
		s.mu.Unlock()
		return
	}

	snapshot := s.pending.Clone()
	s.saving = true
	s.lastErr = ""
	s.hasPending = false
	s.timer = nil
	s.mu.Unlock()

	saved, err := s.persist(context.Background(), snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.saving = false
	if err != nil {
		s.lastErr = err.Error()
		slog.Error("form autosave failed",
			slog.String("form_id", snapshot.ID),
			slog.Any("error", err))
		return
	}

	ack := saved.Clone()
	s.lastAck = &ack
}

func (s *FormSaver) cancelTimerLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
