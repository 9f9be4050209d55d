package store

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// MemoryOption customises the in-memory store.
type MemoryOption func(*MemoryStore)

// WithLatency makes every operation sleep for d before touching the map,
// approximating a remote backend. Zero disables the delay.
func WithLatency(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		s.latency = d
	}
}

// WithFailureRate makes operations fail with ErrOperationFailed at the
// given probability in [0,1). Used by demos exercising the retry path.
func WithFailureRate(p float64) MemoryOption {
	return func(s *MemoryStore) {
		s.failureRate = p
	}
}

// WithFailEvery makes every nth write fail deterministically. Intended
// for tests that need a predictable transient failure.
func WithFailEvery(n int) MemoryOption {
	return func(s *MemoryStore) {
		s.failEvery = n
	}
}

// WithClock overrides the timestamp source. Tests inject a fixed clock.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// MemoryStore implements Gateway using a mutex-guarded map. Intended for
// demos and testing; no database required.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]forms.Form

	latency     time.Duration
	failureRate float64
	failEvery   int
	writes      int
	rng         *rand.Rand
	now         func() time.Time
}

// NewMemoryStore creates an empty MemoryStore applying any options.
func NewMemoryStore(options ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		items: make(map[string]forms.Form),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

func (s *MemoryStore) CreateForm(ctx context.Context, form forms.Form) (forms.Form, error) {
	if err := s.simulate(ctx); err != nil {
		return forms.Form{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	if _, exists := s.items[form.ID]; exists {
		return forms.Form{}, fmt.Errorf("store: form %q already exists", form.ID)
	}

	now := s.now()
	form.CreatedAt = now
	form.UpdatedAt = now
	s.items[form.ID] = form.Clone()

	slog.Debug("form created", slog.String("form_id", form.ID))
	return form.Clone(), nil
}

func (s *MemoryStore) UpdateForm(ctx context.Context, form forms.Form) (forms.Form, error) {
	if err := s.simulate(ctx); err != nil {
		return forms.Form{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[form.ID]
	if !ok {
		return forms.Form{}, ErrNotFound
	}

	form.CreatedAt = existing.CreatedAt
	form.UpdatedAt = s.advance(existing.UpdatedAt)
	s.items[form.ID] = form.Clone()
	return form.Clone(), nil
}

func (s *MemoryStore) AppendQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error) {
	if err := s.simulate(ctx); err != nil {
		return forms.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.items[formID]
	if !ok {
		return forms.Question{}, ErrNotFound
	}

	q = q.Clone()
	q.ID = uuid.NewString()
	form.Questions = append(form.Questions, q)
	form.UpdatedAt = s.advance(form.UpdatedAt)
	s.items[formID] = form

	return q.Clone(), nil
}

func (s *MemoryStore) UpdateQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error) {
	if err := s.simulate(ctx); err != nil {
		return forms.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.items[formID]
	if !ok {
		return forms.Question{}, ErrNotFound
	}

	q = q.Clone()
	if idx := form.QuestionIndex(q.ID); idx >= 0 {
		form.Questions[idx] = q
	} else {
		form.Questions = append(form.Questions, q)
	}
	form.UpdatedAt = s.advance(form.UpdatedAt)
	s.items[formID] = form

	return q.Clone(), nil
}

func (s *MemoryStore) ListForms(ctx context.Context) ([]forms.Form, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]forms.Form, 0, len(s.items))
	for _, form := range s.items {
		out = append(out, form.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetForm(ctx context.Context, id string) (forms.Form, error) {
	if err := s.wait(ctx); err != nil {
		return forms.Form{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.items[id]
	if !ok {
		return forms.Form{}, ErrNotFound
	}
	return form.Clone(), nil
}

// simulate applies the configured latency and failure injection to a
// write. Reads only pay the latency.
func (s *MemoryStore) simulate(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.writes++
	writes := s.writes
	var roll float64
	if s.failureRate > 0 {
		roll = s.rng.Float64()
	}
	s.mu.Unlock()

	if s.failEvery > 0 && writes%s.failEvery == 0 {
		return ErrOperationFailed
	}
	if s.failureRate > 0 && roll < s.failureRate {
		return ErrOperationFailed
	}
	return nil
}

func (s *MemoryStore) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.latency):
		return nil
	}
}

// advance keeps UpdatedAt monotonically non-decreasing even when the
// clock is coarse or frozen.
func (s *MemoryStore) advance(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
