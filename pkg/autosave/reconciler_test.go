package autosave_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/AdityaMittal31/FirstWork/pkg/autosave"
	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// persistRecorder captures every gateway write so tests can assert on
// call counts and payloads.
type persistRecorder struct {
	mu    sync.Mutex
	calls []forms.Question
	err   error
}

func (p *persistRecorder) persist(_ context.Context, q forms.Question) (forms.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return forms.Question{}, p.err
	}
	p.calls = append(p.calls, q.Clone())
	return q, nil
}

func (p *persistRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *persistRecorder) last() forms.Question {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[len(p.calls)-1]
}

func (p *persistRecorder) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func textQuestion(id, label string) forms.Question {
	return forms.Question{ID: id, Type: forms.QuestionTypeText, Label: label}
}

func TestReconcilerCoalescesRapidEdits(t *testing.T) {
	rec := &persistRecorder{}
	r, err := autosave.NewReconciler(rec.persist, autosave.WithWindow(30*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	r.SubmitEdit(textQuestion("q1", "Nam"))
	r.SubmitEdit(textQuestion("q1", "Name"))

	time.Sleep(200 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Fatalf("expected exactly one persist, got %d", got)
	}
	if got := rec.last().Label; got != "Name" {
		t.Fatalf("expected newest edit to win, got label %q", got)
	}

	ack, ok := r.LastAcknowledged()
	if !ok {
		t.Fatal("expected an acknowledged snapshot after save")
	}
	if diff := cmp.Diff("Name", ack.Label); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcilerBlocksInvalidDefinition(t *testing.T) {
	rec := &persistRecorder{}
	r, err := autosave.NewReconciler(rec.persist, autosave.WithWindow(10*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	r.SubmitEdit(textQuestion("q1", ""))
	r.Flush()
	time.Sleep(50 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Fatalf("invalid edit must never persist, got %d calls", got)
	}
	if got := r.State().LastError; got != "title required" {
		t.Fatalf("expected %q, got %q", "title required", got)
	}

	// Correcting the definition persists and clears the error.
	r.SubmitEdit(textQuestion("q1", "Name"))
	r.Flush()

	if got := rec.count(); got != 1 {
		t.Fatalf("corrected edit should persist once, got %d calls", got)
	}
	if got := r.State().LastError; got != "" {
		t.Fatalf("expected error cleared, got %q", got)
	}
}

func TestReconcilerSuppressesNoOpEdits(t *testing.T) {
	acked := textQuestion("q1", "Name")
	rec := &persistRecorder{}
	r, err := autosave.NewReconciler(rec.persist,
		autosave.WithWindow(10*time.Millisecond),
		autosave.WithAcknowledged(acked),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	r.SubmitEdit(acked.Clone())
	r.Flush()

	if got := rec.count(); got != 0 {
		t.Fatalf("edit equal to the acknowledged snapshot must not persist, got %d calls", got)
	}
}

func TestReconcilerNoOpEditCancelsPendingSave(t *testing.T) {
	acked := textQuestion("q1", "Name")
	rec := &persistRecorder{}
	r, err := autosave.NewReconciler(rec.persist,
		autosave.WithWindow(30*time.Millisecond),
		autosave.WithAcknowledged(acked),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	// Edit away, then undo back to the acknowledged value inside the
	// window. Nothing should reach the gateway.
	r.SubmitEdit(textQuestion("q1", "Full name"))
	r.SubmitEdit(acked.Clone())

	time.Sleep(150 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Fatalf("undo back to acknowledged value must cancel the save, got %d calls", got)
	}
}

func TestReconcilerCloseCancelsPendingSave(t *testing.T) {
	rec := &persistRecorder{}
	r, err := autosave.NewReconciler(rec.persist, autosave.WithWindow(30*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.SubmitEdit(textQuestion("q1", "Name"))
	r.Close()

	time.Sleep(150 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Fatalf("closed reconciler must not persist, got %d calls", got)
	}
}

func TestReconcilerKeepsOptimisticValueOnFailure(t *testing.T) {
	rec := &persistRecorder{err: errors.New("gateway unavailable")}

	var sunk []forms.Question
	r, err := autosave.NewReconciler(rec.persist,
		autosave.WithWindow(10*time.Millisecond),
		autosave.WithSink(func(q forms.Question) { sunk = append(sunk, q) }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	r.SubmitEdit(textQuestion("q1", "Name"))
	r.Flush()

	if got := r.State().LastError; got != "gateway unavailable" {
		t.Fatalf("expected surfaced gateway error, got %q", got)
	}
	if _, ok := r.LastAcknowledged(); ok {
		t.Fatal("failed save must not update the acknowledged snapshot")
	}
	// The edit still reached the sink before the save was attempted.
	if len(sunk) != 1 || sunk[0].Label != "Name" {
		t.Fatalf("expected optimistic sink delivery, got %v", sunk)
	}

	// The next edit retries against a recovered gateway.
	rec.setErr(nil)
	r.SubmitEdit(textQuestion("q1", "Full name"))
	r.Flush()

	if got := rec.count(); got != 1 {
		t.Fatalf("expected retry to persist once, got %d calls", got)
	}
	if got := r.State().LastError; got != "" {
		t.Fatalf("expected error cleared after recovery, got %q", got)
	}
}

func TestReconcilerFlushWithoutPendingIsNoOp(t *testing.T) {
	rec := &persistRecorder{}
	r, err := autosave.NewReconciler(rec.persist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	r.Flush()

	if got := rec.count(); got != 0 {
		t.Fatalf("expected no persist calls, got %d", got)
	}
}

func TestReconcilerRequiresPersistFunc(t *testing.T) {
	if _, err := autosave.NewReconciler(nil); err == nil {
		t.Fatal("expected error for nil persist func")
	}
}
