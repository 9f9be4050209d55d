package editor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AdityaMittal31/FirstWork/pkg/editor"
	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/store"
)

// countingGateway wraps the in-memory store and counts per-question
// update calls so tests can assert on debounce behavior end to end.
type countingGateway struct {
	*store.MemoryStore

	mu              sync.Mutex
	questionUpdates map[string]int
	formUpdates     int
	appendErr       error
}

func newCountingGateway() *countingGateway {
	return &countingGateway{
		MemoryStore:     store.NewMemoryStore(),
		questionUpdates: make(map[string]int),
	}
}

func (g *countingGateway) UpdateQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error) {
	g.mu.Lock()
	g.questionUpdates[q.ID]++
	g.mu.Unlock()
	return g.MemoryStore.UpdateQuestion(ctx, formID, q)
}

func (g *countingGateway) UpdateForm(ctx context.Context, form forms.Form) (forms.Form, error) {
	g.mu.Lock()
	g.formUpdates++
	g.mu.Unlock()
	return g.MemoryStore.UpdateForm(ctx, form)
}

func (g *countingGateway) AppendQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error) {
	g.mu.Lock()
	err := g.appendErr
	g.mu.Unlock()
	if err != nil {
		return forms.Question{}, err
	}
	return g.MemoryStore.AppendQuestion(ctx, formID, q)
}

func (g *countingGateway) updatesFor(id string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.questionUpdates[id]
}

func (g *countingGateway) formUpdateCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.formUpdates
}

func TestEditorAddQuestionPersistsWithStoreID(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Survey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ed.Close()

	q, err := ed.AddQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID == "" {
		t.Fatal("expected store-assigned ID")
	}
	if q.Type != forms.QuestionTypeText {
		t.Fatalf("expected default text type, got %q", q.Type)
	}

	stored, err := gateway.GetForm(context.Background(), ed.Form().ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored.Questions) != 1 || stored.Questions[0].ID != q.ID {
		t.Fatalf("expected persisted question %q, got %v", q.ID, stored.Questions)
	}
}

func TestEditorInvalidEditNeverReachesGateway(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Survey",
		editor.WithDebounceWindow(10*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ed.Close()

	q, err := ed.AddQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A freshly added question has no label, so editing any other field
	// keeps the definition invalid.
	q.Placeholder = "type here"
	if err := ed.UpdateQuestion(q.ID, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ed.Flush()
	time.Sleep(50 * time.Millisecond)

	if got := gateway.updatesFor(q.ID); got != 0 {
		t.Fatalf("invalid edit must not persist, got %d updates", got)
	}

	state, ok := ed.QuestionState(q.ID)
	if !ok {
		t.Fatal("expected state for known question")
	}
	if state.LastError != "title required" {
		t.Fatalf("expected %q, got %q", "title required", state.LastError)
	}

	// The optimistic edit is still visible locally.
	local := ed.Form()
	if idx := local.QuestionIndex(q.ID); idx < 0 || local.Questions[idx].Placeholder != "type here" {
		t.Fatal("expected optimistic edit in local form")
	}

	// Fixing the label persists exactly once and clears the error.
	q.Label = "Name"
	if err := ed.UpdateQuestion(q.ID, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ed.Flush()

	if got := gateway.updatesFor(q.ID); got != 1 {
		t.Fatalf("expected one update after correction, got %d", got)
	}
	state, _ = ed.QuestionState(q.ID)
	if state.LastError != "" {
		t.Fatalf("expected error cleared, got %q", state.LastError)
	}
}

func TestEditorCoalescesRapidEdits(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Survey",
		editor.WithDebounceWindow(30*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ed.Close()

	q, err := ed.AddQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q.Label = "Nam"
	if err := ed.UpdateQuestion(q.ID, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.Label = "Name"
	if err := ed.UpdateQuestion(q.ID, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	if got := gateway.updatesFor(q.ID); got != 1 {
		t.Fatalf("expected one coalesced update, got %d", got)
	}

	stored, err := gateway.GetForm(context.Background(), ed.Form().ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx := stored.QuestionIndex(q.ID); idx < 0 || stored.Questions[idx].Label != "Name" {
		t.Fatalf("expected newest label persisted, got %v", stored.Questions)
	}
}

func TestEditorDeleteCancelsPendingSave(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Survey",
		editor.WithDebounceWindow(30*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ed.Close()

	q, err := ed.AddQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q.Label = "Name"
	if err := ed.UpdateQuestion(q.ID, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ed.DeleteQuestion(context.Background(), q.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(150 * time.Millisecond)

	if got := gateway.updatesFor(q.ID); got != 0 {
		t.Fatalf("deleted question must not be written back, got %d updates", got)
	}

	stored, err := gateway.GetForm(context.Background(), ed.Form().ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored.Questions) != 0 {
		t.Fatalf("expected question removed from store, got %v", stored.Questions)
	}
	if _, ok := ed.QuestionState(q.ID); ok {
		t.Fatal("expected reconciler torn down")
	}
}

func TestEditorSaveMetadataDebounces(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Surv",
		editor.WithDebounceWindow(10*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ed.Close()

	ed.SaveMetadata("Surve")
	ed.SaveMetadata("Survey 2026")
	ed.Flush()

	if got := gateway.formUpdateCount(); got != 1 {
		t.Fatalf("expected one coalesced form save, got %d", got)
	}

	stored, err := gateway.GetForm(context.Background(), ed.Form().ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Title != "Survey 2026" {
		t.Fatalf("expected newest title persisted, got %q", stored.Title)
	}
}

func TestEditorValidQuestionsFiltersMalformed(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Survey",
		editor.WithDebounceWindow(10*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ed.Close()

	unlabeled, err := ed.AddQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	labeled, err := ed.AddQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	labeled.Label = "Name"
	if err := ed.UpdateQuestion(labeled.ID, labeled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	valid := ed.ValidQuestions()
	if len(valid) != 1 || valid[0].ID != labeled.ID {
		t.Fatalf("expected only the labeled question, got %v", valid)
	}
	_ = unlabeled
}

func TestEditorAddQuestionKeepsLocalOnAppendFailure(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Survey",
		editor.WithDebounceWindow(10*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer ed.Close()

	gateway.mu.Lock()
	gateway.appendErr = errors.New("gateway unavailable")
	gateway.mu.Unlock()

	q, err := ed.AddQuestion(context.Background())
	if err == nil {
		t.Fatal("expected append failure to surface")
	}
	if q.ID == "" {
		t.Fatal("expected local placeholder question despite failure")
	}

	local := ed.Form()
	if local.QuestionIndex(q.ID) < 0 {
		t.Fatal("expected placeholder question in local form")
	}

	// Once the gateway recovers, the next edit persists via upsert.
	gateway.mu.Lock()
	gateway.appendErr = nil
	gateway.mu.Unlock()

	q.Label = "Name"
	if err := ed.UpdateQuestion(q.ID, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ed.Flush()

	if got := gateway.updatesFor(q.ID); got != 1 {
		t.Fatalf("expected retry via update, got %d calls", got)
	}
}

func TestEditorLoadSeedsAcknowledgedSnapshots(t *testing.T) {
	gateway := newCountingGateway()
	ed, err := editor.New(context.Background(), gateway, "Survey",
		editor.WithDebounceWindow(10*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, err := ed.AddQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.Label = "Name"
	if err := ed.UpdateQuestion(q.ID, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ed.Flush()
	formID := ed.Form().ID
	ed.Close()

	reloaded, err := editor.Load(context.Background(), gateway, formID,
		editor.WithDebounceWindow(10*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reloaded.Close()

	updatesBefore := gateway.updatesFor(q.ID)

	// Resubmitting the stored snapshot unchanged must be suppressed.
	stored, err := gateway.GetForm(context.Background(), formID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx := stored.QuestionIndex(q.ID)
	if idx < 0 {
		t.Fatalf("expected stored question %q", q.ID)
	}
	if err := reloaded.UpdateQuestion(q.ID, stored.Questions[idx]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded.Flush()

	if got := gateway.updatesFor(q.ID); got != updatesBefore {
		t.Fatalf("unchanged edit must be suppressed, got %d extra updates", got-updatesBefore)
	}
}
