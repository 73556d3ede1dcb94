package session

import (
	"context"
	"testing"

	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/prompts"
)

func TestSessionCounters(t *testing.T) {
	sess := New("Backend")

	// k user turns and m assistant turns: TurnCount tracks user turns only,
	// history holds both
	sess.AppendUser("q1")
	sess.AppendAssistant("a1")
	sess.AppendUser("q2")
	sess.AppendAssistant("a2")
	sess.AppendUser("q3")

	if sess.TurnCount != 3 {
		t.Fatalf("expected TurnCount 3, got %d", sess.TurnCount)
	}
	if sess.MessageCount() != 5 {
		t.Fatalf("expected 5 messages, got %d", sess.MessageCount())
	}
}

func TestSessionHistoryOrder(t *testing.T) {
	sess := New("")

	sess.AppendUser("first")
	sess.AppendAssistant("second")
	sess.AppendUser("third")

	want := []models.Turn{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "second"},
		{Role: models.RoleUser, Content: "third"},
	}
	for i, turn := range want {
		if sess.History[i] != turn {
			t.Fatalf("turn %d: expected %+v, got %+v", i, turn, sess.History[i])
		}
	}
}

func TestSessionReset(t *testing.T) {
	sess := New("Frontend")
	sess.AppendUser("q")
	sess.AppendAssistant("a")

	sess.Reset()

	if sess.TurnCount != 0 {
		t.Fatalf("expected TurnCount 0 after reset, got %d", sess.TurnCount)
	}
	if len(sess.History) != 0 {
		t.Fatalf("expected empty history after reset, got %d turns", len(sess.History))
	}
	// category survives a reset
	if sess.Category != "Frontend" {
		t.Fatalf("expected category to survive reset, got %s", sess.Category)
	}
}

func TestSessionPriorHistory(t *testing.T) {
	sess := New("")

	if got := sess.PriorHistory(); got != nil {
		t.Fatalf("expected nil prior history for empty session, got %v", got)
	}

	sess.AppendUser("q1")
	sess.AppendAssistant("a1")
	sess.AppendUser("q2")

	prior := sess.PriorHistory()
	if len(prior) != 2 {
		t.Fatalf("expected 2 prior turns, got %d", len(prior))
	}
	if prior[0].Content != "q1" || prior[1].Content != "a1" {
		t.Fatalf("unexpected prior history: %+v", prior)
	}

	// returned slice is a copy, mutating it must not touch the session
	prior[0].Content = "mutated"
	if sess.History[0].Content != "q1" {
		t.Fatal("expected session history to be unaffected by caller mutation")
	}
}

func TestNewDefaultsToGeneral(t *testing.T) {
	sess := New("")
	if sess.Category != prompts.DefaultCategory {
		t.Fatalf("expected default category %s, got %s", prompts.DefaultCategory, sess.Category)
	}
	if sess.ID == "" {
		t.Fatal("expected a session ID")
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx, "Backend")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != sess.ID || got.Category != "Backend" {
		t.Fatalf("unexpected session: %+v", got)
	}

	got.AppendUser("hello")
	if err := store.Save(ctx, got); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	again, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if again.TurnCount != 1 {
		t.Fatalf("expected saved turn to persist, got %+v", again)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if store.Size() != 0 {
		t.Fatalf("expected empty store, got %d sessions", store.Size())
	}
}

func TestMemoryStoreSaveUnknownSession(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save(context.Background(), New("")); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
