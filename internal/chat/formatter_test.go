package chat

import (
	"testing"

	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/prompts"
)

func newCatalog(t *testing.T) *prompts.Catalog {
	t.Helper()
	catalog, err := prompts.NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	return catalog
}

func TestFormatEmptyHistory(t *testing.T) {
	catalog := newCatalog(t)
	formatter := NewTurnFormatter(catalog, 0)

	request := formatter.Format("Backend", nil, "Explain database indexing.")

	if request.SystemPrompt != catalog.Lookup("Backend") {
		t.Fatal("expected the Backend system prompt")
	}
	if len(request.Messages) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(request.Messages))
	}
	if request.Messages[0].Role != models.RoleUser || request.Messages[0].Content != "Explain database indexing." {
		t.Fatalf("unexpected pending turn: %+v", request.Messages[0])
	}
}

func TestFormatPreservesOrder(t *testing.T) {
	formatter := NewTurnFormatter(newCatalog(t), 0)

	prior := []models.Turn{
		{Role: models.RoleUser, Content: "q1"},
		{Role: models.RoleAssistant, Content: "a1"},
		{Role: models.RoleUser, Content: "q2"},
		{Role: models.RoleAssistant, Content: "a2"},
	}

	request := formatter.Format("General", prior, "q3")

	if len(request.Messages) != len(prior)+1 {
		t.Fatalf("expected %d messages, got %d", len(prior)+1, len(request.Messages))
	}
	for i, turn := range prior {
		if request.Messages[i] != turn {
			t.Fatalf("message %d: expected %+v, got %+v", i, turn, request.Messages[i])
		}
	}
	last := request.Messages[len(request.Messages)-1]
	if last.Role != models.RoleUser || last.Content != "q3" {
		t.Fatalf("expected pending user turn last, got %+v", last)
	}
}

func TestFormatUnknownCategoryFallsBack(t *testing.T) {
	catalog := newCatalog(t)
	formatter := NewTurnFormatter(catalog, 0)

	request := formatter.Format("Underwater Basket Weaving", nil, "hi")
	if request.SystemPrompt != catalog.Lookup(prompts.DefaultCategory) {
		t.Fatal("expected fallback to the General prompt")
	}
}

func TestFormatBoundedWindow(t *testing.T) {
	formatter := NewTurnFormatter(newCatalog(t), 2)

	prior := []models.Turn{
		{Role: models.RoleUser, Content: "q1"},
		{Role: models.RoleAssistant, Content: "a1"},
		{Role: models.RoleUser, Content: "q2"},
		{Role: models.RoleAssistant, Content: "a2"},
	}

	request := formatter.Format("General", prior, "q3")

	// only the most recent two prior turns survive, pending turn still last
	if len(request.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(request.Messages))
	}
	if request.Messages[0].Content != "q2" || request.Messages[1].Content != "a2" {
		t.Fatalf("expected the newest prior turns, got %+v", request.Messages[:2])
	}
	if request.Messages[2].Content != "q3" {
		t.Fatalf("expected pending turn last, got %+v", request.Messages[2])
	}
}

func TestFormatZeroWindowKeepsEverything(t *testing.T) {
	formatter := NewTurnFormatter(newCatalog(t), 0)

	prior := make([]models.Turn, 100)
	for i := range prior {
		prior[i] = models.Turn{Role: models.RoleUser, Content: "filler"}
	}

	request := formatter.Format("General", prior, "latest")
	if len(request.Messages) != 101 {
		t.Fatalf("expected full history replay, got %d messages", len(request.Messages))
	}
}
