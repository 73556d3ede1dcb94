package chat

import (
	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/prompts"
)

// TurnFormatter converts accumulated history into the exact message list a
// model provider expects: one system entry for the active category, the
// prior history in original order, and the pending user turn last.
type TurnFormatter struct {
	catalog *prompts.Catalog

	// maxHistoryTurns bounds how many prior turns are replayed per call.
	// Zero keeps the full history, which matches the historical behavior of
	// replaying every turn regardless of length. The system entry and the
	// pending user turn are always included.
	maxHistoryTurns int
}

func NewTurnFormatter(catalog *prompts.Catalog, maxHistoryTurns int) *TurnFormatter {
	return &TurnFormatter{
		catalog:         catalog,
		maxHistoryTurns: maxHistoryTurns,
	}
}

// Format builds the request for one turn. Prior turns are passed through
// verbatim, role and content untouched.
func (f *TurnFormatter) Format(category string, prior []models.Turn, pending string) *models.ModelRequest {
	if f.maxHistoryTurns > 0 && len(prior) > f.maxHistoryTurns {
		prior = prior[len(prior)-f.maxHistoryTurns:]
	}

	messages := make([]models.Turn, 0, len(prior)+1)
	messages = append(messages, prior...)
	messages = append(messages, models.Turn{Role: models.RoleUser, Content: pending})

	return &models.ModelRequest{
		SystemPrompt: f.catalog.Lookup(category),
		Messages:     messages,
	}
}
