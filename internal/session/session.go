package session

import (
	"time"

	"github.com/google/uuid"

	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/prompts"
)

// Session is the in-memory conversation state for one user: ordered history
// of user/assistant turns, the active interview category, and a counter of
// user turns. The system turn is synthesized per request and never stored.
//
// A session belongs to exactly one caller at a time; the turn pipeline is
// invoked serially per session, so the struct itself carries no lock.
type Session struct {
	ID        string        `json:"id"`
	Category  string        `json:"category"`
	History   []models.Turn `json:"history"`
	TurnCount int           `json:"turn_count"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// New creates an empty session. Empty category defaults to General.
func New(category string) *Session {
	if category == "" {
		category = prompts.DefaultCategory
	}
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Category:  category,
		History:   []models.Turn{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendUser appends a user turn and increments the turn counter.
// The text is stored verbatim; no validation of content or length.
func (s *Session) AppendUser(text string) {
	s.History = append(s.History, models.Turn{Role: models.RoleUser, Content: text})
	s.TurnCount++
	s.UpdatedAt = time.Now()
}

// AppendAssistant appends an assistant turn. TurnCount tracks user turns only.
func (s *Session) AppendAssistant(text string) {
	s.History = append(s.History, models.Turn{Role: models.RoleAssistant, Content: text})
	s.UpdatedAt = time.Now()
}

// Reset atomically clears the history and zeroes the turn counter.
func (s *Session) Reset() {
	s.History = []models.Turn{}
	s.TurnCount = 0
	s.UpdatedAt = time.Now()
}

// SetCategory replaces the active category. Takes effect on the next
// submitted turn; prior turns keep no record of the prompt they were
// generated under.
func (s *Session) SetCategory(category string) {
	s.Category = category
	s.UpdatedAt = time.Now()
}

// PriorHistory returns a copy of every turn appended before the most recent
// one. Called by the pipeline after AppendUser to obtain the history that
// precedes the pending user turn.
func (s *Session) PriorHistory() []models.Turn {
	if len(s.History) == 0 {
		return nil
	}
	prior := make([]models.Turn, len(s.History)-1)
	copy(prior, s.History[:len(s.History)-1])
	return prior
}

// MessageCount is the total number of stored turns, user and assistant.
func (s *Session) MessageCount() int {
	return len(s.History)
}
