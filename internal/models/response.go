package models

import "time"

// one completed chat turn, as returned to the client
type ChatMessageResponse struct {
	Reply     string       `json:"reply"`
	Score     string       `json:"score,omitempty"`
	RequestID string       `json:"request_id"`
	Metadata  TurnMetadata `json:"metadata"`
}

// additional information about a turn
type TurnMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Category       string `json:"category"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

// session transcript plus counters
type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	Category     string    `json:"category"`
	TurnCount    int       `json:"turn_count"`
	MessageCount int       `json:"message_count"`
	History      []Turn    `json:"history"`
	CreatedAt    time.Time `json:"created_at"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// fixed checklist shown alongside model invocation failures
	Troubleshooting []string `json:"troubleshooting,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

// generic ok/info envelope for feedback and session management endpoints
type Resp struct {
	OK   bool        `json:"ok"`
	Info interface{} `json:"info"`
}
