package models

import (
	"time"

	"gorm.io/gorm"
)

// CoachFeedback stores thumbs up/down feedback on coach replies.
// Note: user identifiers are intentionally excluded for privacy.
type CoachFeedback struct {
	gorm.Model
	RequestID  string     `gorm:"uniqueIndex;not null" json:"request_id"`
	SessionID  string     `gorm:"index;not null" json:"session_id"`
	Category   string     `gorm:"not null" json:"category"`
	Question   string     `gorm:"type:text;not null" json:"question"`
	Reply      string     `gorm:"type:text;not null" json:"reply"`
	ModelName  string     `gorm:"not null" json:"model_name"`
	DurationMs int        `gorm:"not null" json:"duration_ms"`
	IsPositive bool       `gorm:"not null" json:"is_positive"` // true = thumbs up
	FeedbackAt time.Time  `gorm:"not null" json:"feedback_at"`
	Exported   bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt *time.Time `json:"exported_at"`
}

// TrainingDataPoint is a single training example in JSONL export format
type TrainingDataPoint struct {
	Contents []TrainingContent `json:"contents"`
}

type TrainingContent struct {
	Role  string         `json:"role"` // "user" or "model"
	Parts []TrainingPart `json:"parts"`
}

type TrainingPart struct {
	Text string `json:"text"`
}

// ExchangeContext holds one question/reply exchange temporarily so that
// feedback can be attached later. Kept in memory with a TTL, never persisted
// unless feedback actually arrives.
type ExchangeContext struct {
	RequestID  string
	SessionID  string
	Category   string
	Question   string
	Reply      string
	ModelName  string
	DurationMs int
	Timestamp  time.Time
}
