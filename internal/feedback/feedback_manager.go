package feedback

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"prepcoach/coach/internal/models"
)

// FeedbackManager stores user feedback on coach replies and exports the
// positively rated exchanges as training data.
type FeedbackManager struct {
	db           *gorm.DB
	contextCache *ContextCache
}

func NewFeedbackManager(db *gorm.DB, cacheTTL time.Duration) *FeedbackManager {
	return &FeedbackManager{
		db:           db,
		contextCache: NewContextCache(cacheTTL),
	}
}

// StoreExchange caches one completed exchange so feedback can reference it.
func (fm *FeedbackManager) StoreExchange(exchange *models.ExchangeContext) {
	fm.contextCache.Set(exchange.RequestID, exchange)
}

// SubmitFeedback records thumbs up/down for a recent exchange.
func (fm *FeedbackManager) SubmitFeedback(requestID string, isPositive bool) error {
	exchange, exists := fm.contextCache.Get(requestID)
	if !exists {
		return fmt.Errorf("exchange not found or expired: %s", requestID)
	}

	record := &models.CoachFeedback{
		RequestID:  requestID,
		SessionID:  exchange.SessionID,
		Category:   exchange.Category,
		Question:   exchange.Question,
		Reply:      exchange.Reply,
		ModelName:  exchange.ModelName,
		DurationMs: exchange.DurationMs,
		IsPositive: isPositive,
		FeedbackAt: time.Now(),
		Exported:   false,
	}

	if err := fm.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	fm.contextCache.Delete(requestID)

	log.Printf("Stored feedback: request=%s, positive=%v, category=%s", requestID, isPositive, exchange.Category)

	return nil
}

// GetUnexportedFeedback retrieves feedback that hasn't been exported yet
func (fm *FeedbackManager) GetUnexportedFeedback(limit int) ([]models.CoachFeedback, error) {
	var records []models.CoachFeedback

	query := fm.db.Where("exported = ?", false).Order("feedback_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	return records, nil
}

// GetFeedbackSince retrieves feedback since a specific time
func (fm *FeedbackManager) GetFeedbackSince(since time.Time, limit int) ([]models.CoachFeedback, error) {
	var records []models.CoachFeedback

	query := fm.db.Where("feedback_at >= ?", since).Order("feedback_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get feedback since %v: %w", since, err)
	}

	return records, nil
}

// MarkAsExported marks feedback records as exported
func (fm *FeedbackManager) MarkAsExported(feedbackIDs []uint) error {
	now := time.Now()
	result := fm.db.Model(&models.CoachFeedback{}).
		Where("id IN ?", feedbackIDs).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark feedback as exported: %w", result.Error)
	}

	log.Printf("Marked %d feedback records as exported", result.RowsAffected)
	return nil
}

// ExportToJSONL renders feedback as JSONL training pairs. Only positively
// rated exchanges become training examples.
func (fm *FeedbackManager) ExportToJSONL(records []models.CoachFeedback) ([]byte, error) {
	var lines [][]byte

	for _, record := range records {
		if !record.IsPositive {
			continue
		}

		dataPoint := models.TrainingDataPoint{
			Contents: []models.TrainingContent{
				{
					Role:  "user",
					Parts: []models.TrainingPart{{Text: record.Question}},
				},
				{
					Role:  "model",
					Parts: []models.TrainingPart{{Text: record.Reply}},
				},
			},
		}

		line, err := json.Marshal(dataPoint)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal training data: %w", err)
		}
		lines = append(lines, line)
	}

	var jsonl []byte
	for i, line := range lines {
		jsonl = append(jsonl, line...)
		if i < len(lines)-1 {
			jsonl = append(jsonl, '\n')
		}
	}

	log.Printf("Exported %d positive exchanges to JSONL (%d total feedback records)", len(lines), len(records))

	return jsonl, nil
}

// GetFeedbackStats returns statistics about stored feedback
func (fm *FeedbackManager) GetFeedbackStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalCount int64
	if err := fm.db.Model(&models.CoachFeedback{}).Count(&totalCount).Error; err != nil {
		return nil, err
	}
	stats["total_count"] = totalCount

	var positiveCount int64
	if err := fm.db.Model(&models.CoachFeedback{}).Where("is_positive = ?", true).Count(&positiveCount).Error; err != nil {
		return nil, err
	}
	stats["positive_count"] = positiveCount

	var unexportedCount int64
	if err := fm.db.Model(&models.CoachFeedback{}).Where("exported = ?", false).Count(&unexportedCount).Error; err != nil {
		return nil, err
	}
	stats["unexported_count"] = unexportedCount

	stats["cached_exchanges"] = fm.contextCache.Size()

	return stats, nil
}
