package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"prepcoach/coach/internal/feedback"
	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/utils"
)

type FeedbackHandler struct {
	feedbackManager *feedback.FeedbackManager
}

func NewFeedbackHandler(feedbackManager *feedback.FeedbackManager) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackManager: feedbackManager,
	}
}

// SubmitFeedbackRequest represents the request body for feedback submission
type SubmitFeedbackRequest struct {
	IsPositive bool `json:"is_positive"`
}

// SubmitFeedback handles POST /api/v1/coach/feedback/{request_id}
func (fh *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "request_id")
	if requestID == "" {
		utils.JSON(w, http.StatusBadRequest, models.Resp{
			OK:   false,
			Info: "request_id is required",
		})
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.Resp{
			OK:   false,
			Info: "invalid request body",
		})
		return
	}

	if err := fh.feedbackManager.SubmitFeedback(requestID, req.IsPositive); err != nil {
		log.Printf("Failed to submit feedback: %v", err)
		utils.JSON(w, http.StatusInternalServerError, models.Resp{
			OK:   false,
			Info: "failed to submit feedback: " + err.Error(),
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.Resp{
		OK:   true,
		Info: "feedback submitted successfully",
	})
}

// ExportFeedback handles GET /api/v1/coach/feedback/export
// Query params:
// - days: number of days to look back (default: 7)
// - limit: maximum number of records (optional)
// - format: "jsonl" (default) or "json"
func (fh *FeedbackHandler) ExportFeedback(w http.ResponseWriter, r *http.Request) {
	days := 7
	if param := r.URL.Query().Get("days"); param != "" {
		if d, err := strconv.Atoi(param); err == nil && d > 0 {
			days = d
		}
	}

	limit := 0 // no limit by default
	if param := r.URL.Query().Get("limit"); param != "" {
		if l, err := strconv.Atoi(param); err == nil && l > 0 {
			limit = l
		}
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "jsonl"
	}

	since := time.Now().AddDate(0, 0, -days)
	records, err := fh.feedbackManager.GetFeedbackSince(since, limit)
	if err != nil {
		log.Printf("Failed to get feedback: %v", err)
		utils.JSON(w, http.StatusInternalServerError, models.Resp{
			OK:   false,
			Info: "failed to export feedback",
		})
		return
	}

	if len(records) == 0 {
		utils.JSON(w, http.StatusOK, models.Resp{
			OK:   true,
			Info: "no feedback to export",
		})
		return
	}

	if format == "jsonl" {
		jsonlData, err := fh.feedbackManager.ExportToJSONL(records)
		if err != nil {
			log.Printf("Failed to export to JSONL: %v", err)
			utils.JSON(w, http.StatusInternalServerError, models.Resp{
				OK:   false,
				Info: "failed to export to JSONL",
			})
			return
		}

		w.Header().Set("Content-Type", "application/jsonl")
		w.Header().Set("Content-Disposition", "attachment; filename=feedback_export.jsonl")
		w.WriteHeader(http.StatusOK)
		w.Write(jsonlData)
	} else {
		utils.JSON(w, http.StatusOK, models.Resp{
			OK:   true,
			Info: records,
		})
	}

	log.Printf("Exported %d feedback records (last %d days)", len(records), days)
}

// GetFeedbackStats handles GET /api/v1/coach/feedback/stats
func (fh *FeedbackHandler) GetFeedbackStats(w http.ResponseWriter, r *http.Request) {
	stats, err := fh.feedbackManager.GetFeedbackStats()
	if err != nil {
		log.Printf("Failed to get feedback stats: %v", err)
		utils.JSON(w, http.StatusInternalServerError, models.Resp{
			OK:   false,
			Info: "failed to get feedback stats",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.Resp{
		OK:   true,
		Info: stats,
	})
}
