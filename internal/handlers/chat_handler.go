package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"prepcoach/coach/internal/chat"
	"prepcoach/coach/internal/feedback"
	"prepcoach/coach/internal/llm"
	"prepcoach/coach/internal/middleware"
	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/session"
	"prepcoach/coach/internal/utils"
)

type ChatHandler struct {
	pipeline        *chat.TurnPipeline
	store           session.Store
	logger          *zap.Logger
	feedbackManager *feedback.FeedbackManager
}

func NewChatHandler(pipeline *chat.TurnPipeline, store session.Store, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		pipeline: pipeline,
		store:    store,
		logger:   logger,
	}
}

// SetFeedbackManager enables exchange caching for the feedback endpoints.
func (h *ChatHandler) SetFeedbackManager(fm *feedback.FeedbackManager) {
	h.feedbackManager = fm
}

// SendMessageHandler runs one conversation turn for a session.
func (h *ChatHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	sess, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Unknown or expired session",
		})
		return
	}

	req := middleware.GetValidatedRequest[*models.ChatMessageRequest](r)
	requestID := ensureRequestID(req.RequestID)

	result, err := h.pipeline.Submit(r.Context(), sess, req.Message, requestID)
	if err != nil {
		// detail is already in the log; the user gets the fixed message and
		// the troubleshooting checklist
		utils.JSON(w, statusForModelError(err), models.ErrorResponse{
			Code:            "model_invocation_error",
			Message:         chat.UserFacingErrorMessage,
			Troubleshooting: chat.TroubleshootingSteps,
		})
		return
	}

	if h.feedbackManager != nil {
		h.feedbackManager.StoreExchange(&models.ExchangeContext{
			RequestID:  requestID,
			SessionID:  sess.ID,
			Category:   sess.Category,
			Question:   req.Message,
			Reply:      result.Raw,
			ModelName:  result.Model,
			DurationMs: int(result.Duration.Milliseconds()),
			Timestamp:  time.Now(),
		})
	}

	utils.JSON(w, http.StatusOK, models.ChatMessageResponse{
		Reply:     result.Main,
		Score:     result.Score,
		RequestID: requestID,
		Metadata: models.TurnMetadata{
			ProcessingTime: int(result.Duration.Milliseconds()),
			Category:       sess.Category,
			Provider:       h.pipeline.ProviderName(),
			Model:          result.Model,
		},
	})
}

// statusForModelError maps provider failures onto HTTP statuses. Rate limits
// surface as 429 so clients can back off; everything else is a 500.
func statusForModelError(err error) int {
	var provErr *llm.ProviderError
	if errors.As(err, &provErr) && provErr.Code == llm.ErrCodeRateLimit {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func generateRequestID() string {
	return uuid.New().String()
}

// ensureRequestID generates a request ID if one is not provided
func ensureRequestID(requestID string) string {
	if requestID == "" {
		return generateRequestID()
	}
	return requestID
}
