package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepcoach/coach/internal/middleware"
	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/prompts"
	"prepcoach/coach/internal/session"
	"prepcoach/coach/internal/utils"
)

type SessionHandler struct {
	store   session.Store
	catalog *prompts.Catalog
	logger  *zap.Logger
}

func NewSessionHandler(store session.Store, catalog *prompts.Catalog, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

func sessionResponse(sess *session.Session) models.SessionResponse {
	return models.SessionResponse{
		SessionID:    sess.ID,
		Category:     sess.Category,
		TurnCount:    sess.TurnCount,
		MessageCount: sess.MessageCount(),
		History:      sess.History,
		CreatedAt:    sess.CreatedAt,
	}
}

// CreateSessionHandler starts a new conversation session.
func (h *SessionHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateSessionRequest](r)

	// unknown tags resolve to General up front so the stored category is
	// always a canonical catalog name
	category := h.catalog.Canonical(req.Category)

	sess, err := h.store.Create(r.Context(), category)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_error",
			Message: "Failed to create session",
		})
		return
	}

	h.logger.Info("Session created",
		zap.String("session_id", sess.ID),
		zap.String("category", sess.Category))

	utils.JSON(w, http.StatusCreated, sessionResponse(sess))
}

// GetSessionHandler returns the transcript and counters for a session.
func (h *SessionHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, sessionResponse(sess))
}

// ResetSessionHandler clears the history and counters of a session. Both the
// "clear history" and "new session" UI actions land here.
func (h *SessionHandler) ResetSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	sess.Reset()
	if err := h.store.Save(r.Context(), sess); err != nil {
		h.logger.Error("Failed to persist session reset",
			zap.Error(err), zap.String("session_id", sess.ID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_error",
			Message: "Failed to reset session",
		})
		return
	}

	utils.JSON(w, http.StatusOK, sessionResponse(sess))
}

// SetCategoryHandler switches the interviewer persona for subsequent turns.
// Prior turns are unaffected; the system prompt is never stored in history.
func (h *SessionHandler) SetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	req := middleware.GetValidatedRequest[*models.SetCategoryRequest](r)
	sess.SetCategory(h.catalog.Canonical(req.Category))

	if err := h.store.Save(r.Context(), sess); err != nil {
		h.logger.Error("Failed to persist category change",
			zap.Error(err), zap.String("session_id", sess.ID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_error",
			Message: "Failed to update category",
		})
		return
	}

	utils.JSON(w, http.StatusOK, sessionResponse(sess))
}

// DeleteSessionHandler ends a session and drops its state.
func (h *SessionHandler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	if err := h.store.Delete(r.Context(), sessionID); err != nil {
		h.logger.Error("Failed to delete session",
			zap.Error(err), zap.String("session_id", sessionID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_error",
			Message: "Failed to delete session",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.Resp{OK: true, Info: "session deleted"})
}

// CategoriesHandler lists the interview categories for the UI selector.
func (h *SessionHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.catalog.Categories(),
		"default":    prompts.DefaultCategory,
	})
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID := chi.URLParam(r, "session_id")

	sess, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Unknown or expired session",
		})
		return nil, false
	}
	return sess, true
}
