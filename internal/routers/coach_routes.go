package routers

import (
	"prepcoach/coach/internal/handlers"
	"prepcoach/coach/internal/middleware"
	"prepcoach/coach/internal/models"

	"github.com/go-chi/chi/v5"
)

func CoachRoutes(router *chi.Mux, chatHandler *handlers.ChatHandler, sessionHandler *handlers.SessionHandler, feedbackHandler *handlers.FeedbackHandler) {
	router.Route("/api/v1/coach", func(r chi.Router) {
		r.Get("/categories", sessionHandler.CategoriesHandler)

		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/sessions", sessionHandler.CreateSessionHandler)
		r.Get("/sessions/{session_id}", sessionHandler.GetSessionHandler)
		r.Delete("/sessions/{session_id}", sessionHandler.DeleteSessionHandler)
		r.Post("/sessions/{session_id}/reset", sessionHandler.ResetSessionHandler)
		r.With(middleware.ValidateRequest[*models.SetCategoryRequest]()).Put("/sessions/{session_id}/category", sessionHandler.SetCategoryHandler)

		r.With(middleware.ValidateRequest[*models.ChatMessageRequest]()).Post("/sessions/{session_id}/messages", chatHandler.SendMessageHandler)

		if feedbackHandler != nil {
			r.Post("/feedback/{request_id}", feedbackHandler.SubmitFeedback)
			r.Get("/feedback/export", feedbackHandler.ExportFeedback)
			r.Get("/feedback/stats", feedbackHandler.GetFeedbackStats)
		}
	})
}
