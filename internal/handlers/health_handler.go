package handlers

import (
	"net/http"

	"prepcoach/coach/internal/config"
	"prepcoach/coach/internal/llm"
	"prepcoach/coach/internal/prompts"
	"prepcoach/coach/internal/session"
	"prepcoach/coach/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type HealthHandler struct {
	provider llm.Provider
	catalog  *prompts.Catalog
	store    session.Store
	config   *config.Config
}

func NewHealthHandler(provider llm.Provider, catalog *prompts.Catalog, store session.Store, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		catalog:  catalog,
		store:    store,
		config:   cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "coach",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	// verify the model provider is initialized
	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "Model provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	// verify the prompt catalog has templates loaded
	if handler.catalog == nil || handler.catalog.Templates() == 0 {
		checks["prompt_catalog"] = ReadinessCheck{
			Status:  "failed",
			Message: "No prompt templates loaded",
		}
		allChecksPass = false
	} else {
		checks["prompt_catalog"] = ReadinessCheck{Status: "ok"}
	}

	// verify the session backend is reachable
	if handler.store == nil {
		checks["session_store"] = ReadinessCheck{
			Status:  "failed",
			Message: "Session store not initialized",
		}
		allChecksPass = false
	} else if err := handler.store.Ping(request.Context()); err != nil {
		checks["session_store"] = ReadinessCheck{
			Status:  "failed",
			Message: "Session backend unreachable: " + err.Error(),
		}
		allChecksPass = false
	} else {
		checks["session_store"] = ReadinessCheck{Status: "ok"}
	}

	// verify configuration is valid
	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{
			Status:  "failed",
			Message: "Configuration not loaded",
		}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: "coach",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
