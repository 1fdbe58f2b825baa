// Package api provides HTTP handlers for the ATLAS server.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"atlas/config"
	"atlas/debate"
	"atlas/policy"
	"atlas/store"
)

// Handler handles HTTP requests.
type Handler struct {
	orchestrator *debate.Orchestrator
	store        store.Store
	policy       *policy.Engine
	config       *config.Config
}

// NewHandler creates a new handler.
func NewHandler(orchestrator *debate.Orchestrator, store store.Store, policyEngine *policy.Engine, config *config.Config) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		store:        store,
		policy:       policyEngine,
		config:       config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Welcome)
	e.GET("/health", h.Health)

	// Orchestration API
	e.POST("/analyze_topic", h.AnalyzeTopic)
	e.POST("/run_debate", h.RunDebate)

	// Conversation log API
	e.POST("/add_log", h.AddLog)
	e.GET("/get_logs", h.GetLogs)
}

// Welcome returns the liveness/welcome payload.
// GET /
func (h *Handler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Welcome to the ATLAS API Server!",
	})
}

// Health returns health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorJSON writes the error envelope shared by all endpoints.
func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{
		"status":  "error",
		"message": message,
	})
}
