package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AddLogRequest is the body for POST /add_log.
type AddLogRequest struct {
	Message string `json:"message"`
}

// AddLog appends a log entry with a placeholder response.
// POST /add_log
func (h *Handler) AddLog(c echo.Context) error {
	ctx := c.Request().Context()

	var req AddLogRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return errorJSON(c, http.StatusBadRequest, "missing 'message' in request body")
	}

	if err := h.store.AddLogEntry(ctx, req.Message, "This is a placeholder AI response."); err != nil {
		log.Printf("ERROR: failed to add log entry: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to add log entry")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"status":       "success",
		"message":      "Log added!",
		"your_message": req.Message,
	})
}

// GetLogs returns all log entries, newest first.
// GET /get_logs
func (h *Handler) GetLogs(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.store.ListLogEntries(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list log entries: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to list log entries")
	}

	return c.JSON(http.StatusOK, entries)
}
