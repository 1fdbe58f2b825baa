package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"atlas/debate"
)

// TopicRequest is the request body shared by the analysis and debate
// endpoints.
type TopicRequest struct {
	Topic string `json:"topic"`
	Model string `json:"model"`
}

// AnalyzeTopic runs the single-role OSINT analysis.
// POST /analyze_topic
func (h *Handler) AnalyzeTopic(c echo.Context) error {
	ctx := c.Request().Context()

	var req TopicRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Topic == "" {
		return errorJSON(c, http.StatusBadRequest, "request body must include 'topic'")
	}

	if blocked, reason := h.checkPolicy(ctx, &req); blocked {
		return errorJSON(c, http.StatusBadRequest, reason)
	}

	requestID := "req_" + uuid.New().String()[:8]
	log.Printf("[%s] OSINT analysis on %q (model %q)", requestID, req.Topic, req.Model)

	report, err := h.orchestrator.AnalyzeTopic(ctx, req.Topic, req.Model)
	if err != nil {
		return h.orchestrationError(c, requestID, err)
	}

	// Best effort; the analysis already succeeded.
	if err := h.store.AddLogEntry(ctx, "OSINT Analysis on: "+req.Topic, report); err != nil {
		log.Printf("WARN: [%s] failed to log analysis: %v", requestID, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "success",
		"osint_report": report,
	})
}

// RunDebate runs the four-stage debate pipeline, serving cached results
// when fresh.
// POST /run_debate
func (h *Handler) RunDebate(c echo.Context) error {
	ctx := c.Request().Context()

	var req TopicRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Topic == "" {
		return errorJSON(c, http.StatusBadRequest, "request body must include 'topic'")
	}

	if blocked, reason := h.checkPolicy(ctx, &req); blocked {
		return errorJSON(c, http.StatusBadRequest, reason)
	}

	requestID := "req_" + uuid.New().String()[:8]
	log.Printf("[%s] debate on %q (model %q)", requestID, req.Topic, req.Model)

	result, err := h.orchestrator.RunDebate(ctx, req.Topic, req.Model)
	if err != nil {
		return h.orchestrationError(c, requestID, err)
	}

	if err := h.store.AddLogEntry(ctx, "Debate on: "+req.Topic, result.FinalSynthesis); err != nil {
		log.Printf("WARN: [%s] failed to log debate: %v", requestID, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":            "success",
		"debate_transcript": result.Transcript,
		"audit_report":      result.AuditReport,
		"final_synthesis":   result.FinalSynthesis,
	})
}

// checkPolicy evaluates the request policy; a block decision rejects the
// request before any model call. Policy errors fail open.
func (h *Handler) checkPolicy(ctx context.Context, req *TopicRequest) (bool, string) {
	if h.policy == nil {
		return false, ""
	}

	decision, err := h.policy.Evaluate(ctx, map[string]interface{}{
		"topic": req.Topic,
		"model": req.Model,
	})
	if err != nil {
		log.Printf("WARN: policy evaluation failed: %v", err)
		return false, ""
	}
	if decision == "block" {
		return true, "topic is not allowed by the request policy"
	}
	return false, ""
}

// orchestrationError maps orchestration failures onto HTTP status codes.
func (h *Handler) orchestrationError(c echo.Context, requestID string, err error) error {
	var validationErr *debate.ValidationError
	if errors.As(err, &validationErr) {
		return errorJSON(c, http.StatusBadRequest, validationErr.Message)
	}

	log.Printf("ERROR: [%s] orchestration failed: %v", requestID, err)
	return errorJSON(c, http.StatusInternalServerError, err.Error())
}
