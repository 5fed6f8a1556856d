package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/secubot/internal/api"
	"github.com/cloo-solutions/secubot/internal/domain"
	"github.com/cloo-solutions/secubot/internal/telemetry"
)

// ReviewRunnerInterface runs a full review against a pull request
type ReviewRunnerInterface interface {
	Run(ctx context.Context, prRef string) (domain.ReviewVerdict, error)
}

// ReviewHandler handles review requests
type ReviewHandler struct {
	runner ReviewRunnerInterface
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(runner ReviewRunnerInterface) *ReviewHandler {
	return &ReviewHandler{runner: runner}
}

type reviewRequest struct {
	PRURL string `json:"pr_url"`
}

type reviewResponse struct {
	RiskLevel   string `json:"risk_level"`
	Summary     string `json:"summary"`
	Decision    string `json:"decision"`
	UsedContext string `json:"used_context,omitempty"`
}

// Create runs a review for the pull request named in the request body and
// posts the verdict comment.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PRURL == "" {
		api.Error(w, http.StatusBadRequest, "pr_url is required")
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "ReviewHandler.Create", telemetry.SpanAttributes{
		PRReference: req.PRURL,
		Operation:   "review",
	})
	defer span.End()

	verdict, err := h.runner.Run(ctx, req.PRURL)
	if err != nil {
		span.SetError(err)
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, reviewResponse{
		RiskLevel:   string(verdict.RiskLevel.Normalize()),
		Summary:     verdict.Summary,
		Decision:    string(verdict.Decide()),
		UsedContext: verdict.UsedContext,
	})
}
