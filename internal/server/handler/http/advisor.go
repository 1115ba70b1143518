package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/edupath/counsel/internal/middleware"
	"github.com/edupath/counsel/internal/models"
)

// AdvisorService produces stage-aware guidance for a user.
type AdvisorService interface {
	Reason(ctx context.Context, email string) (*models.AdvisorReply, error)
}

// ActionExecutor runs advisor-suggested actions.
type ActionExecutor interface {
	Execute(ctx context.Context, email string, req models.ActionRequest) (*models.ActionResult, error)
}

// AdvisorHandler handles counsellor guidance and action execution.
type AdvisorHandler struct {
	AdvisorService AdvisorService
	ActionExecutor ActionExecutor
}

// Counsellor handles POST /api/v1/ai/counsellor. The request body is
// ignored, guidance depends only on the user's current state.
func (h *AdvisorHandler) Counsellor(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	reply, err := h.AdvisorService.Reason(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// ExecuteAction handles POST /api/v1/ai/action/execute.
func (h *AdvisorHandler) ExecuteAction(w http.ResponseWriter, r *http.Request) {
	var req models.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.BadRequest, "invalid request"))
		return
	}
	if req.ActionType == "" {
		writeError(w, apperr.New(apperr.BadRequest, "action_type is required"))
		return
	}

	email := middleware.GetUserEmailFromContext(r.Context())
	result, err := h.ActionExecutor.Execute(r.Context(), email, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
