package http

import (
	"context"
	"net/http"

	"github.com/edupath/counsel/internal/middleware"
	"github.com/edupath/counsel/internal/models"
)

// FinalizeService defines the shortlist locking operations required by the
// HTTP handlers.
type FinalizeService interface {
	Status(ctx context.Context, email string) (*models.FinalizeStatus, error)
	Lock(ctx context.Context, email, universityID string) (*models.ActionResult, error)
	Unlock(ctx context.Context, email, universityID string) (*models.ActionResult, error)
}

// FinalizeHandler handles the finalize stage endpoints.
type FinalizeHandler struct {
	FinalizeService FinalizeService
}

// LockRequest is the body for lock and unlock calls.
type LockRequest struct {
	UniversityID string `json:"university_id" validate:"required"`
}

// Status handles GET /api/v1/finalize/status.
func (h *FinalizeHandler) Status(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	status, err := h.FinalizeService.Status(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Lock handles POST /api/v1/finalize/lock.
func (h *FinalizeHandler) Lock(w http.ResponseWriter, r *http.Request) {
	var req LockRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	email := middleware.GetUserEmailFromContext(r.Context())
	result, err := h.FinalizeService.Lock(r.Context(), email, req.UniversityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Unlock handles POST /api/v1/finalize/unlock.
func (h *FinalizeHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req LockRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	email := middleware.GetUserEmailFromContext(r.Context())
	result, err := h.FinalizeService.Unlock(r.Context(), email, req.UniversityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
