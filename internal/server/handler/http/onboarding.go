package http

import (
	"context"
	"net/http"

	"github.com/edupath/counsel/internal/middleware"
	"github.com/edupath/counsel/internal/models"
)

// OnboardingService defines the onboarding operations required by the
// HTTP handlers.
type OnboardingService interface {
	SaveAcademic(ctx context.Context, email string, in models.OnboardingAcademic) error
	SaveGoals(ctx context.Context, email string, in models.OnboardingGoals) error
	SaveBudget(ctx context.Context, email string, in models.OnboardingBudget) error
	SaveReadiness(ctx context.Context, email string, in models.OnboardingReadiness) error
	Complete(ctx context.Context, email string) error
}

// OnboardingHandler handles the four sequential onboarding forms and the
// completion gate.
type OnboardingHandler struct {
	OnboardingService OnboardingService
}

func (h *OnboardingHandler) saved(w http.ResponseWriter, err error, message string) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// Academic handles POST /api/v1/onboarding/academic.
func (h *OnboardingHandler) Academic(w http.ResponseWriter, r *http.Request) {
	var req models.OnboardingAcademic
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	email := middleware.GetUserEmailFromContext(r.Context())
	h.saved(w, h.OnboardingService.SaveAcademic(r.Context(), email, req), "Academic details saved")
}

// Goals handles POST /api/v1/onboarding/goals.
func (h *OnboardingHandler) Goals(w http.ResponseWriter, r *http.Request) {
	var req models.OnboardingGoals
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	email := middleware.GetUserEmailFromContext(r.Context())
	h.saved(w, h.OnboardingService.SaveGoals(r.Context(), email, req), "Goals saved")
}

// Budget handles POST /api/v1/onboarding/budget.
func (h *OnboardingHandler) Budget(w http.ResponseWriter, r *http.Request) {
	var req models.OnboardingBudget
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	email := middleware.GetUserEmailFromContext(r.Context())
	h.saved(w, h.OnboardingService.SaveBudget(r.Context(), email, req), "Budget saved")
}

// Readiness handles POST /api/v1/onboarding/readiness.
func (h *OnboardingHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	var req models.OnboardingReadiness
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	email := middleware.GetUserEmailFromContext(r.Context())
	h.saved(w, h.OnboardingService.SaveReadiness(r.Context(), email, req), "Readiness saved")
}

// Complete handles POST /api/v1/onboarding/complete.
func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	if err := h.OnboardingService.Complete(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Onboarding completed",
		"profile_completed": true,
	})
}
