package http

import (
	"context"
	"net/http"

	"github.com/edupath/counsel/internal/middleware"
	"github.com/edupath/counsel/internal/models"
	"github.com/go-chi/chi/v5"
)

// DashboardService defines the dashboard operations required by the HTTP
// handlers.
type DashboardService interface {
	Summary(ctx context.Context, email string) (*models.DashboardSummary, error)
	Strength(ctx context.Context, email string) (*models.ProfileStrength, error)
	Tasks(ctx context.Context, email string) ([]models.Task, error)
	CompleteTask(ctx context.Context, email, taskID string) (*models.Task, error)
}

// DashboardHandler handles the dashboard summary, strength and task
// endpoints.
type DashboardHandler struct {
	DashboardService DashboardService
}

// Summary handles GET /api/v1/dashboard/summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	summary, err := h.DashboardService.Summary(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Strength handles GET /api/v1/dashboard/strength.
func (h *DashboardHandler) Strength(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	strength, err := h.DashboardService.Strength(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, strength)
}

// Tasks handles GET /api/v1/dashboard/tasks. Listing reconciles gap-driven
// tasks before responding.
func (h *DashboardHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	tasks, err := h.DashboardService.Tasks(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CompleteTask handles POST /api/v1/dashboard/tasks/{taskID}/complete.
func (h *DashboardHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	task, err := h.DashboardService.CompleteTask(r.Context(), email, chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
