package http

import (
	"context"
	"net/http"

	"github.com/edupath/counsel/internal/middleware"
	"github.com/edupath/counsel/internal/models"
	"github.com/go-chi/chi/v5"
)

// ApplicationService defines the application stage operations required by
// the HTTP handlers.
type ApplicationService interface {
	Start(ctx context.Context, email string) (*models.ActionResult, error)
	Tasks(ctx context.Context, email string) ([]models.TaskDetail, error)
	CompleteTask(ctx context.Context, email, taskID string) (*models.Task, error)
}

// ApplicationHandler handles the application stage endpoints.
type ApplicationHandler struct {
	ApplicationService ApplicationService
}

// Start handles POST /api/v1/application/start.
func (h *ApplicationHandler) Start(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	result, err := h.ApplicationService.Start(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Tasks handles GET /api/v1/application/tasks.
func (h *ApplicationHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	tasks, err := h.ApplicationService.Tasks(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.TaskDetail{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CompleteTask handles POST /api/v1/application/tasks/{taskID}/complete.
func (h *ApplicationHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	task, err := h.ApplicationService.CompleteTask(r.Context(), email, chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
