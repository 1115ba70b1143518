package http

import (
	"context"
	"net/http"

	"github.com/edupath/counsel/internal/models"
)

// UniversityService lists the university catalogue.
type UniversityService interface {
	List(ctx context.Context) ([]models.University, error)
}

// UniversityHandler handles the catalogue endpoint.
type UniversityHandler struct {
	UniversityService UniversityService
}

// List handles GET /api/v1/universities.
func (h *UniversityHandler) List(w http.ResponseWriter, r *http.Request) {
	universities, err := h.UniversityService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if universities == nil {
		universities = []models.University{}
	}
	writeJSON(w, http.StatusOK, universities)
}
