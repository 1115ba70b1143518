package http

import (
	"context"
	"net/http"

	"github.com/edupath/counsel/internal/middleware"
	"github.com/edupath/counsel/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Signup registers a new account and returns a session.
	Signup(ctx context.Context, name, email, password string) (*models.Session, error)
	// Login verifies credentials and returns a session.
	Login(ctx context.Context, email, password string) (*models.Session, error)
	// Me returns the authenticated user's summary.
	Me(ctx context.Context, email string) (*models.UserSummary, error)
}

// AuthHandler handles HTTP requests for signup, login and identity lookup.
type AuthHandler struct {
	AuthService AuthService
}

// SignupRequest represents the JSON payload for user registration.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.AuthService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())
	summary, err := h.AuthService.Me(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
