package http

import (
	"net/http"

	"github.com/edupath/counsel/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// counselling API. It applies JSON content-type enforcement, request
// logging, and bearer-token authentication, and mounts the auth,
// onboarding, dashboard, finalize, application, and advisor endpoints
// under /api/v1.
//
// Routes:
//
//	GET  /                                        → health probe
//	POST /api/v1/auth/signup                      → authHandler.Signup
//	POST /api/v1/auth/login                       → authHandler.Login
//	GET  /api/v1/auth/me                          → authHandler.Me
//	POST /api/v1/onboarding/academic              → onboardingHandler.Academic
//	POST /api/v1/onboarding/goals                 → onboardingHandler.Goals
//	POST /api/v1/onboarding/budget                → onboardingHandler.Budget
//	POST /api/v1/onboarding/readiness             → onboardingHandler.Readiness
//	POST /api/v1/onboarding/complete              → onboardingHandler.Complete
//	GET  /api/v1/dashboard/summary                → dashboardHandler.Summary
//	GET  /api/v1/dashboard/strength               → dashboardHandler.Strength
//	GET  /api/v1/dashboard/tasks                  → dashboardHandler.Tasks
//	POST /api/v1/dashboard/tasks/{taskID}/complete → dashboardHandler.CompleteTask
//	GET  /api/v1/finalize/status                  → finalizeHandler.Status
//	POST /api/v1/finalize/lock                    → finalizeHandler.Lock
//	POST /api/v1/finalize/unlock                  → finalizeHandler.Unlock
//	POST /api/v1/application/start                → applicationHandler.Start
//	GET  /api/v1/application/tasks                → applicationHandler.Tasks
//	POST /api/v1/application/tasks/{taskID}/complete → applicationHandler.CompleteTask
//	POST /api/v1/ai/counsellor                    → advisorHandler.Counsellor
//	POST /api/v1/ai/action/execute                → advisorHandler.ExecuteAction
//	GET  /api/v1/universities                     → universityHandler.List
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON request bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. BearerAuth(parser)                   — enforces token auth on the protected group
func NewRouter(
	authHandler *AuthHandler,
	onboardingHandler *OnboardingHandler,
	dashboardHandler *DashboardHandler,
	finalizeHandler *FinalizeHandler,
	applicationHandler *ApplicationHandler,
	advisorHandler *AdvisorHandler,
	universityHandler *UniversityHandler,
	parser middleware.TokenParser,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Mount API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(parser))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/onboarding", func(r chi.Router) {
				r.Post("/academic", onboardingHandler.Academic)
				r.Post("/goals", onboardingHandler.Goals)
				r.Post("/budget", onboardingHandler.Budget)
				r.Post("/readiness", onboardingHandler.Readiness)
				r.Post("/complete", onboardingHandler.Complete)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/summary", dashboardHandler.Summary)
				r.Get("/strength", dashboardHandler.Strength)
				r.Get("/tasks", dashboardHandler.Tasks)
				r.Post("/tasks/{taskID}/complete", dashboardHandler.CompleteTask)
			})

			r.Route("/finalize", func(r chi.Router) {
				r.Get("/status", finalizeHandler.Status)
				r.Post("/lock", finalizeHandler.Lock)
				r.Post("/unlock", finalizeHandler.Unlock)
			})

			r.Route("/application", func(r chi.Router) {
				r.Post("/start", applicationHandler.Start)
				r.Get("/tasks", applicationHandler.Tasks)
				r.Post("/tasks/{taskID}/complete", applicationHandler.CompleteTask)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/counsellor", advisorHandler.Counsellor)
				r.Post("/action/execute", advisorHandler.ExecuteAction)
			})

			r.Get("/universities", universityHandler.List)
		})
	})

	return r
}
