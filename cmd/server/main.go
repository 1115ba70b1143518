// Package main initializes and starts the counselling API server,
// setting up configuration, logging, the database, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/edupath/counsel/internal/config"
	"github.com/edupath/counsel/internal/db"
	"github.com/edupath/counsel/internal/logger"
	"github.com/edupath/counsel/internal/repository"
	"github.com/edupath/counsel/internal/server/handler/http"
	"github.com/edupath/counsel/internal/service"
	"github.com/edupath/counsel/internal/token"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Seed the university catalogue.
	if err := db.SeedUniversities(context.Background(), postgresDB, zapLogger); err != nil {
		zapLogger.Fatal("cannot seed universities", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	profileRepo := repository.NewPostgresProfileRepository(postgresDB)
	stageRepo := repository.NewPostgresStageRepository(postgresDB)
	universityRepo := repository.NewPostgresUniversityRepository(postgresDB)
	shortlistRepo := repository.NewPostgresShortlistRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)

	// Initialize token signing.
	tokens := token.NewManager(options.JWTSecret, time.Duration(options.TokenTTLMinutes)*time.Minute)

	// Initialize business-logic services.
	engine := service.NewEngine(userRepo, profileRepo, stageRepo, universityRepo, shortlistRepo)
	authService := service.NewAuthService(userRepo, profileRepo, stageRepo, tokens)
	onboardingService := service.NewOnboardingService(userRepo, profileRepo, stageRepo)
	dashboardService := service.NewDashboardService(userRepo, profileRepo, stageRepo, taskRepo)
	finalizeService := service.NewFinalizeService(userRepo, profileRepo, stageRepo, shortlistRepo, engine)
	applicationService := service.NewApplicationService(userRepo, profileRepo, stageRepo, taskRepo, engine)
	advisorService := service.NewAdvisorService(userRepo, profileRepo, stageRepo, universityRepo, shortlistRepo, taskRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	onboardingHandler := &http.OnboardingHandler{OnboardingService: onboardingService}
	dashboardHandler := &http.DashboardHandler{DashboardService: dashboardService}
	finalizeHandler := &http.FinalizeHandler{FinalizeService: finalizeService}
	applicationHandler := &http.ApplicationHandler{ApplicationService: applicationService}
	advisorHandler := &http.AdvisorHandler{AdvisorService: advisorService, ActionExecutor: engine}
	universityHandler := &http.UniversityHandler{UniversityService: universityRepo}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		onboardingHandler,
		dashboardHandler,
		finalizeHandler,
		applicationHandler,
		advisorHandler,
		universityHandler,
		tokens,
		zapLogger,
	)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
