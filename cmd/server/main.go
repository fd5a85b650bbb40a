package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/github-activity/docs"
	"github.com/KOFI-GYIMAH/github-activity/internal/config"
	"github.com/KOFI-GYIMAH/github-activity/internal/github"
	"github.com/KOFI-GYIMAH/github-activity/internal/handler"
	md "github.com/KOFI-GYIMAH/github-activity/internal/middleware"
	"github.com/KOFI-GYIMAH/github-activity/internal/service"
	"github.com/KOFI-GYIMAH/github-activity/internal/worker"
	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title GitHub Commit Activity Dashboard
// @version 1.0.0
// @description Browse a GitHub user's repositories and their weekly, monthly and yearly commit activity.
// @host localhost:8081
// @BasePath /v1
func main() {
	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Initialize GitHub client
	githubClient := github.NewClient(
		cfg.GitHubToken,
		github.WithBaseURL(cfg.GitHubAPIURL),
		github.WithRetryDelay(cfg.RetryDelay),
	)

	// * Create controller and push channel
	controller := service.NewController(githubClient, cfg.MaxRetries)
	hub := handler.NewHub(controller.State)
	controller.Subscribe(hub.Publish)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx)

	// * Optional periodic refresh of the selected repository
	if cfg.RefreshInterval > 0 {
		refresher := worker.NewRefreshWorker(controller, cfg.RefreshInterval)
		go refresher.Run(ctx)
	}

	// * Optional initial search from REPOSITORY=owner or owner/name
	if cfg.Repository != "" {
		go preload(ctx, controller, cfg.Repository)
	}

	// * Create API server
	router := mux.NewRouter()
	router.Use(md.RecoveryMiddleware)
	router.Use(md.LoggingMiddleware)

	api := router.PathPrefix("/v1").Subrouter()
	handler.NewDashboardHandler(controller, hub).RegisterRoutes(api)
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)
	handler.NewPageHandler(controller).RegisterRoutes(router)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func preload(ctx context.Context, controller *service.Controller, target string) {
	username, name := target, ""
	if strings.Contains(target, "/") {
		var err error
		if username, name, err = config.ParseRepository(target); err != nil {
			logger.Error("Invalid repository format: %v", err)
			return
		}
	}

	if err := controller.Search(ctx, username); err != nil {
		logger.Error("Initial search for %s failed: %v", username, err)
		return
	}

	if name != "" && name != controller.State().Selection {
		if err := controller.Select(ctx, name); err != nil {
			logger.Error("Initial selection of %s failed: %v", target, err)
		}
	}
}
