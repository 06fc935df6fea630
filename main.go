package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jake-kelley/hold-or-sell/config"
	httpLayer "github.com/jake-kelley/hold-or-sell/http"
	"github.com/jake-kelley/hold-or-sell/repository"
	"github.com/jake-kelley/hold-or-sell/service"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	analysisRepo := repository.NewAnalysisRepositoryMemory()

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		cache = repository.NewRedisCache(cfg.Redis.Addr)
	} else {
		cache = repository.NewMockCache()
	}

	projectionService := service.NewProjectionService(analysisRepo, cache)

	analysisHandler := httpLayer.NewAnalysisHandler(projectionService)
	reportHandler := httpLayer.NewReportHandler(projectionService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/analysis/project",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(analysisHandler.ProjectScenario),
		),
	)

	mux.Handle(
		"/analysis/report",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(reportHandler.RenderReport),
		),
	)

	mux.Handle(
		"/analysis/history",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(analysisHandler.History),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 API listening on http://localhost:%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
