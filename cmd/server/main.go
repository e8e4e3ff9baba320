// @title        FlowDesk ML Service API
// @version      1.0
// @description  Risk prediction, assignee recommendation and task summaries for FlowDesk.
// @BasePath     /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/app"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/cache"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/config"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/monitoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/ratelimit"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/resilience"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Structured logging setup
	appLogger := monitoring.NewLogger(cfg.LogLevel)
	slog.SetDefault(appLogger.Logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appMetrics := monitoring.NewMetrics()
	breakers := resilience.NewCircuitBreakerRegistry()

	loaded, err := app.LoadScoring(cfg, appMetrics, appLogger, breakers)
	if err != nil {
		slog.Error("Failed to load predictors", "error", err)
		os.Exit(1)
	}

	redisClient, err := ratelimit.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis unavailable, rate limiting stays in memory", "error", err)
	}
	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		IPLimitPerMin: cfg.Server.RateLimitPerMin,
	}, appMetrics)

	var responseCache *cache.Cache
	if cfg.Server.CacheTTL > 0 {
		responseCache = cache.NewCache(cfg.Server.CacheTTL, cache.DefaultMaxEntries)
	}

	r := setupRouter(&server{
		cfg:      cfg,
		scoring:  loaded,
		metrics:  appMetrics,
		logger:   appLogger,
		limiter:  limiter,
		cache:    responseCache,
		breakers: breakers,
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.SystemLogger("startup", "FlowDesk ML Service listening on :"+cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	limiter.Close()
	if responseCache != nil {
		responseCache.Close()
	}
	errors.SafeClose(redisClient, "redis")

	slog.Info("Server exited", "uptime", monitoring.Uptime().String())
}
