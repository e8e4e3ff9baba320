package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ZanzyTHEbar/flowdesk-ml/docs"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/api"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/app"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/cache"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/config"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/monitoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/ratelimit"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/resilience"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/security"
)

const (
	routePredictRisk        = "/api/ml/predict-risk"
	routeRecommendAssignees = "/api/ml/recommend-assignees"
	routeRecommendAssignee  = "/api/ml/recommend-assignee"
	routeGenerateSummary    = "/api/ml/generate-summary"
	routeSuggestTask        = "/api/ml/suggest-task"
)

// server holds everything the router needs. cache may be nil.
type server struct {
	cfg      *config.Config
	scoring  *app.Scoring
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	limiter  *ratelimit.RateLimiter
	cache    *cache.Cache
	breakers *resilience.CircuitBreakerRegistry
}

func setupRouter(s *server) *gin.Engine {
	r := gin.New()

	// Monitoring first so every request, rejected or not, is counted
	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))
	r.Use(monitoring.SecurityMonitoringMiddleware(s.logger, s.cfg.Server.MaxBodyBytes))

	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	sec := security.NewSecurityMiddleware(security.SecurityConfig{
		MaxBodyBytes:   s.cfg.Server.MaxBodyBytes,
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		RequestTimeout: s.cfg.Server.RequestTimeout,
		EnableHSTS:     s.cfg.Server.EnableHSTS,
	})
	r.Use(sec.CORSConfig())
	r.Use(sec.SecurityHeaders())
	r.Use(sec.RequestTimeout)
	r.Use(sec.ValidateContentType)
	r.Use(sec.LimitBody)

	r.Use(s.limiter.IPRateLimitMiddleware())

	if s.cache != nil {
		r.Use(s.cache.Middleware(s.metrics, s.logger,
			routePredictRisk,
			routeRecommendAssignees,
			routeRecommendAssignee,
			routeGenerateSummary,
			routeSuggestTask,
		))
	}

	ml := api.NewMLHandler(s.scoring.Services, s.logger)
	health := api.NewHealthHandler(s.scoring.Services,
		api.WithSources(s.scoring.Sources),
		api.WithEmbeddingProvider(s.scoring.EmbeddingProvider),
		api.WithBreakers(s.breakers),
		api.WithRateLimiter(s.limiter),
		api.WithCache(s.cache),
	)

	r.GET("/health", health.Health)
	r.GET("/health/services", health.Services)

	mlGroup := r.Group("/api/ml")
	{
		mlGroup.POST("/predict-risk", ml.PredictRisk)
		mlGroup.POST("/recommend-assignees", ml.RecommendAssignees)
		mlGroup.POST("/recommend-assignee", ml.RecommendAssignee)
		mlGroup.POST("/generate-summary", ml.GenerateSummary)
		mlGroup.POST("/suggest-task", ml.SuggestTask)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	return r
}
