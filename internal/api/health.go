package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/cache"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/monitoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/ratelimit"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/resilience"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/types"
)

const serviceName = "FlowDesk ML Service"

// HealthHandler reports predictor readiness and the state of the
// supporting services. Breakers, limiter and cache are optional.
type HealthHandler struct {
	services          *scoring.Services
	sources           map[string]string
	embeddingProvider string
	breakers          *resilience.CircuitBreakerRegistry
	limiter           *ratelimit.RateLimiter
	cache             *cache.Cache
}

type HealthOption func(*HealthHandler)

// WithSources records where each predictor was loaded from.
func WithSources(sources map[string]string) HealthOption {
	return func(h *HealthHandler) { h.sources = sources }
}

func WithEmbeddingProvider(name string) HealthOption {
	return func(h *HealthHandler) { h.embeddingProvider = name }
}

func WithBreakers(r *resilience.CircuitBreakerRegistry) HealthOption {
	return func(h *HealthHandler) { h.breakers = r }
}

func WithRateLimiter(rl *ratelimit.RateLimiter) HealthOption {
	return func(h *HealthHandler) { h.limiter = rl }
}

func WithCache(c *cache.Cache) HealthOption {
	return func(h *HealthHandler) { h.cache = c }
}

func NewHealthHandler(services *scoring.Services, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{services: services}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health godoc
// @Summary      Health check
// @Description  Reports whether every predictor is loaded. Returns 503 when any is missing.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Failure      503  {object}  types.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := types.HealthResponse{
		Status:       "healthy",
		Service:      serviceName,
		ModelsLoaded: true,
		Predictors:   h.services.Loaded(),
		Sources:      h.sources,
		Uptime:       monitoring.Uptime().Round(time.Second).String(),
	}

	if err := h.services.Ready(); err != nil {
		resp.Status = "unhealthy"
		resp.ModelsLoaded = false
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Services godoc
// @Summary      Supporting service status
// @Description  Circuit breaker states of remote embedding backends, rate limiter and cache statistics.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.ServicesHealthResponse
// @Router       /health/services [get]
func (h *HealthHandler) Services(c *gin.Context) {
	resp := types.ServicesHealthResponse{
		Status:    "ok",
		Embedding: h.embeddingProvider,
		Breakers:  map[string]types.BreakerStatus{},
	}

	if h.breakers != nil {
		for name, stats := range h.breakers.GetStats() {
			status := types.BreakerStatus{State: stats.State, Failures: stats.Failures}
			if !stats.LastFailure.IsZero() {
				status.LastFailure = stats.LastFailure.Format(time.RFC3339)
			}
			if stats.State == resilience.StateOpen.String() {
				resp.Status = "degraded"
			}
			resp.Breakers[name] = status
		}
	}
	if h.limiter != nil {
		resp.RateLimit = h.limiter.GetStats()
	}
	if h.cache != nil {
		resp.Cache = h.cache.Stats()
	}

	c.JSON(http.StatusOK, resp)
}
