package app

import (
	"time"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/config"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/embedding"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/models"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/monitoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/resilience"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
)

// Scoring is the loaded scoring context plus what health reporting needs to
// know about where it came from.
type Scoring struct {
	Services          *scoring.Services
	Sources           map[string]string
	EmbeddingProvider string
}

// EmbeddingBreaker trips after five consecutive remote embedding failures.
var EmbeddingBreaker = resilience.CircuitBreakerConfig{
	FailureThreshold: 5,
	RecoveryTimeout:  30 * time.Second,
	SuccessThreshold: 1,
}

// LoadScoring loads the model artifacts once, builds the embedding backend
// and wraps every predictor with metrics and logging.
func LoadScoring(cfg *config.Config, metrics *monitoring.Metrics, logger *monitoring.Logger, breakers *resilience.CircuitBreakerRegistry) (*Scoring, error) {
	store := models.NewArtifactStore(cfg.Models.Dir)
	predictors, err := store.LoadPredictors()
	if err != nil {
		return nil, errors.NewConfigurationError("unable to load model artifacts from "+cfg.Models.Dir, err)
	}

	provider := cfg.Embedding.Provider
	if provider == "" {
		provider = embedding.ProviderHashing
	}
	embedder, err := embedding.New(embedding.Options{
		Provider:  provider,
		Dimension: cfg.Embedding.Dimension,
		URL:       cfg.Embedding.URL,
		Model:     cfg.Embedding.Model,
		APIKey:    cfg.Embedding.APIKey,
		BaseURL:   cfg.Embedding.BaseURL,
		Timeout:   cfg.Embedding.Timeout,
		Breaker:   EmbeddingBreaker,
	}, breakers)
	if err != nil {
		return nil, errors.NewConfigurationError("unable to build embedding backend", err)
	}

	variant, err := scoring.ConfidenceVariant(cfg.Models.ConfidenceVariant)
	if err != nil {
		return nil, err
	}

	services := scoring.NewServices(
		monitoring.InstrumentClassifier(predictors.Risk, "logistic", metrics, logger),
		monitoring.InstrumentRegressor(predictors.Assignee, "linear", metrics, logger),
		monitoring.InstrumentEmbedder(embedder, provider, metrics, logger),
		scoring.WithConfidence(variant),
		scoring.WithHighestSeverity(predictors.HighestSeverity),
	)

	sources := make(map[string]string, len(predictors.Sources)+1)
	for name, source := range predictors.Sources {
		sources[name] = source
	}
	sources["embedding"] = provider

	if logger != nil {
		logger.Info("Predictors loaded",
			"risk", sources[models.RiskArtifact],
			"assignee", sources[models.AssigneeArtifact],
			"embedding", provider,
			"confidence", variant.Name,
			"highest_severity", predictors.HighestSeverity)
	}

	return &Scoring{Services: services, Sources: sources, EmbeddingProvider: provider}, nil
}
