package monitoring

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
)

// Predictor decorators record latency and outcome of every call. The scoring
// core sees only the narrow predictor interfaces.

type instrumentedClassifier struct {
	next    scoring.Classifier
	backend string
	metrics *Metrics
	logger  *Logger
}

func InstrumentClassifier(next scoring.Classifier, backend string, metrics *Metrics, logger *Logger) scoring.Classifier {
	if next == nil {
		return nil
	}
	return &instrumentedClassifier{next: next, backend: backend, metrics: metrics, logger: logger}
}

func (p *instrumentedClassifier) Classify(ctx context.Context, vector []float64) (string, map[string]float64, error) {
	start := time.Now()
	label, probs, err := p.next.Classify(ctx, vector)
	observe(p.metrics, p.logger, "risk", p.backend, time.Since(start), err)
	return label, probs, err
}

type instrumentedRegressor struct {
	next    scoring.Regressor
	backend string
	metrics *Metrics
	logger  *Logger
}

func InstrumentRegressor(next scoring.Regressor, backend string, metrics *Metrics, logger *Logger) scoring.Regressor {
	if next == nil {
		return nil
	}
	return &instrumentedRegressor{next: next, backend: backend, metrics: metrics, logger: logger}
}

func (p *instrumentedRegressor) Regress(ctx context.Context, vector []float64) (float64, error) {
	start := time.Now()
	score, err := p.next.Regress(ctx, vector)
	observe(p.metrics, p.logger, "assignee", p.backend, time.Since(start), err)
	return score, err
}

type instrumentedEmbedder struct {
	next    scoring.Embedder
	backend string
	metrics *Metrics
	logger  *Logger
}

func InstrumentEmbedder(next scoring.Embedder, backend string, metrics *Metrics, logger *Logger) scoring.Embedder {
	if next == nil {
		return nil
	}
	return &instrumentedEmbedder{next: next, backend: backend, metrics: metrics, logger: logger}
}

func (p *instrumentedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	start := time.Now()
	vec, err := p.next.Embed(ctx, text)
	observe(p.metrics, p.logger, "embedding", p.backend, time.Since(start), err)
	return vec, err
}

func observe(metrics *Metrics, logger *Logger, predictor, backend string, d time.Duration, err error) {
	if metrics != nil {
		metrics.RecordPredictorCall(predictor, d, err)
	}
	if logger != nil {
		logger.PredictorLogger(predictor, backend, d, err)
	}
}
