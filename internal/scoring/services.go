package scoring

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
)

const (
	// DefaultHighestSeverity is the risk label that marks a likely missed deadline.
	DefaultHighestSeverity = "HIGH"
	// TopK caps the number of assignee recommendations returned.
	TopK = 3

	defaultEmbeddingConcurrency = 4
)

// Services is the read-only scoring context built once at startup and shared
// by every request. It holds the predictors and the settings that shape their
// output; nothing in it changes after NewServices returns.
type Services struct {
	risk     Classifier
	assignee Regressor
	embedder Embedder

	confidence      ConfidenceClassifier
	highestSeverity string
	concurrency     int
}

// Option configures Services at construction time.
type Option func(*Services)

// WithConfidence selects the classifier used to band risk probabilities.
func WithConfidence(c ConfidenceClassifier) Option {
	return func(s *Services) { s.confidence = c }
}

// WithHighestSeverity sets the label for which WillMissDeadline is true.
func WithHighestSeverity(label string) Option {
	return func(s *Services) {
		if label = strings.TrimSpace(label); label != "" {
			s.highestSeverity = label
		}
	}
}

// WithEmbeddingConcurrency bounds parallel skill embeddings within one ranking call.
func WithEmbeddingConcurrency(n int) Option {
	return func(s *Services) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewServices wires the predictors. Any of them may be nil; operations that
// need a missing predictor fail with a PreconditionError.
func NewServices(risk Classifier, assignee Regressor, embedder Embedder, opts ...Option) *Services {
	s := &Services{
		risk:            risk,
		assignee:        assignee,
		embedder:        embedder,
		confidence:      CanonicalConfidence,
		highestSeverity: DefaultHighestSeverity,
		concurrency:     defaultEmbeddingConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loaded reports which predictors are present.
func (s *Services) Loaded() map[string]bool {
	return map[string]bool{
		"risk":      s.risk != nil,
		"assignee":  s.assignee != nil,
		"embedding": s.embedder != nil,
	}
}

// Ready returns a PreconditionError naming every missing predictor.
func (s *Services) Ready() error {
	var missing []string
	for _, name := range []string{"risk", "assignee", "embedding"} {
		if !s.Loaded()[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewPreconditionError("predictors not initialized: " + strings.Join(missing, ", "))
	}
	return nil
}

// Confidence returns the configured risk confidence classifier.
func (s *Services) Confidence() ConfidenceClassifier { return s.confidence }

// predictorError keeps typed errors from a predictor intact and wraps anything else.
func predictorError(name string, err error) error {
	if errors.IsPredictor(err) || errors.IsPrecondition(err) || errors.IsValidation(err) {
		return err
	}
	return errors.NewPredictorError(name, err)
}

func (s *Services) embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, predictorError("embedding", err)
	}
	if err := checkFinite(vec); err != nil {
		return nil, errors.NewPredictorError("embedding", err)
	}
	return vec, nil
}
