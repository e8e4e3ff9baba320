package scoring

import "context"

// Classifier is the risk predictor: feature vector -> (label, per-class probabilities).
type Classifier interface {
	Classify(ctx context.Context, vector []float64) (string, map[string]float64, error)
}

// Regressor is the assignee predictor: feature vector -> score in [0,100].
type Regressor interface {
	Regress(ctx context.Context, vector []float64) (float64, error)
}

// Embedder maps free text to a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, vector []float64) (string, map[string]float64, error)

func (f ClassifierFunc) Classify(ctx context.Context, vector []float64) (string, map[string]float64, error) {
	return f(ctx, vector)
}

// RegressorFunc adapts a function to the Regressor interface.
type RegressorFunc func(ctx context.Context, vector []float64) (float64, error)

func (f RegressorFunc) Regress(ctx context.Context, vector []float64) (float64, error) {
	return f(ctx, vector)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, text string) ([]float64, error)

func (f EmbedderFunc) Embed(ctx context.Context, text string) ([]float64, error) {
	return f(ctx, text)
}
