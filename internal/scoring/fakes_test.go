package scoring

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

type fakeClassifier struct {
	label string
	probs map[string]float64
	err   error
	calls atomic.Int32
	last  []float64
}

func (f *fakeClassifier) Classify(_ context.Context, vector []float64) (string, map[string]float64, error) {
	f.calls.Add(1)
	f.last = vector
	return f.label, f.probs, f.err
}

// fakeRegressor delegates to score so tests can steer the ranking.
type fakeRegressor struct {
	score func(vector []float64) (float64, error)
	calls atomic.Int32
}

func (f *fakeRegressor) Regress(_ context.Context, vector []float64) (float64, error) {
	f.calls.Add(1)
	return f.score(vector)
}

// fakeEmbedder maps each known word to a basis vector and sums them.
type fakeEmbedder struct {
	mu    sync.Mutex
	texts []string
	err   error
	dim   int
	calls atomic.Int32
}

var vocabulary = map[string]int{"go": 0, "postgres": 1, "react": 2, "css": 3, "api": 4}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	dim := f.dim
	if dim == 0 {
		dim = len(vocabulary)
	}
	vec := make([]float64, dim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if i, ok := vocabulary[word]; ok && i < dim {
			vec[i]++
		}
	}
	return vec, nil
}
