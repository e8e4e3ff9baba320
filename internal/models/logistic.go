package models

import (
	"context"
	"fmt"
	"math"
)

// LogisticClassifier implements scoring.Classifier with a softmax over
// per-class linear scores.
type LogisticClassifier struct {
	model *RiskModel
}

func NewLogisticClassifier(m *RiskModel) (*LogisticClassifier, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &LogisticClassifier{model: m}, nil
}

func (c *LogisticClassifier) Classify(ctx context.Context, vector []float64) (string, map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if len(vector) != RiskFeatureCount {
		return "", nil, fmt.Errorf("risk vector has %d features, want %d", len(vector), RiskFeatureCount)
	}

	m := c.model
	logits := make([]float64, len(m.Classes))
	for k, row := range m.Weights {
		z := m.Intercepts[k]
		for i, x := range vector {
			z += row[i] * (x - m.Means[i]) / m.Scales[i]
		}
		logits[k] = z
	}

	probs := softmax(logits)
	best := 0
	out := make(map[string]float64, len(probs))
	for k, p := range probs {
		out[m.Classes[k]] = p
		if p > probs[best] {
			best = k
		}
	}
	return m.Classes[best], out, nil
}

func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, z := range logits {
		maxLogit = math.Max(maxLogit, z)
	}
	out := make([]float64, len(logits))
	var sum float64
	for i, z := range logits {
		out[i] = math.Exp(z - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
