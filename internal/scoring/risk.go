package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
)

const probabilityTolerance = 1e-6

// AssessRisk classifies a task's schedule risk. The classifier output is
// checked before use; a malformed distribution is a PredictorError, never a
// guessed result.
func (s *Services) AssessRisk(ctx context.Context, f TaskFeatures) (*RiskAssessment, error) {
	if s.risk == nil {
		return nil, errors.NewPreconditionError("risk predictor not initialized")
	}

	label, probs, err := s.risk.Classify(ctx, RiskVector(f))
	if err != nil {
		return nil, predictorError("risk", err)
	}

	maxProb, err := validateDistribution(label, probs)
	if err != nil {
		return nil, errors.NewPredictorError("risk", err)
	}

	out := make(map[string]float64, len(probs))
	for k, v := range probs {
		out[k] = v
	}

	return &RiskAssessment{
		RiskLevel:        label,
		RiskScore:        maxProb,
		Confidence:       s.confidence.Classify(maxProb),
		Probabilities:    out,
		WillMissDeadline: label == s.highestSeverity,
		Factors:          f,
	}, nil
}

func validateDistribution(label string, probs map[string]float64) (float64, error) {
	if len(probs) == 0 {
		return 0, fmt.Errorf("empty probability distribution")
	}
	if _, ok := probs[label]; !ok {
		return 0, fmt.Errorf("predicted label %q missing from distribution", label)
	}

	var sum, maxProb float64
	for k, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return 0, fmt.Errorf("invalid probability %v for %q", p, k)
		}
		sum += p
		maxProb = math.Max(maxProb, p)
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return 0, fmt.Errorf("probabilities sum to %v", sum)
	}
	return maxProb, nil
}

func checkFinite(vec []float64) error {
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value at index %d", i)
		}
	}
	return nil
}
