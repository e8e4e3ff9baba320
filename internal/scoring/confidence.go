package scoring

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
)

// ConfidenceClassifier maps a maximum class probability to a band.
// Both thresholds are exclusive: a probability must exceed High to be HIGH.
type ConfidenceClassifier struct {
	Name   string
	High   float64
	Medium float64
}

var (
	// CanonicalConfidence is used by the risk assessor unless configured otherwise.
	CanonicalConfidence = ConfidenceClassifier{Name: "canonical", High: 0.8, Medium: 0.6}
	// TransportConfidence reproduces the looser bands reported by the legacy HTTP layer.
	TransportConfidence = ConfidenceClassifier{Name: "transport", High: 0.7, Medium: 0.5}
)

func (c ConfidenceClassifier) Classify(probability float64) Confidence {
	switch {
	case probability > c.High:
		return ConfidenceHigh
	case probability > c.Medium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ConfidenceVariant resolves a named confidence classifier.
func ConfidenceVariant(name string) (ConfidenceClassifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CanonicalConfidence.Name:
		return CanonicalConfidence, nil
	case TransportConfidence.Name:
		return TransportConfidence, nil
	default:
		return ConfidenceClassifier{}, errors.NewConfigurationError(
			fmt.Sprintf("unknown confidence variant %q", name), nil)
	}
}

// ScoreConfidence bands an assignee predictor score on the 0-100 scale.
func ScoreConfidence(score float64) Confidence {
	switch {
	case score > 80:
		return ConfidenceHigh
	case score > 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
