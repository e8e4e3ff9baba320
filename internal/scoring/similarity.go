package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two non-empty vectors differ in length.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Parallel vectors can land a few ulps below 100 after the square roots.
const similarityEpsilon = 1e-9

// Similarity returns the cosine similarity of a and b scaled to [0,100].
// Empty or zero vectors score 0; anti-correlated vectors are clamped to 0.
func Similarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB)) * 100
	if math.Abs(score-100) < similarityEpsilon {
		score = 100
	}
	return math.Max(0, math.Min(100, score)), nil
}

var errScoreOutOfRange = errors.New("assignee score outside [0,100]")
