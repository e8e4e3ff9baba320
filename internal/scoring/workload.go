package scoring

import (
	"math"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
)

// WorkloadFigures holds the two views of a developer's spare capacity.
type WorkloadFigures struct {
	// Free is maxCapacity minus currentWorkload in raw units; it may be negative.
	Free float64
	// Availability is Free as a percentage of maxCapacity, clamped to [0,100].
	Availability int
}

// ScoreWorkload converts a capacity and current-load pair into WorkloadFigures.
func ScoreWorkload(currentWorkload, maxCapacity float64) (WorkloadFigures, error) {
	if maxCapacity <= 0 || math.IsNaN(maxCapacity) || math.IsInf(maxCapacity, 0) {
		return WorkloadFigures{}, errors.NewFieldError("maxCapacity", "must be a finite number greater than 0")
	}

	free := maxCapacity - currentWorkload
	pct := math.Round(100 * free / maxCapacity)
	pct = math.Max(0, math.Min(100, pct))

	return WorkloadFigures{Free: free, Availability: int(pct)}, nil
}
