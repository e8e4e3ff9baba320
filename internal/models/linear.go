package models

import (
	"context"
	"fmt"
	"math"
)

// LinearRegressor implements scoring.Regressor. Output is clamped to [0,100].
type LinearRegressor struct {
	model *AssigneeModel
}

func NewLinearRegressor(m *AssigneeModel) (*LinearRegressor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &LinearRegressor{model: m}, nil
}

func (r *LinearRegressor) Regress(ctx context.Context, vector []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(vector) != AssigneeFeatureCount {
		return 0, fmt.Errorf("assignee vector has %d features, want %d", len(vector), AssigneeFeatureCount)
	}

	score := r.model.Intercept
	for i, x := range vector {
		score += r.model.Weights[i] * x
	}
	if math.IsNaN(score) {
		return 0, fmt.Errorf("assignee score is NaN")
	}
	return math.Max(0, math.Min(100, score)), nil
}
