package models

import (
	"fmt"
	"math"
)

// RiskModel is a multinomial logistic classifier over the six risk features.
// Inputs are standardised with Means and Scales before the linear layer.
type RiskModel struct {
	Classes []string `json:"classes" yaml:"classes"`
	// SeverityOrder lists labels from least to most severe; the last one marks
	// a likely missed deadline.
	SeverityOrder []string    `json:"severityOrder" yaml:"severityOrder"`
	Means         []float64   `json:"means" yaml:"means"`
	Scales        []float64   `json:"scales" yaml:"scales"`
	Weights       [][]float64 `json:"weights" yaml:"weights"`
	Intercepts    []float64   `json:"intercepts" yaml:"intercepts"`
}

// AssigneeModel is a linear regressor over the four assignee features.
type AssigneeModel struct {
	Weights   []float64 `json:"weights" yaml:"weights"`
	Intercept float64   `json:"intercept" yaml:"intercept"`
}

const (
	RiskFeatureCount     = 6
	AssigneeFeatureCount = 4
)

// HighestSeverity returns the most severe label.
func (m *RiskModel) HighestSeverity() string {
	if len(m.SeverityOrder) > 0 {
		return m.SeverityOrder[len(m.SeverityOrder)-1]
	}
	return "HIGH"
}

func (m *RiskModel) Validate() error {
	n := len(m.Classes)
	if n < 2 {
		return fmt.Errorf("risk model needs at least 2 classes, got %d", n)
	}
	seen := make(map[string]bool, n)
	for _, c := range m.Classes {
		if c == "" || seen[c] {
			return fmt.Errorf("risk model class labels must be unique and non-empty")
		}
		seen[c] = true
	}
	for _, c := range m.SeverityOrder {
		if !seen[c] {
			return fmt.Errorf("severity label %q is not a model class", c)
		}
	}
	if len(m.Means) != RiskFeatureCount || len(m.Scales) != RiskFeatureCount {
		return fmt.Errorf("risk model needs %d means and scales", RiskFeatureCount)
	}
	for i, s := range m.Scales {
		if s <= 0 || !finite(s) || !finite(m.Means[i]) {
			return fmt.Errorf("risk model scale %d must be a positive finite number", i)
		}
	}
	if len(m.Weights) != n || len(m.Intercepts) != n {
		return fmt.Errorf("risk model needs one weight row and intercept per class")
	}
	for i, row := range m.Weights {
		if len(row) != RiskFeatureCount {
			return fmt.Errorf("risk model weight row %d has %d entries, want %d", i, len(row), RiskFeatureCount)
		}
		if !allFinite(row) || !finite(m.Intercepts[i]) {
			return fmt.Errorf("risk model weight row %d is not finite", i)
		}
	}
	return nil
}

func (m *AssigneeModel) Validate() error {
	if len(m.Weights) != AssigneeFeatureCount {
		return fmt.Errorf("assignee model has %d weights, want %d", len(m.Weights), AssigneeFeatureCount)
	}
	if !allFinite(m.Weights) || !finite(m.Intercept) {
		return fmt.Errorf("assignee model weights must be finite")
	}
	return nil
}

// DefaultRiskModel returns the built-in baseline: long, large, loaded, urgent,
// fragmented and stale tasks lean HIGH; the opposite leans LOW.
func DefaultRiskModel() *RiskModel {
	high := []float64{0.9, 0.6, 0.8, -0.5, 0.4, 0.7}
	low := make([]float64, len(high))
	for i, w := range high {
		low[i] = -w
	}
	return &RiskModel{
		Classes:       []string{"HIGH", "LOW", "MEDIUM"},
		SeverityOrder: []string{"LOW", "MEDIUM", "HIGH"},
		Means:         []float64{16, 5, 30, 2.5, 3, 10},
		Scales:        []float64{12, 4, 15, 1, 3, 10},
		Weights:       [][]float64{high, low, make([]float64, RiskFeatureCount)},
		Intercepts:    []float64{-0.6, -0.6, 0.4},
	}
}

// DefaultAssigneeModel returns the built-in baseline regressor.
func DefaultAssigneeModel() *AssigneeModel {
	return &AssigneeModel{
		Weights:   []float64{0.55, 0.6, 25, -0.8},
		Intercept: 10,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}
