package models

import (
	"fmt"
)

// Predictors bundles the in-process backends loaded from an ArtifactStore.
type Predictors struct {
	Risk            *LogisticClassifier
	Assignee        *LinearRegressor
	HighestSeverity string
	// Sources maps artifact name to the file it came from, or "default".
	Sources map[string]string
}

// LoadPredictors loads both artifacts once. Callers share the result read-only.
func (s *ArtifactStore) LoadPredictors() (*Predictors, error) {
	riskModel, riskPath, err := s.LoadRiskModel()
	if err != nil {
		return nil, err
	}
	assigneeModel, assigneePath, err := s.LoadAssigneeModel()
	if err != nil {
		return nil, err
	}

	risk, err := NewLogisticClassifier(riskModel)
	if err != nil {
		return nil, fmt.Errorf("risk model: %w", err)
	}
	assignee, err := NewLinearRegressor(assigneeModel)
	if err != nil {
		return nil, fmt.Errorf("assignee model: %w", err)
	}

	return &Predictors{
		Risk:            risk,
		Assignee:        assignee,
		HighestSeverity: riskModel.HighestSeverity(),
		Sources: map[string]string{
			RiskArtifact:     sourceName(riskPath),
			AssigneeArtifact: sourceName(assigneePath),
		},
	}, nil
}

func sourceName(path string) string {
	if path == "" {
		return "default"
	}
	return path
}
