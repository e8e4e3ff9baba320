package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactStoreDefaults(t *testing.T) {
	store := NewArtifactStore(t.TempDir())

	risk, path, err := store.LoadRiskModel()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultRiskModel(), risk)

	assignee, path, err := store.LoadAssigneeModel()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultAssigneeModel(), assignee)
}

func TestArtifactStoreRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			store := NewArtifactStore(dir)

			custom := DefaultAssigneeModel()
			custom.Intercept = 42

			path, err := store.Save(AssigneeArtifact, format, custom)
			require.NoError(t, err)
			assert.FileExists(t, path)

			loaded, loadedPath, err := store.LoadAssigneeModel()
			require.NoError(t, err)
			assert.Equal(t, path, loadedPath)
			assert.Equal(t, 42.0, loaded.Intercept)
		})
	}
}

func TestArtifactStoreYAMLRiskModel(t *testing.T) {
	dir := t.TempDir()
	doc := `classes: [LATE, ONTIME]
severityOrder: [ONTIME, LATE]
means: [0, 0, 0, 0, 0, 0]
scales: [1, 1, 1, 1, 1, 1]
weights:
  - [1, 0, 0, 0, 0, 0]
  - [-1, 0, 0, 0, 0, 0]
intercepts: [0, 0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "risk_model.yml"), []byte(doc), 0644))

	m, path, err := NewArtifactStore(dir).LoadRiskModel()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "risk_model.yml"), path)
	assert.Equal(t, []string{"LATE", "ONTIME"}, m.Classes)
	assert.Equal(t, "LATE", m.HighestSeverity())
}

func TestArtifactStoreRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed json", "assignee_model.json", `{"weights": [1,2`},
		{"wrong weight count", "assignee_model.json", `{"weights": [1, 2], "intercept": 0}`},
		{"malformed yaml", "assignee_model.yaml", "weights: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0644))

			_, _, err := NewArtifactStore(dir).LoadAssigneeModel()
			assert.Error(t, err)
		})
	}
}

func TestArtifactStoreBootstrap(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "models")
	store := NewArtifactStore(dir)

	written, err := store.Bootstrap("json")
	require.NoError(t, err)
	assert.Len(t, written, 2)

	preds, err := store.LoadPredictors()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "risk_model.json"), preds.Sources[RiskArtifact])
	assert.Equal(t, "HIGH", preds.HighestSeverity)

	_, err = store.Save(RiskArtifact, "toml", DefaultRiskModel())
	assert.Error(t, err)
}

func TestLoadPredictorsDefaults(t *testing.T) {
	preds, err := NewArtifactStore(t.TempDir()).LoadPredictors()
	require.NoError(t, err)
	assert.NotNil(t, preds.Risk)
	assert.NotNil(t, preds.Assignee)
	assert.Equal(t, "default", preds.Sources[AssigneeArtifact])
}
