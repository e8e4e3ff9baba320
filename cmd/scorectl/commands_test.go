package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/types"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FLOWDESK_ENV", "test")
	t.Setenv("LOG_LEVEL", "ERROR")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRiskCommand(t *testing.T) {
	out, err := runCLI(t,
		`{"estimatedHours":40,"storyPoints":13,"assignedToWorkload":60,"priority":"CRITICAL","subtaskCount":8,"taskAgeDays":30}`,
		"risk", "--model-dir", t.TempDir())
	require.NoError(t, err)

	var resp types.RiskResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "HIGH", resp.RiskLevel)
	assert.True(t, resp.WillMissDeadline)
}

func TestRiskCommandFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "task.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"storyPoints":-1}`), 0o644))

	_, err := runCLI(t, "", "risk", "--model-dir", dir, "--file", file)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRecommendCommand(t *testing.T) {
	body := `{"taskSkills":["go"],"developers":[
		{"userId":"a","skills":["go"],"currentWorkload":5},
		{"userId":"b","skills":["css"],"currentWorkload":35}
	]}`

	out, err := runCLI(t, body, "recommend", "--model-dir", t.TempDir())
	require.NoError(t, err)
	var scores []types.AssigneeScore
	require.NoError(t, json.Unmarshal([]byte(out), &scores))
	require.Len(t, scores, 2)
	assert.Equal(t, "a", scores[0].UserID)

	out, err = runCLI(t, body, "recommend", "--detailed", "--model-dir", t.TempDir())
	require.NoError(t, err)
	var recs []scoring.AssigneeRecommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 2)
	assert.NotEmpty(t, recs[0].Reasoning)
	assert.Equal(t, scores[0].MatchPercentage, recs[0].RecommendationScore)
}

func TestSummarizeCommand(t *testing.T) {
	out, err := runCLI(t, `{"taskTitle":"Login","taskDescription":"Build it","actualHours":12,"estimatedHours":10}`, "summarize")
	require.NoError(t, err)
	assert.Contains(t, out, "exceeding")
}

func TestSuggestCommand(t *testing.T) {
	out, err := runCLI(t, `{"title":"Add export","taskType":"FEATURE"}`, "suggest")
	require.NoError(t, err)

	var suggestion scoring.TaskSuggestion
	require.NoError(t, json.Unmarshal([]byte(out), &suggestion))
	assert.Len(t, suggestion.SuggestedSubtasks, 4)
	assert.Equal(t, scoring.ComplexityLow, suggestion.EstimatedComplexity)
}

func TestModelsExportCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "", "models", "export", "--model-dir", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "risk_model.json"))
	assert.FileExists(t, filepath.Join(dir, "assignee_model.json"))

	_, err = runCLI(t, `{}`, "risk", "--model-dir", dir)
	assert.NoError(t, err)
}
