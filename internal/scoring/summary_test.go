package scoring

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNarrative(t *testing.T) {
	base := SummaryInput{
		Title:       "Login page",
		Description: "Building the OAuth Flow",
		Subtasks:    []string{"UI", "Backend"},
	}

	t.Run("within estimate", func(t *testing.T) {
		in := base
		in.EstimatedHours, in.ActualHours = 10, 8
		got := Narrative(in)
		assert.Equal(t, "The task 'Login page' involved building the oauth flow. Work included: UI, Backend. "+
			"Completed efficiently in 8 hours (estimated 10 hours). ", got)
	})

	t.Run("over estimate", func(t *testing.T) {
		in := base
		in.EstimatedHours, in.ActualHours = 10, 12.5
		got := Narrative(in)
		assert.Contains(t, got, "Took 12.5 hours, exceeding the 10 hour estimate.")
		assert.NotContains(t, got, "efficiently")
	})

	t.Run("no hours no subtasks", func(t *testing.T) {
		in := SummaryInput{Title: "T", Description: "D", ActualHours: 5}
		got := Narrative(in)
		assert.Equal(t, "The task 'T' involved d. Work included: no subtasks. ", got)
	})

	t.Run("comments become notes", func(t *testing.T) {
		in := base
		in.Comments = []string{"Done.", "Needs docs"}
		assert.True(t, strings.HasSuffix(Narrative(in), "Developer notes: Done. Needs docs."))
	})

	t.Run("notes are capped", func(t *testing.T) {
		in := base
		in.Comments = []string{strings.Repeat("n", 300)}
		got := Narrative(in)
		assert.Contains(t, got, "Developer notes: "+strings.Repeat("n", 200)+".")
		assert.NotContains(t, got, strings.Repeat("n", 201))
	})
}

func TestNarrativeLengthCap(t *testing.T) {
	in := SummaryInput{
		Title:          strings.Repeat("title ", 100),
		Description:    strings.Repeat("é", 1000),
		Subtasks:       []string{strings.Repeat("s", 400)},
		Comments:       []string{strings.Repeat("c", 400)},
		ActualHours:    3,
		EstimatedHours: 4,
	}
	got := Narrative(in)
	assert.Equal(t, MaxSummaryLength, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestEstimateComplexity(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		descLen  int
		expected string
	}{
		{"short", "fix bug", 50, ComplexityLow},
		{"long description", "fix bug", 250, ComplexityMedium},
		{"wordy title", "one two three four five six", 10, ComplexityMedium},
		{"very long description", "fix bug", 501, ComplexityHigh},
		{"integration title", "API Integration work", 600, ComplexityHigh},
		{"integration short", "CI integration", 0, ComplexityHigh},
		{"boundary", "fix", 200, ComplexityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateComplexity(tt.title, strings.Repeat("x", tt.descLen)))
		})
	}
}

func TestSuggestTask(t *testing.T) {
	got := SuggestTask("Add export", strings.Repeat("d", 150), "feature")
	assert.Equal(t, "Task: Add export. Details: "+strings.Repeat("d", 100)+"...", got.Summary)
	assert.Len(t, got.SuggestedSubtasks, 4)
	assert.Equal(t, "Design and plan implementation", got.SuggestedSubtasks[0])
	assert.Equal(t, ComplexityLow, got.EstimatedComplexity)
	assert.Equal(t, "feature", got.TaskType)

	bug := SuggestTask("Crash on save", "", "BUG")
	assert.Equal(t, "Task: Crash on save. ", bug.Summary)
	assert.Equal(t, "Reproduce and investigate bug", bug.SuggestedSubtasks[0])

	chore := SuggestTask("Bump deps", "", "CHORE")
	assert.NotNil(t, chore.SuggestedSubtasks)
	assert.Empty(t, chore.SuggestedSubtasks)
}

func TestChecklistIsCaseSensitive(t *testing.T) {
	assert.Len(t, Checklist("FEATURE"), 4)
	assert.Empty(t, Checklist("bug"))
	assert.Empty(t, Checklist(" BUG "))

	untitled := SuggestTask("", "", "feature")
	assert.Equal(t, "Task: . ", untitled.Summary)
	assert.Empty(t, untitled.SuggestedSubtasks)
	assert.Equal(t, "feature", untitled.TaskType)
	assert.Equal(t, ComplexityLow, untitled.EstimatedComplexity)
}

func TestChecklistReturnsCopy(t *testing.T) {
	list := Checklist("BUG")
	list[0] = "changed"
	assert.Equal(t, "Reproduce and investigate bug", Checklist("BUG")[0])
}
