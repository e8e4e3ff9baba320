package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxSummaryLength = 500
	maxNotesLength   = 200
	maxDetailsLength = 100
)

// Complexity levels produced by EstimateComplexity.
const (
	ComplexityLow    = "LOW"
	ComplexityMedium = "MEDIUM"
	ComplexityHigh   = "HIGH"
)

// SummaryInput is the completed-task record a narrative is written from.
type SummaryInput struct {
	Title          string   `json:"taskTitle"`
	Description    string   `json:"taskDescription"`
	Subtasks       []string `json:"subtasks"`
	Comments       []string `json:"comments"`
	ActualHours    float64  `json:"actualHours"`
	EstimatedHours float64  `json:"estimatedHours"`
}

// TaskSuggestion is the planning aid returned for a new task.
type TaskSuggestion struct {
	Summary             string   `json:"summary"`
	SuggestedSubtasks   []string `json:"suggested_subtasks"`
	EstimatedComplexity string   `json:"estimated_complexity"`
	TaskType            string   `json:"task_type"`
}

var checklists = map[string][]string{
	"FEATURE": {
		"Design and plan implementation",
		"Implement core functionality",
		"Write unit tests",
		"Code review and testing",
	},
	"BUG": {
		"Reproduce and investigate bug",
		"Implement fix",
		"Test fix thoroughly",
		"Deploy and verify",
	},
}

// Narrative writes a plain-language account of a completed task, capped at
// MaxSummaryLength characters.
func Narrative(in SummaryInput) string {
	var b strings.Builder

	work := "no subtasks"
	if len(in.Subtasks) > 0 {
		work = strings.Join(in.Subtasks, ", ")
	}
	fmt.Fprintf(&b, "The task '%s' involved %s. Work included: %s. ",
		in.Title, strings.ToLower(in.Description), work)

	if in.ActualHours != 0 && in.EstimatedHours != 0 {
		actual, estimated := formatHours(in.ActualHours), formatHours(in.EstimatedHours)
		if in.ActualHours <= in.EstimatedHours {
			fmt.Fprintf(&b, "Completed efficiently in %s hours (estimated %s hours). ", actual, estimated)
		} else {
			fmt.Fprintf(&b, "Took %s hours, exceeding the %s hour estimate. ", actual, estimated)
		}
	}

	if len(in.Comments) > 0 {
		notes := truncate(strings.Join(in.Comments, " "), maxNotesLength)
		fmt.Fprintf(&b, "Developer notes: %s.", notes)
	}

	return truncate(b.String(), MaxSummaryLength)
}

// SuggestTask produces a short summary, a checklist keyed by task type and a
// complexity estimate for a task that has not been started.
func SuggestTask(title, description, taskType string) TaskSuggestion {
	summary := fmt.Sprintf("Task: %s. ", title)
	if description != "" {
		summary += fmt.Sprintf("Details: %s...", truncate(description, maxDetailsLength))
	}

	return TaskSuggestion{
		Summary:             summary,
		SuggestedSubtasks:   Checklist(taskType),
		EstimatedComplexity: EstimateComplexity(title, description),
		TaskType:            taskType,
	}
}

// Checklist returns a copy of the checklist for taskType, or an empty list.
// Matching is case-sensitive.
func Checklist(taskType string) []string {
	items := checklists[taskType]
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// EstimateComplexity is a length heuristic. The HIGH checks run last and can
// only raise the estimate.
func EstimateComplexity(title, description string) string {
	descLen := len([]rune(description))

	complexity := ComplexityLow
	if descLen > 200 || len(strings.Fields(title)) > 5 {
		complexity = ComplexityMedium
	}
	if descLen > 500 || strings.Contains(strings.ToLower(title), "integration") {
		complexity = ComplexityHigh
	}
	return complexity
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
