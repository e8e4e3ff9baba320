package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
)

// DefaultPriority is the ordinal used when priority is missing or unrecognized (MEDIUM).
const DefaultPriority = 3

var priorityOrdinals = map[string]int{
	"CRITICAL": 1,
	"HIGH":     2,
	"MEDIUM":   3,
	"LOW":      4,
}

// Developer field defaults applied when a roster entry omits them.
const (
	DefaultMaxCapacity     = 40.0
	DefaultCompletionRate  = 0.8
	DefaultAvgTaskDuration = 10.0
)

// PriorityOrdinal encodes a priority label, least urgent last.
func PriorityOrdinal(label string) int {
	if ord, ok := priorityOrdinals[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return ord
	}
	return DefaultPriority
}

// RiskVector lays out TaskFeatures in the order the risk classifier was trained on.
func RiskVector(f TaskFeatures) []float64 {
	return []float64{
		f.EstimatedHours,
		float64(f.StoryPoints),
		f.Workload,
		float64(f.Priority),
		float64(f.SubtaskCount),
		float64(f.AgeDays),
	}
}

// AssigneeVector lays out the assignee regressor inputs. workloadFree is in raw
// capacity units, not a percentage.
func AssigneeVector(skillMatchScore int, workloadFree, completionRate, avgTaskDuration float64) []float64 {
	return []float64{float64(skillMatchScore), workloadFree, completionRate, avgTaskDuration}
}

// ParseTaskFeatures builds TaskFeatures from a raw risk request body.
func ParseTaskFeatures(body []byte) (TaskFeatures, error) {
	root, err := parseObject(body)
	if err != nil {
		return TaskFeatures{}, err
	}
	return TaskFeaturesFrom(root)
}

// TaskFeaturesFrom coerces the risk request fields of obj. Missing numbers
// default to 0, numeric strings are accepted.
func TaskFeaturesFrom(obj gjson.Result) (TaskFeatures, error) {
	var (
		f   TaskFeatures
		err error
	)
	if f.EstimatedHours, err = nonNegativeFloat(obj, "estimatedHours"); err != nil {
		return f, err
	}
	if f.StoryPoints, err = nonNegativeInt(obj, "storyPoints"); err != nil {
		return f, err
	}
	if f.Workload, err = floatField(obj, "assignedToWorkload", 0); err != nil {
		return f, err
	}
	if f.SubtaskCount, err = nonNegativeInt(obj, "subtaskCount"); err != nil {
		return f, err
	}
	if f.AgeDays, err = nonNegativeInt(obj, "taskAgeDays"); err != nil {
		return f, err
	}
	f.Priority = priorityField(obj.Get("priority"))
	return f, nil
}

// ParseAssigneeRequest builds the task and roster of a raw assignee request body.
func ParseAssigneeRequest(body []byte) (AssigneeTask, []DeveloperProfile, error) {
	root, err := parseObject(body)
	if err != nil {
		return AssigneeTask{}, nil, err
	}

	task := AssigneeTask{Description: root.Get("taskDescription").String()}
	if task.Skills, err = stringList(root, "taskSkills"); err != nil {
		return AssigneeTask{}, nil, err
	}

	roster := root.Get("developers")
	if roster.Exists() && roster.Type != gjson.Null && !roster.IsArray() {
		return AssigneeTask{}, nil, errors.NewFieldError("developers", "must be an array")
	}

	entries := roster.Array()
	developers := make([]DeveloperProfile, 0, len(entries))
	for i, entry := range entries {
		dev, err := DeveloperFrom(entry)
		if err != nil {
			return AssigneeTask{}, nil, errors.NewValidationError(
				fmt.Sprintf("developers[%d] is invalid", i), err.Error())
		}
		developers = append(developers, dev)
	}
	return task, developers, nil
}

// DeveloperFrom coerces one roster entry. userId falls back to id.
func DeveloperFrom(obj gjson.Result) (DeveloperProfile, error) {
	if !obj.IsObject() {
		return DeveloperProfile{}, errors.NewValidationError("developer entry must be an object")
	}

	var (
		d   DeveloperProfile
		err error
	)
	d.ID = obj.Get("userId").String()
	if d.ID == "" {
		d.ID = obj.Get("id").String()
	}
	d.Name = obj.Get("name").String()

	if d.Skills, err = stringList(obj, "skills"); err != nil {
		return d, err
	}
	if d.CurrentWorkload, err = floatField(obj, "currentWorkload", 0); err != nil {
		return d, err
	}
	if d.MaxCapacity, err = floatField(obj, "maxCapacity", DefaultMaxCapacity); err != nil {
		return d, err
	}
	if d.CompletionRate, err = floatField(obj, "completionRate", DefaultCompletionRate); err != nil {
		return d, err
	}
	if d.CompletionRate < 0 || d.CompletionRate > 1 {
		return d, errors.NewFieldError("completionRate", "must be between 0 and 1")
	}
	if d.AvgTaskDuration, err = floatField(obj, "avgTaskDuration", DefaultAvgTaskDuration); err != nil {
		return d, err
	}
	if d.AvgTaskDuration <= 0 {
		return d, errors.NewFieldError("avgTaskDuration", "must be greater than 0")
	}
	return d, nil
}

// ParseSummaryInput reads a completed-task record for Narrative.
func ParseSummaryInput(body []byte) (SummaryInput, error) {
	root, err := parseObject(body)
	if err != nil {
		return SummaryInput{}, err
	}

	in := SummaryInput{
		Title:       root.Get("taskTitle").String(),
		Description: root.Get("taskDescription").String(),
	}
	if in.Subtasks, err = stringList(root, "subtasks"); err != nil {
		return in, err
	}
	if in.Comments, err = stringList(root, "comments"); err != nil {
		return in, err
	}
	if in.ActualHours, err = nonNegativeFloat(root, "actualHours"); err != nil {
		return in, err
	}
	if in.EstimatedHours, err = nonNegativeFloat(root, "estimatedHours"); err != nil {
		return in, err
	}
	return in, nil
}

// ParseSuggestionRequest reads title, description and taskType for SuggestTask.
// Missing fields are empty strings. The task type is kept verbatim, so only
// exact "FEATURE" and "BUG" select a checklist.
func ParseSuggestionRequest(body []byte) (title, description, taskType string, err error) {
	root, err := parseObject(body)
	if err != nil {
		return "", "", "", err
	}
	return root.Get("title").String(), root.Get("description").String(), root.Get("taskType").String(), nil
}

func parseObject(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.NewValidationError("malformed request body", "body is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, errors.NewValidationError("malformed request body", "body must be a JSON object")
	}
	return root, nil
}

func floatField(obj gjson.Result, field string, def float64) (float64, error) {
	v := obj.Get(field)
	switch v.Type {
	case gjson.Null:
		return def, nil
	case gjson.Number:
		return v.Num, nil
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return def, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, errors.NewFieldError(field, fmt.Sprintf("%q is not a number", v.Str))
		}
		return n, nil
	default:
		return 0, errors.NewFieldError(field, "must be a number")
	}
}

func nonNegativeFloat(obj gjson.Result, field string) (float64, error) {
	n, err := floatField(obj, field, 0)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.NewFieldError(field, "must not be negative")
	}
	return n, nil
}

// nonNegativeInt truncates toward zero, so 2.9 story points count as 2.
func nonNegativeInt(obj gjson.Result, field string) (int, error) {
	n, err := nonNegativeFloat(obj, field)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, errors.NewFieldError(field, "is out of range")
	}
	return int(n), nil
}

func priorityField(v gjson.Result) int {
	switch v.Type {
	case gjson.String:
		return PriorityOrdinal(v.Str)
	case gjson.Number:
		if ord := int(v.Num); float64(ord) == v.Num && ord >= 1 && ord <= 4 {
			return ord
		}
	}
	return DefaultPriority
}

func stringList(obj gjson.Result, field string) ([]string, error) {
	v := obj.Get(field)
	switch {
	case v.Type == gjson.Null:
		return []string{}, nil
	case v.IsArray():
		out := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			if item.Type == gjson.JSON {
				return nil, errors.NewFieldError(field, "must contain only strings")
			}
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	case v.Type == gjson.String:
		if s := strings.TrimSpace(v.Str); s != "" {
			return []string{s}, nil
		}
		return []string{}, nil
	default:
		return nil, errors.NewFieldError(field, "must be an array of strings")
	}
}
