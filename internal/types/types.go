package types

import "github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"

// RiskRequest documents the body of POST /api/ml/predict-risk. Handlers
// parse the raw body so numeric strings and missing fields coerce the same
// way in every entry point; this type exists for the API docs.
type RiskRequest struct {
	EstimatedHours     float64 `json:"estimatedHours" example:"16"`
	StoryPoints        int     `json:"storyPoints" example:"5"`
	AssignedToWorkload float64 `json:"assignedToWorkload" example:"32"`
	Priority           string  `json:"priority" example:"HIGH" enums:"CRITICAL,HIGH,MEDIUM,LOW"`
	SubtaskCount       int     `json:"subtaskCount" example:"3"`
	TaskAgeDays        int     `json:"taskAgeDays" example:"4"`
}

// RiskResponse is the external risk prediction shape.
type RiskResponse struct {
	RiskLevel        string             `json:"riskLevel" example:"MEDIUM"`
	RiskScore        float64            `json:"riskScore" example:"0.62"`
	WillMissDeadline bool               `json:"willMissDeadline"`
	Confidence       scoring.Confidence `json:"confidence" example:"MEDIUM"`
	Probabilities    map[string]float64 `json:"probabilities"`
	LastUpdated      *string            `json:"lastUpdated"`
}

// DeveloperRequest is one roster entry of an assignee request.
type DeveloperRequest struct {
	UserID          string   `json:"userId" example:"u-42"`
	Name            string   `json:"name,omitempty" example:"Ada"`
	Skills          []string `json:"skills"`
	CurrentWorkload float64  `json:"currentWorkload" example:"12"`
	MaxCapacity     float64  `json:"maxCapacity" example:"40"`
	CompletionRate  float64  `json:"completionRate" example:"0.9"`
	AvgTaskDuration float64  `json:"avgTaskDuration" example:"6"`
}

// AssigneeRequest documents the body of both assignee endpoints.
type AssigneeRequest struct {
	TaskDescription string             `json:"taskDescription" example:"Build a REST API in Go"`
	TaskSkills      []string           `json:"taskSkills"`
	Developers      []DeveloperRequest `json:"developers"`
}

// AssigneeScore is the external, 0-1 normalized recommendation.
type AssigneeScore struct {
	UserID          string  `json:"userId"`
	SkillMatchScore float64 `json:"skillMatchScore" example:"0.87"`
	WorkloadScore   float64 `json:"workloadScore" example:"0.7"`
	OverallScore    float64 `json:"overallScore" example:"0.81"`
	MatchPercentage int     `json:"matchPercentage" example:"81"`
}

// SummaryRequest documents the body of POST /api/ml/generate-summary.
type SummaryRequest struct {
	TaskTitle       string   `json:"taskTitle" example:"Login page"`
	TaskDescription string   `json:"taskDescription"`
	Subtasks        []string `json:"subtasks"`
	Comments        []string `json:"comments"`
	ActualHours     float64  `json:"actualHours" example:"8"`
	EstimatedHours  float64  `json:"estimatedHours" example:"10"`
}

// SuggestionRequest documents the body of POST /api/ml/suggest-task.
type SuggestionRequest struct {
	Title       string `json:"title" example:"Payment API integration"`
	Description string `json:"description"`
	TaskType    string `json:"taskType" example:"FEATURE" enums:"FEATURE,BUG"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status" example:"healthy"`
	Service      string            `json:"service" example:"FlowDesk ML Service"`
	ModelsLoaded bool              `json:"models_loaded"`
	Predictors   map[string]bool   `json:"predictors"`
	Sources      map[string]string `json:"sources,omitempty"`
	Uptime       string            `json:"uptime"`
	Error        string            `json:"error,omitempty"`
}

// BreakerStatus is one circuit breaker in the services health response.
type BreakerStatus struct {
	State       string `json:"state"`
	Failures    int    `json:"failures"`
	LastFailure string `json:"last_failure,omitempty"`
}

// ServicesHealthResponse reports the state of remote dependencies.
type ServicesHealthResponse struct {
	Status    string                   `json:"status"`
	Embedding string                   `json:"embedding_provider"`
	Breakers  map[string]BreakerStatus `json:"circuit_breakers"`
	RateLimit map[string]interface{}   `json:"rate_limit"`
	Cache     map[string]interface{}   `json:"cache,omitempty"`
}
