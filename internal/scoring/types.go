package scoring

// Confidence is a qualitative band derived from a numeric score.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// TaskFeatures are the per-request inputs of the risk classifier.
type TaskFeatures struct {
	EstimatedHours float64 `json:"estimatedHours"`
	StoryPoints    int     `json:"storyPoints"`
	Workload       float64 `json:"workload"`
	Priority       int     `json:"priority"` // 1 = most urgent, 4 = least urgent
	SubtaskCount   int     `json:"subtaskCount"`
	AgeDays        int     `json:"ageDays"`
}

type RiskAssessment struct {
	RiskLevel        string             `json:"riskLevel"`
	RiskScore        float64            `json:"riskScore"`
	Confidence       Confidence         `json:"confidence"`
	Probabilities    map[string]float64 `json:"probabilities"`
	WillMissDeadline bool               `json:"willMissDeadline"`
	Factors          TaskFeatures       `json:"factors"`
}

// DeveloperProfile is a roster entry supplied with an assignee request.
type DeveloperProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Skills          []string `json:"skills"`
	CurrentWorkload float64  `json:"currentWorkload"`
	MaxCapacity     float64  `json:"maxCapacity"`
	CompletionRate  float64  `json:"completionRate"`
	AvgTaskDuration float64  `json:"avgTaskDuration"`
}

// AssigneeTask is the task side of an assignee request.
type AssigneeTask struct {
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type AssigneeRecommendation struct {
	DeveloperID          string     `json:"developerId"`
	Name                 string     `json:"name"`
	SkillMatchScore      int        `json:"skillMatchScore"`
	WorkloadAvailability int        `json:"workloadAvailability"`
	RecommendationScore  int        `json:"recommendationScore"`
	Confidence           Confidence `json:"confidence"`
	Reasoning            string     `json:"reasoning"`
	CompletionRate       float64    `json:"completionRate"`
	AvgTaskDuration      float64    `json:"avgTaskDuration"`
}
