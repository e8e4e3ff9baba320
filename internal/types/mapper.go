package types

import "github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"

// ToRiskResponse copies an assessment into the external risk shape.
func ToRiskResponse(a *scoring.RiskAssessment) RiskResponse {
	probs := make(map[string]float64, len(a.Probabilities))
	for label, p := range a.Probabilities {
		probs[label] = p
	}
	return RiskResponse{
		RiskLevel:        a.RiskLevel,
		RiskScore:        a.RiskScore,
		WillMissDeadline: a.WillMissDeadline,
		Confidence:       a.Confidence,
		Probabilities:    probs,
	}
}

// ToAssigneeScores normalizes ranked recommendations to 0-1. The integer
// percentages are divided, never recomputed, so both shapes agree.
func ToAssigneeScores(recs []scoring.AssigneeRecommendation) []AssigneeScore {
	out := make([]AssigneeScore, 0, len(recs))
	for _, r := range recs {
		out = append(out, AssigneeScore{
			UserID:          r.DeveloperID,
			SkillMatchScore: float64(r.SkillMatchScore) / 100,
			WorkloadScore:   float64(r.WorkloadAvailability) / 100,
			OverallScore:    float64(r.RecommendationScore) / 100,
			MatchPercentage: r.RecommendationScore,
		})
	}
	return out
}
