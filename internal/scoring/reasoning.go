package scoring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reasoning explains a recommendation from its sub-scores. The skill and
// availability phrases are always present; track record and speed are only
// mentioned when they stand out.
func Reasoning(skillMatch, workloadAvailability int, completionRate, avgTaskDuration float64) string {
	reasons := make([]string, 0, 4)

	switch {
	case skillMatch > 80:
		reasons = append(reasons, fmt.Sprintf("excellent skill match (%d%%)", skillMatch))
	case skillMatch > 60:
		reasons = append(reasons, fmt.Sprintf("good skill match (%d%%)", skillMatch))
	default:
		reasons = append(reasons, fmt.Sprintf("moderate skill match (%d%%)", skillMatch))
	}

	switch {
	case workloadAvailability > 70:
		reasons = append(reasons, "high availability")
	case workloadAvailability > 40:
		reasons = append(reasons, "moderate availability")
	default:
		reasons = append(reasons, "limited availability")
	}

	switch {
	case completionRate > 0.9:
		reasons = append(reasons, "excellent track record")
	case completionRate > 0.75:
		reasons = append(reasons, "good track record")
	}

	if avgTaskDuration < 7 {
		reasons = append(reasons, "fast task completion")
	}

	return capitalize(strings.Join(reasons, ", "))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
