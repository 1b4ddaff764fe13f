package analyzer

import "github.com/policyaudit/policyaudit/pkg/oracle"

// Compliance status bands.
const (
	StatusCompliant          = "Compliant"
	StatusPartiallyCompliant = "Partially Compliant"
	StatusNonCompliant       = "Non-Compliant"
)

// Consolidate reduces per-chunk results down to the best result per category
// and the overall mean score. A strictly higher score replaces the kept result;
// on ties the first-seen result wins. Categories with no results are absent.
// An empty input yields an empty map and overall score 0.
func Consolidate(results []oracle.ScoreResult) (consolidated map[string]oracle.ScoreResult, overallScore float64) {
	consolidated = make(map[string]oracle.ScoreResult)

	for _, result := range results {
		kept, exists := consolidated[result.Category]
		if !exists || result.Score > kept.Score {
			consolidated[result.Category] = result
		}
	}

	if len(consolidated) == 0 {
		return consolidated, overallScore
	}

	total := 0.0
	for _, result := range consolidated {
		total += result.Score
	}
	overallScore = total / float64(len(consolidated))

	return consolidated, overallScore
}

// StatusForScore maps an overall score to its compliance status band:
// Compliant at 80 and above, Partially Compliant at 60 and above, otherwise
// Non-Compliant.
func StatusForScore(score float64) (status string) {
	switch {
	case score >= 80:
		status = StatusCompliant
	case score >= 60:
		status = StatusPartiallyCompliant
	default:
		status = StatusNonCompliant
	}
	return status
}
