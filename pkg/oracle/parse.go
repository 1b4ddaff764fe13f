package oracle

import (
	"regexp"
	"strconv"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	scoreRe           = regexp.MustCompile(`Score:\s*(\d+)`)
	analysisRe        = regexp.MustCompile(`(?s)Analysis:\s*(.+?)(?:Recommendations:|$)`)
	recommendationsRe = regexp.MustCompile(`(?s)Recommendations:\s*(.+)$`)
)

// parseScoreResponse extracts the labeled fields from the oracle's free-form
// response. Missing fields degrade to safe defaults; this never fails.
func parseScoreResponse(category, response string) (result ScoreResult) {
	result = ScoreResult{
		Category:        category,
		Score:           0,
		Analysis:        "No analysis provided",
		Recommendations: "No recommendations provided",
	}

	if m := scoreRe.FindStringSubmatch(response); m != nil {
		score, convErr := strconv.ParseFloat(m[1], 64)
		if convErr == nil {
			result.Score = clampScore(score)
		}
	}

	if m := analysisRe.FindStringSubmatch(response); m != nil {
		if analysis := strings.TrimSpace(m[1]); analysis != "" {
			result.Analysis = analysis
		}
	}

	if m := recommendationsRe.FindStringSubmatch(response); m != nil {
		if recommendations := strings.TrimSpace(m[1]); recommendations != "" {
			result.Recommendations = recommendations
		}
	}

	return result
}

// clampScore bounds a score to the 0-100 scale.
func clampScore(score float64) (clamped float64) {
	clamped = score
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}
	return clamped
}
