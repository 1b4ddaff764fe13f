package match

import (
	"math"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/policyaudit/policyaudit/pkg/text"
)

// AcceptThreshold is the minimum similarity (0-100) for a candidate section to
// be considered a match for a requirement.
const AcceptThreshold = 50

// SplitParagraphs splits a chunk into paragraph-level candidate sections on
// blank-line boundaries.
func SplitParagraphs(chunk string) (sections []string) {
	for _, section := range strings.Split(chunk, "\n\n") {
		if strings.TrimSpace(section) != "" {
			sections = append(sections, section)
		}
	}
	return sections
}

// BestMatch finds the candidate section most similar to the requirement text.
// Both sides are normalized before comparison. Returns the winning normalized
// section and its similarity, or ("", 0) when there are no candidates or the
// best score is under AcceptThreshold. Ties go to the first occurrence.
func BestMatch(requirementText string, candidates []string) (best string, similarity int) {
	if len(candidates) == 0 {
		return best, similarity
	}

	target := text.Normalize(requirementText)
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false

	for _, candidate := range candidates {
		normalized := text.Normalize(candidate)
		score := int(math.Round(strutil.Similarity(target, normalized, lev) * 100))
		if score > similarity {
			best = normalized
			similarity = score
		}
	}

	if similarity < AcceptThreshold {
		return "", 0
	}

	return best, similarity
}
