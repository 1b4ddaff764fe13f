package text

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	disallowedRe = regexp.MustCompile(`[^\w\s.,;:?!()\-'"]+`)
	spaceRunRe   = regexp.MustCompile(`[^\S\n]+`)
	lineEdgeRe   = regexp.MustCompile(` *\n *`)
	blankRunRe   = regexp.MustCompile(`\n{2,}`)
)

// Normalize cleans extracted policy text before chunking and matching.
// Characters outside the allow-list become spaces, runs of whitespace collapse
// to a single space, and runs of blank lines collapse to exactly one blank line.
func Normalize(raw string) (cleaned string) {
	cleaned = disallowedRe.ReplaceAllString(raw, " ")
	cleaned = spaceRunRe.ReplaceAllString(cleaned, " ")
	cleaned = lineEdgeRe.ReplaceAllString(cleaned, "\n")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)
	return cleaned
}
