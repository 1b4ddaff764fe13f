package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	charmlog "github.com/charmbracelet/log"

	"github.com/policyaudit/policyaudit/pkg/oracle"
)

const (
	// MaxMarkdownLength caps the rendered markdown report.
	MaxMarkdownLength = 5000
	// maxFieldLength caps each analysis and recommendations field.
	maxFieldLength = 1000
)

// Renderer turns consolidated results into report artifacts.
type Renderer struct {
	reportsDir string
	logger     *charmlog.Logger
}

// NewRenderer creates a renderer that writes PDF reports under reportsDir.
func NewRenderer(reportsDir string, logger *charmlog.Logger) (renderer *Renderer) {
	renderer = &Renderer{
		reportsDir: reportsDir,
		logger:     logger,
	}
	return renderer
}

// Markdown renders the consolidated results as a markdown report capped at
// MaxMarkdownLength characters. Truncation is logged, never an error.
func (r *Renderer) Markdown(results []oracle.ScoreResult, overallScore float64) (markdown string) {
	var b strings.Builder

	b.WriteString("# Policy Compliance Analysis Report\n\n")
	fmt.Fprintf(&b, "## Overall Score: %.1f%%\n\n", overallScore)

	for _, result := range results {
		fmt.Fprintf(&b, "## %s\n\n", result.Category)
		fmt.Fprintf(&b, "**Score:** %.0f%%\n\n", result.Score)
		fmt.Fprintf(&b, "**Analysis:**\n%s\n\n", truncateField(result.Analysis))
		fmt.Fprintf(&b, "**Recommendations:**\n%s\n\n", truncateField(result.Recommendations))
		b.WriteString("---\n\n")
	}

	markdown = b.String()
	if len(markdown) > MaxMarkdownLength {
		r.logger.Warn("markdown report truncated",
			"length", len(markdown), "max", MaxMarkdownLength)
		markdown = truncateAtRuneBoundary(markdown, MaxMarkdownLength)
	}

	return markdown
}

// truncateField caps one report field at maxFieldLength bytes.
func truncateField(field string) (truncated string) {
	truncated = truncateAtRuneBoundary(field, maxFieldLength)
	return truncated
}

// truncateAtRuneBoundary cuts s to at most max bytes, backing off to the
// previous rune boundary so a multi-byte rune is never split.
func truncateAtRuneBoundary(s string, max int) (truncated string) {
	truncated = s
	if len(truncated) <= max {
		return truncated
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(truncated[cut]) {
		cut--
	}
	truncated = truncated[:cut]
	return truncated
}
