package oracle

import "fmt"

// buildScoringPrompt creates the compliance-auditor prompt for one
// (section, requirement) pair.
func buildScoringPrompt(section, category, requirementText string) (prompt string) {
	prompt = fmt.Sprintf(`As a compliance auditor, analyze this policy section against the requirement and provide your analysis in the following format:
- Score: A number between 0-100
- Analysis: A brief analysis of alignment
- Recommendations: Specific recommendations for improvement

Section: %s
Requirement Category: %s
Specific Requirement: %s`, section, category, requirementText)

	return prompt
}
