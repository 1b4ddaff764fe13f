package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScoreResponse(t *testing.T) {
	response := `Score: 85
Analysis: The section aligns well with the requirement.
Recommendations: Add an annual review cadence.`

	result := parseScoreResponse("Security Controls", response)

	assert.Equal(t, "Security Controls", result.Category)
	assert.InDelta(t, 85.0, result.Score, 0.001)
	assert.Equal(t, "The section aligns well with the requirement.", result.Analysis)
	assert.Equal(t, "Add an annual review cadence.", result.Recommendations)
}

func TestParseScoreResponseMultilineFields(t *testing.T) {
	response := `Score: 60
Analysis: Partial coverage.
Several gaps remain.
Recommendations: Document escalation paths.
Assign owners.`

	result := parseScoreResponse("Incident Response", response)

	assert.InDelta(t, 60.0, result.Score, 0.001)
	assert.Contains(t, result.Analysis, "Several gaps remain.")
	assert.NotContains(t, result.Analysis, "Recommendations:")
	assert.Contains(t, result.Recommendations, "Assign owners.")
}

func TestParseScoreResponseMissingFields(t *testing.T) {
	result := parseScoreResponse("Risk Assessment", "The model rambled without any labels.")

	assert.InDelta(t, 0.0, result.Score, 0.001)
	assert.Equal(t, "No analysis provided", result.Analysis)
	assert.Equal(t, "No recommendations provided", result.Recommendations)
}

func TestParseScoreResponseMissingScoreOnly(t *testing.T) {
	response := `Analysis: Reasonable alignment overall.
Recommendations: None.`

	result := parseScoreResponse("Compliance Monitoring", response)

	assert.InDelta(t, 0.0, result.Score, 0.001)
	assert.Equal(t, "Reasonable alignment overall.", result.Analysis)
	assert.Equal(t, "None.", result.Recommendations)
}

func TestParseScoreResponseClampsScore(t *testing.T) {
	result := parseScoreResponse("Security Controls", "Score: 250")
	assert.InDelta(t, 100.0, result.Score, 0.001)
}

func TestClampScore(t *testing.T) {
	assert.InDelta(t, 0.0, clampScore(-5), 0.001)
	assert.InDelta(t, 50.0, clampScore(50), 0.001)
	assert.InDelta(t, 100.0, clampScore(120), 0.001)
}
