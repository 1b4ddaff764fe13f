package analyzer

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyaudit/policyaudit/pkg/catalog"
	"github.com/policyaudit/policyaudit/pkg/oracle"
	"github.com/policyaudit/policyaudit/pkg/report"
	"github.com/policyaudit/policyaudit/pkg/text"
)

// stubTransport returns a canned response or error for every scoring call.
type stubTransport struct {
	response string
	err      error
	calls    int
}

func (s *stubTransport) Complete(_ context.Context, _ oracle.ChatRequest) (responseText string, err error) {
	s.calls++
	if s.err != nil {
		err = s.err
		return responseText, err
	}
	responseText = s.response
	return responseText, err
}

func newTestAnalyzer(t *testing.T, transport oracle.Transport, requirements []catalog.Requirement, extracted string) (a *Analyzer) {
	t.Helper()

	counter, err := text.NewCounter("gpt-4")
	require.NoError(t, err)

	logger := charmlog.New(io.Discard)
	oracleClient := oracle.NewClient(transport, counter, "gpt-4", logger).
		WithRetryBase(time.Millisecond)
	renderer := report.NewRenderer(t.TempDir(), logger)

	a = New(oracleClient, counter, requirements, renderer, 0, logger)
	a.extractText = func(_ []byte) (string, error) {
		return extracted, nil
	}
	return a
}

func TestAnalyzePolicySingleRequirement(t *testing.T) {
	docText := "The organization maintains documented incident response procedures and reporting mechanisms."
	requirements := []catalog.Requirement{
		{Category: "Incident Response", Text: "Documented incident response procedures and reporting mechanisms"},
	}
	transport := &stubTransport{response: "Score: 75\nAnalysis: ok\nRecommendations: none"}

	a := newTestAnalyzer(t, transport, requirements, docText)

	rec, err := a.AnalyzePolicy(context.Background(), []byte("unused"), "policy.pdf")
	require.NoError(t, err)

	assert.Equal(t, "policy.pdf", rec.FileName)
	assert.InDelta(t, 75.0, rec.OverallScore, 0.001)
	assert.Equal(t, StatusPartiallyCompliant, rec.ComplianceStatus)
	assert.Contains(t, rec.MarkdownReport, "## Overall Score: 75.0%")
	assert.Contains(t, rec.MarkdownReport, "## Incident Response")
	assert.Contains(t, rec.MarkdownReport, "ok")
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt, time.Minute)

	// The PDF report was written.
	_, statErr := os.Stat(rec.PDFReport)
	assert.NoError(t, statErr)
}

func TestAnalyzePolicyAllAttemptsFail(t *testing.T) {
	docText := "Documented incident response procedures and reporting mechanisms."
	requirements := []catalog.Requirement{
		{Category: "Incident Response", Text: "Documented incident response procedures and reporting mechanisms"},
	}
	transport := &stubTransport{err: errors.New("connection refused")}

	a := newTestAnalyzer(t, transport, requirements, docText)

	rec, err := a.AnalyzePolicy(context.Background(), []byte("unused"), "policy.pdf")
	require.NoError(t, err)

	// A fully degraded document still yields a valid Non-Compliant record.
	assert.Equal(t, 3, transport.calls)
	assert.InDelta(t, 0.0, rec.OverallScore, 0.001)
	assert.Equal(t, StatusNonCompliant, rec.ComplianceStatus)
	assert.Contains(t, rec.MarkdownReport, "Error: ")
}

func TestAnalyzePolicyEmptyDocument(t *testing.T) {
	transport := &stubTransport{response: "Score: 90"}
	a := newTestAnalyzer(t, transport, catalog.Builtin(), "")

	rec, err := a.AnalyzePolicy(context.Background(), []byte("unused"), "empty.pdf")
	require.NoError(t, err)

	// No chunks means no oracle calls and an empty consolidated set.
	assert.Equal(t, 0, transport.calls)
	assert.InDelta(t, 0.0, rec.OverallScore, 0.001)
	assert.Equal(t, StatusNonCompliant, rec.ComplianceStatus)
	assert.Contains(t, rec.MarkdownReport, "## Overall Score: 0.0%")
}

func TestAnalyzePolicyUnmatchedRequirementsAbsent(t *testing.T) {
	docText := "The organization maintains documented incident response procedures and reporting mechanisms."
	requirements := []catalog.Requirement{
		{Category: "Incident Response", Text: "Documented incident response procedures and reporting mechanisms"},
		{Category: "Data Residency", Text: "zzz qqq xxx unrelated words entirely"},
	}
	transport := &stubTransport{response: "Score: 85\nAnalysis: ok\nRecommendations: none"}

	a := newTestAnalyzer(t, transport, requirements, docText)

	rec, err := a.AnalyzePolicy(context.Background(), []byte("unused"), "policy.pdf")
	require.NoError(t, err)

	// Only the matched category contributes; the other is absent, not zero.
	assert.Equal(t, 1, transport.calls)
	assert.InDelta(t, 85.0, rec.OverallScore, 0.001)
	assert.Equal(t, StatusCompliant, rec.ComplianceStatus)
	assert.NotContains(t, rec.MarkdownReport, "Data Residency")
}

func TestAnalyzePolicyScoresMatchAtExactThreshold(t *testing.T) {
	// "abcd" vs "abxy" scores exactly 50, the acceptance boundary.
	requirements := []catalog.Requirement{
		{Category: "Boundary", Text: "abcd"},
	}
	transport := &stubTransport{response: "Score: 60\nAnalysis: ok\nRecommendations: none"}

	a := newTestAnalyzer(t, transport, requirements, "abxy")

	rec, err := a.AnalyzePolicy(context.Background(), []byte("unused"), "policy.pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, transport.calls)
	assert.InDelta(t, 60.0, rec.OverallScore, 0.001)
}

func TestAnalyzePolicyExtractionFailure(t *testing.T) {
	transport := &stubTransport{response: "Score: 90"}
	a := newTestAnalyzer(t, transport, catalog.Builtin(), "")
	a.extractText = func(_ []byte) (string, error) {
		return "", errors.New("corrupt PDF")
	}

	_, err := a.AnalyzePolicy(context.Background(), []byte("unused"), "broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt PDF")
	assert.Equal(t, 0, transport.calls)
}

func TestComposeNotification(t *testing.T) {
	rec := Record{
		FileName:         "policy.pdf",
		OverallScore:     67.5,
		ComplianceStatus: StatusPartiallyCompliant,
		PDFReport:        "/reports/policy_20260101_000000.pdf",
	}

	n := ComposeNotification(rec)

	assert.InDelta(t, 67.5, n.Score, 0.001)
	assert.Equal(t, StatusPartiallyCompliant, n.Status)
	assert.Contains(t, n.Details, "policy.pdf")
	assert.Contains(t, n.Details, "67.5%")
	assert.Contains(t, n.Details, StatusPartiallyCompliant)
}
