package oracle

import (
	"context"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"

	"github.com/policyaudit/policyaudit/pkg/catalog"
	"github.com/policyaudit/policyaudit/pkg/text"
)

const (
	// DefaultModel is the scoring model to use when none is configured.
	DefaultModel = "gpt-4"

	// maxTotalTokens is the request-wide token budget for one scoring call.
	maxTotalTokens = 8000
	// responseTokens is reserved for the oracle's response.
	responseTokens = 500
	// promptTemplateTokens is reserved for the fixed prompt scaffolding.
	promptTemplateTokens = 150

	// sectionShare and requirementShare split the remaining content budget.
	sectionShare     = 0.7
	requirementShare = 0.3

	// maxAttempts is the total number of tries per scoring call.
	maxAttempts = 3

	temperature = 0.3
)

// ScoreResult is the structured outcome of scoring one policy section against
// one requirement. Score is always within [0, 100].
type ScoreResult struct {
	Category        string  `json:"category"`
	Score           float64 `json:"score"`
	Analysis        string  `json:"analysis"`
	Recommendations string  `json:"recommendations"`
}

// Client scores matched policy sections via the external analysis API,
// retrying transient failures and degrading to a zero-score result when all
// attempts fail.
type Client struct {
	transport Transport
	counter   *text.Counter
	model     string
	logger    *charmlog.Logger
	retryBase time.Duration
}

// NewClient creates a scoring client. The transport is injected so tests can
// substitute a deterministic one.
func NewClient(transport Transport, counter *text.Counter, model string, logger *charmlog.Logger) (client *Client) {
	if model == "" {
		model = DefaultModel
	}
	client = &Client{
		transport: transport,
		counter:   counter,
		model:     model,
		logger:    logger,
		retryBase: 500 * time.Millisecond,
	}
	return client
}

// WithRetryBase overrides the base backoff delay between attempts.
func (c *Client) WithRetryBase(base time.Duration) (client *Client) {
	c.retryBase = base
	client = c
	return client
}

// Score analyzes one policy section against one requirement. Failures are
// contained: after maxAttempts failed calls the result carries score 0 and the
// error message instead of propagating an error.
func (c *Client) Score(ctx context.Context, section string, req catalog.Requirement) (result ScoreResult) {
	contentBudget := maxTotalTokens - responseTokens - promptTemplateTokens
	section = c.counter.Truncate(section, int(float64(contentBudget)*sectionShare))
	requirementText := c.counter.Truncate(req.Text, int(float64(contentBudget)*requirementShare))

	prompt := buildScoringPrompt(section, req.Category, requirementText)

	chatReq := ChatRequest{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   responseTokens,
	}

	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(c.retryBase))

	attempt := 0
	var responseText string
	err := retry.Do(ctx, backoff, func(ctx context.Context) (callErr error) {
		attempt++
		responseText, callErr = c.transport.Complete(ctx, chatReq)
		if callErr != nil {
			c.logger.Warn("scoring attempt failed",
				"category", req.Category, "attempt", attempt, "error", callErr)
			callErr = retry.RetryableError(callErr)
			return callErr
		}
		return callErr
	})
	if err != nil {
		c.logger.Error("scoring failed after all attempts",
			"category", req.Category, "attempts", attempt, "error", err)
		result = ScoreResult{
			Category:        req.Category,
			Score:           0,
			Analysis:        "Error: " + err.Error(),
			Recommendations: "Unable to process",
		}
		return result
	}

	result = parseScoreResponse(req.Category, responseText)
	return result
}
