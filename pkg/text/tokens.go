package text

import (
	"github.com/pkg/errors"
	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the fallback tokenizer encoding when a model has no
// registered mapping. It matches the scoring model's tokenizer.
const DefaultEncoding = "cl100k_base"

// Counter counts and truncates text against a model's token budget.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// NewCounter creates a token counter for the given model, falling back to the
// default encoding when the model is unknown to the tokenizer.
func NewCounter(model string) (counter *Counter, err error) {
	enc, encErr := tiktoken.EncodingForModel(model)
	if encErr != nil {
		enc, encErr = tiktoken.GetEncoding(DefaultEncoding)
		if encErr != nil {
			err = errors.Wrapf(encErr, "failed to load encoding %s", DefaultEncoding)
			return counter, err
		}
	}

	counter = &Counter{enc: enc}
	return counter, err
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) (count int) {
	count = len(c.enc.Encode(text, nil, nil))
	return count
}

// Truncate returns text cut to at most maxTokens tokens. Truncation happens at
// token boundaries, never mid-token. Text already within budget is returned
// unchanged.
func (c *Counter) Truncate(text string, maxTokens int) (truncated string) {
	if maxTokens <= 0 {
		return truncated
	}

	tokens := c.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		truncated = text
		return truncated
	}

	truncated = c.enc.Decode(tokens[:maxTokens])
	return truncated
}
