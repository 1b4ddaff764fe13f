package text

import (
	"regexp"
	"strings"
)

// Chunk is a bounded-size contiguous slice of a normalized document, sized to
// fit a scoring request's token budget. Tokens is the estimated token count.
type Chunk struct {
	Text   string
	Tokens int
}

//nolint:gochecknoglobals // Compiled once, read-only
var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// SplitChunks splits text into chunks of at most maxTokens tokens. Sentences
// are packed greedily; a single sentence exceeding the budget falls back to
// greedy word-level packing. Each sentence keeps its trailing whitespace so
// paragraph boundaries survive into chunks. Empty input yields no chunks.
func (c *Counter) SplitChunks(text string, maxTokens int) (chunks []Chunk) {
	if strings.TrimSpace(text) == "" {
		return chunks
	}

	current := ""
	currentTokens := 0

	flush := func() {
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, Chunk{Text: trimmed, Tokens: currentTokens})
		}
		current = ""
		currentTokens = 0
	}

	for _, sentence := range splitSentences(text) {
		sentenceTokens := c.Count(sentence)

		switch {
		case sentenceTokens > maxTokens:
			// Flush the running chunk first so output stays in document order.
			flush()
			chunks = append(chunks, c.splitWords(sentence, maxTokens)...)

		case currentTokens+sentenceTokens > maxTokens:
			flush()
			current = sentence
			currentTokens = sentenceTokens

		default:
			current += sentence
			currentTokens += sentenceTokens
		}
	}

	flush()
	return chunks
}

// splitWords packs the words of an oversized sentence into sub-chunks, flushing
// each time the running token count would exceed maxTokens.
func (c *Counter) splitWords(sentence string, maxTokens int) (chunks []Chunk) {
	current := ""
	currentTokens := 0

	for _, word := range strings.Fields(sentence) {
		wordTokens := c.Count(word)

		if currentTokens+wordTokens > maxTokens && current != "" {
			chunks = append(chunks, Chunk{Text: current, Tokens: currentTokens})
			current = word
			currentTokens = wordTokens
			continue
		}

		if current == "" {
			current = word
		} else {
			current += " " + word
		}
		currentTokens += wordTokens
	}

	if current != "" {
		chunks = append(chunks, Chunk{Text: current, Tokens: currentTokens})
	}

	return chunks
}

// splitSentences splits after sentence-ending punctuation followed by
// whitespace. Each sentence keeps its trailing whitespace, so concatenating
// the sentences reproduces the input exactly.
func splitSentences(text string) (sentences []string) {
	boundaries := sentenceEndRe.FindAllStringIndex(text, -1)

	start := 0
	for _, boundary := range boundaries {
		sentences = append(sentences, text[start:boundary[1]])
		start = boundary[1]
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}
