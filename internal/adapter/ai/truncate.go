// Package ai holds shared helpers for the LLM adapters: prompt-size
// truncation and response cleaning.
package ai

import (
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

const truncationMarker = "\n\n...[middle section truncated for length]...\n\n"

// charsPerToken is the rough estimate used when no encoding is available.
const charsPerToken = 4

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
)

func encoding() *tiktoken.Tiktoken {
	encOnce.Do(func() {
		// cl100k_base covers GPT-4-family tokenization, a close enough
		// approximation for every model OpenRouter serves.
		enc, _ = tiktoken.GetEncoding("cl100k_base")
	})
	return enc
}

// CountTokens measures text in model tokens, estimating by character count
// when the encoding cannot be loaded.
func CountTokens(text string) int {
	if e := encoding(); e != nil {
		return len(e.Encode(text, nil, nil))
	}
	return len(text) / charsPerToken
}

// SmartTruncate caps text at roughly maxTokens. Instead of a hard cutoff it
// keeps the head (summary and early experience) and the tail (most recent
// experience) with a visible marker in between: 60% of the budget from the
// front, 20% from the back.
func SmartTruncate(text string, maxTokens int) string {
	if maxTokens <= 0 || CountTokens(text) <= maxTokens {
		return text
	}

	runes := []rune(text)
	maxChars := maxTokens * charsPerToken
	head := maxChars * 60 / 100
	tail := maxChars * 20 / 100
	if head+tail >= len(runes) {
		return text
	}
	return string(runes[:head]) + truncationMarker + string(runes[len(runes)-tail:])
}
