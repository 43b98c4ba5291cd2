package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// ResponseCleaner normalizes raw LLM output into parseable JSON. Free models
// routinely wrap JSON in markdown fences or prepend prose despite the prompt
// forbidding it.
type ResponseCleaner struct{}

// NewResponseCleaner creates a new response cleaner.
func NewResponseCleaner() *ResponseCleaner { return &ResponseCleaner{} }

var fenceRE = regexp.MustCompile("(?m)^```(?:json)?\\s*$")

// CleanJSONResponse strips markdown fences, extracts the outermost JSON
// object, and verifies the result parses.
func (rc *ResponseCleaner) CleanJSONResponse(response string) (string, error) {
	response = rc.stripMarkdown(response)
	response = rc.extractObject(response)
	if !json.Valid([]byte(response)) {
		return "", fmt.Errorf("%w: response is not valid JSON", domain.ErrSchemaInvalid)
	}
	return response, nil
}

func (rc *ResponseCleaner) stripMarkdown(response string) string {
	response = fenceRE.ReplaceAllString(response, "")
	response = strings.TrimPrefix(strings.TrimSpace(response), "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// extractObject returns the first balanced {...} block, tolerating prose
// before or after it. Braces inside JSON strings are skipped.
func (rc *ResponseCleaner) extractObject(response string) string {
	start := strings.Index(response, "{")
	if start == -1 {
		return response
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}
	return response[start:]
}
