// Package stub provides deterministic AI collaborators for local development
// and tests. Extraction runs the same synonym matcher the real client falls
// back to, so results are stable across runs.
package stub

import (
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/skills"
)

// Client implements domain.SkillExtractor and domain.SuggestionWriter without
// network access.
type Client struct{}

// New constructs a stub client.
func New() *Client { return &Client{} }

// Extract runs the deterministic synonym matcher over both documents.
func (c *Client) Extract(_ domain.Context, jdText, resumeText string) domain.Extraction {
	return skills.FallbackExtraction(jdText, resumeText)
}

// Rewrite returns nothing, which routes callers to the rule-based cascade.
func (c *Client) Rewrite(_ domain.Context, _, _ string, _ domain.Extraction, _ float64, _ []string) []domain.Suggestion {
	return nil
}
