// Package openrouter implements the skill-extraction and suggestion-rewrite
// collaborators on the OpenRouter chat-completions API.
package openrouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/ai"
	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/skills"
)

// Per-document token budgets before prompts are assembled.
const (
	extractDocBudget    = 1000
	rewriteResumeBudget = 750
	rewriteJDBudget     = 500
)

// Client implements domain.SkillExtractor and domain.SuggestionWriter. Both
// methods honor the port contract: they never propagate upstream failure, the
// extractor degrades to the deterministic synonym matcher and the writer to an
// empty list.
type Client struct {
	cfg     config.Config
	hc      *http.Client
	cleaner *ai.ResponseCleaner
}

// New constructs a Client with a timeout suited to free-tier models.
func New(cfg config.Config) *Client {
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 60 * time.Second},
		cleaner: ai.NewResponseCleaner(),
	}
}

func (c *Client) backoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	return expo
}

// chatJSON calls the OpenRouter chat-completions endpoint and returns the
// first choice's content. 429 and 5xx responses are retried with exponential
// backoff; other 4xx responses abort immediately.
func (c *Client) chatJSON(ctx domain.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if c.cfg.OpenRouterAPIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY missing", domain.ErrInvalidArgument)
	}

	body := map[string]any{
		"model":       c.cfg.OpenRouterModel,
		"temperature": 0.2,
		"max_tokens":  maxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
	}
	b, _ := json.Marshal(body)

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	op := func() error {
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenRouterBaseURL+"/chat/completions", bytes.NewReader(b))
		r.Header.Set("Authorization", "Bearer "+c.cfg.OpenRouterAPIKey)
		r.Header.Set("Content-Type", "application/json")
		if c.cfg.OpenRouterReferer != "" {
			r.Header.Set("HTTP-Referer", c.cfg.OpenRouterReferer)
		}
		if c.cfg.OpenRouterTitle != "" {
			r.Header.Set("X-Title", c.cfg.OpenRouterTitle)
		}
		resp, err := c.hc.Do(r)
		observability.AIRequestsTotal.WithLabelValues("openrouter", "chat").Inc()
		observability.AIRequestDuration.WithLabelValues("openrouter", "chat").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("ai provider rate limited", slog.String("provider", "openrouter"), slog.Int("status", resp.StatusCode))
			return fmt.Errorf("%w: status 429", domain.ErrRateLimited)
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			slog.Warn("ai provider 4xx", slog.String("provider", "openrouter"),
				slog.Int("status", resp.StatusCode), slog.String("body", snippet(bodyBytes)))
			return backoff.Permanent(fmt.Errorf("chat status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("ai provider non-2xx", slog.String("provider", "openrouter"),
				slog.Int("status", resp.StatusCode), slog.String("body", snippet(bodyBytes)))
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}
		return json.Unmarshal(bodyBytes, &out)
	}

	if err := backoff.Retry(op, backoff.WithContext(c.backoffConfig(), ctx)); err != nil {
		return "", fmt.Errorf("openrouter chat failed: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty choices from openrouter")
	}
	return out.Choices[0].Message.Content, nil
}

func snippet(b []byte) string {
	if len(b) > 512 {
		b = b[:512]
	}
	return string(b)
}

// Extract runs the unified extraction prompt over both documents. One call
// lets the model compare them in context and reason about semantic
// equivalence, which two separate calls cannot do. Any failure degrades to
// the deterministic synonym matcher.
func (c *Client) Extract(ctx domain.Context, jdText, resumeText string) domain.Extraction {
	user := extractUserPrompt(
		ai.SmartTruncate(jdText, extractDocBudget),
		ai.SmartTruncate(resumeText, extractDocBudget),
	)
	raw, err := c.chatJSON(ctx, extractSystemPrompt, user, 2048)
	if err != nil {
		return c.extractionFallback(jdText, resumeText, err)
	}
	clean, err := c.cleaner.CleanJSONResponse(raw)
	if err != nil {
		return c.extractionFallback(jdText, resumeText, err)
	}

	var ex domain.Extraction
	if err := json.Unmarshal([]byte(clean), &ex); err != nil {
		return c.extractionFallback(jdText, resumeText, fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err))
	}
	if err := validateExtraction(ex); err != nil {
		return c.extractionFallback(jdText, resumeText, err)
	}

	ex.Source = domain.SourceExtracted
	canonicalizeSkills(&ex)
	slog.Info("ai extraction complete",
		slog.String("model", c.cfg.OpenRouterModel),
		slog.Int("matched", len(ex.MatchedSkills)),
		slog.Int("missing", len(ex.MissingSkills)))
	return domain.NormalizeExtraction(ex)
}

func (c *Client) extractionFallback(jdText, resumeText string, cause error) domain.Extraction {
	observability.ExtractionFallbacksTotal.Inc()
	slog.Warn("ai extraction failed, using deterministic fallback",
		slog.String("model", c.cfg.OpenRouterModel), slog.Any("error", cause))
	return skills.FallbackExtraction(jdText, resumeText)
}

// validateExtraction rejects responses whose enum fields fall outside the
// closed sets the prompt mandates.
func validateExtraction(ex domain.Extraction) error {
	switch ex.SeniorityLevel {
	case "", domain.LevelEntry, domain.LevelMid, domain.LevelSenior, domain.LevelManagement:
	default:
		return fmt.Errorf("%w: unknown seniority_level %q", domain.ErrSchemaInvalid, ex.SeniorityLevel)
	}
	for _, d := range []domain.Degree{ex.EducationRequired, ex.EducationPreferred} {
		switch d {
		case "", domain.DegreeNone, domain.DegreeAssociate, domain.DegreeBachelor, domain.DegreeMaster, domain.DegreePhD:
		default:
			return fmt.Errorf("%w: unknown degree %q", domain.ErrSchemaInvalid, d)
		}
	}
	if ex.RequiredYears < 0 || ex.RequiredYears > 60 {
		return fmt.Errorf("%w: required_years %d out of range", domain.ErrSchemaInvalid, ex.RequiredYears)
	}
	return nil
}

// canonicalizeSkills lowercases and alias-normalizes every skill list so the
// engine's tables apply regardless of how the model spelled things.
func canonicalizeSkills(ex *domain.Extraction) {
	for _, list := range []*[]string{
		&ex.JDRequiredSkills, &ex.JDPreferredSkills, &ex.ResumeSkills,
		&ex.MatchedSkills, &ex.MissingSkills, &ex.BonusSkills, &ex.ExtraSkills,
	} {
		*list = normalizeList(*list)
	}
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, s := range items {
		n := skills.Normalize(strings.ToLower(strings.TrimSpace(s)))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

type suggestionDTO struct {
	Area        string `json:"area"`
	Priority    string `json:"priority"`
	Issue       string `json:"issue"`
	Original    string `json:"original"`
	Fix         string `json:"fix"`
	ScoreImpact string `json:"score_impact"`
}

// Rewrite asks the model for copy-paste resume fixes. An empty return tells
// the caller to use the rule-based cascade instead.
func (c *Client) Rewrite(ctx domain.Context, resumeText, jdText string, ex domain.Extraction, score float64, weakAreas []string) []domain.Suggestion {
	user := suggestUserPrompt(
		ai.SmartTruncate(resumeText, rewriteResumeBudget),
		ai.SmartTruncate(jdText, rewriteJDBudget),
		ex, score, weakAreas,
	)
	raw, err := c.chatJSON(ctx, suggestSystemPrompt, user, 3000)
	if err != nil {
		slog.Warn("ai suggestions failed", slog.String("model", c.cfg.OpenRouterModel), slog.Any("error", err))
		return nil
	}
	clean, err := c.cleaner.CleanJSONResponse(raw)
	if err != nil {
		slog.Warn("ai suggestions unparseable", slog.Any("error", err))
		return nil
	}

	var parsed struct {
		Suggestions []suggestionDTO `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		slog.Warn("ai suggestions schema mismatch", slog.Any("error", err))
		return nil
	}

	out := make([]domain.Suggestion, 0, len(parsed.Suggestions))
	for _, dto := range parsed.Suggestions {
		if strings.TrimSpace(dto.Fix) == "" {
			continue
		}
		out = append(out, domain.Suggestion{
			Priority:    parsePriority(dto.Priority),
			Category:    "rewrite",
			Area:        dto.Area,
			Issue:       dto.Issue,
			Fix:         dto.Fix,
			Rationale:   rationaleFrom(dto.Original),
			ScoreImpact: dto.ScoreImpact,
		})
		if len(out) == 5 {
			break
		}
	}
	slog.Info("ai suggestions generated", slog.Int("count", len(out)))
	return out
}

func parsePriority(s string) domain.Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return domain.PriorityCritical
	case "high":
		return domain.PriorityHigh
	case "low":
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

// rationaleFrom carries the replaced text so the client can show a diff.
func rationaleFrom(original string) string {
	original = strings.TrimSpace(original)
	if original == "" || strings.EqualFold(original, "N/A - new addition") {
		return ""
	}
	return "Replaces: " + original
}
