// Package nlp implements domain.NLPService against the spaCy sidecar's small
// HTTP API. The engine treats the sidecar as optional: callers fall back to
// lexical analysis whenever a call errors.
package nlp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// Client talks to the NLP sidecar.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New constructs a Client from config. Returns nil when no sidecar is
// configured, which every consumer treats as "use the lexical fallback".
func New(cfg config.Config) *Client {
	if cfg.NLPBaseURL == "" {
		return nil
	}
	timeout := cfg.NLPTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{baseURL: cfg.NLPBaseURL, hc: &http.Client{Timeout: timeout}}
}

func (c *Client) post(ctx domain.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("op=nlp.post: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("op=nlp.post: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("op=nlp.post path=%s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("op=nlp.post path=%s status=%d body=%s: %w",
			path, resp.StatusCode, snippet, domain.ErrInternal)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("op=nlp.post path=%s decode: %w", path, err)
	}
	return nil
}

// Tokenize returns the sidecar's token stream for text.
func (c *Client) Tokenize(ctx domain.Context, text string) ([]domain.Token, error) {
	var out struct {
		Tokens []domain.Token `json:"tokens"`
	}
	if err := c.post(ctx, "/tokenize", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// NounChunks returns base noun phrases for text.
func (c *Client) NounChunks(ctx domain.Context, text string) ([]string, error) {
	var out struct {
		Chunks []string `json:"chunks"`
	}
	if err := c.post(ctx, "/noun_chunks", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return out.Chunks, nil
}

// Similarity returns the whole-document vector similarity of a and b,
// clamped to [0,1].
func (c *Client) Similarity(ctx domain.Context, a, b string) (float64, error) {
	var out struct {
		Similarity float64 `json:"similarity"`
	}
	if err := c.post(ctx, "/similarity", map[string]string{"a": a, "b": b}, &out); err != nil {
		return 0, err
	}
	sim := out.Similarity
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}
