package domain

// SkillExtractor is the external skill-extraction collaborator (LLM or
// deterministic substitute). Implementations must never surface upstream
// failure to the caller: on any error they return a fallback Extraction with
// Source set accordingly. The returned extraction is already normalized.
type SkillExtractor interface {
	Extract(ctx Context, jdText, resumeText string) Extraction
}

// SuggestionWriter generates rewrite suggestions from analysis findings.
// Implementations follow the same contract as SkillExtractor: they degrade to
// an empty list instead of returning an error, letting the caller substitute
// the rule-based cascade.
type SuggestionWriter interface {
	Rewrite(ctx Context, resumeText, jdText string, extraction Extraction, score float64, weakAreas []string) []Suggestion
}

// Token is one NLP token with the attributes the density chart needs.
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	POS     string `json:"pos"`
	IsStop  bool   `json:"is_stop"`
	IsAlpha bool   `json:"is_alpha"`
}

// NLPService is the capability surface consumed from the external NLP engine.
// The core never implements tokenization or vector similarity itself.
type NLPService interface {
	Tokenize(ctx Context, text string) ([]Token, error)
	NounChunks(ctx Context, text string) ([]string, error)
	// Similarity returns a whole-document vector similarity in [0,1].
	Similarity(ctx Context, a, b string) (float64, error)
}

// UsageRepository tracks monthly analysis counters keyed by user and month.
type UsageRepository interface {
	// Increment bumps the counter for the user's current month and returns the
	// new count.
	Increment(ctx Context, user string) (int, error)
	// Count returns the counter for the user's current month.
	Count(ctx Context, user string) (int, error)
}

// ResumeRenderer is the document serializer collaborator: it turns plain-text
// resume content into a styled binary document and parses such documents back
// into paragraph-indexed text for targeted edits.
type ResumeRenderer interface {
	Render(ctx Context, paragraphs []string) ([]byte, error)
	Parse(ctx Context, document []byte) ([]string, error)
}
