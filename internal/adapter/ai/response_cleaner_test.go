package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

func TestCleanJSONResponse_MarkdownFences(t *testing.T) {
	t.Parallel()
	rc := NewResponseCleaner()

	got, err := rc.CleanJSONResponse("```json\n{\"job_title\": \"QA Engineer\"}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"job_title":"QA Engineer"}`, got)
}

func TestCleanJSONResponse_ProseAroundObject(t *testing.T) {
	t.Parallel()
	rc := NewResponseCleaner()

	got, err := rc.CleanJSONResponse("Here is the analysis you asked for:\n{\"matched_skills\": [\"python\"]}\nHope this helps!")
	require.NoError(t, err)
	assert.JSONEq(t, `{"matched_skills":["python"]}`, got)
}

func TestCleanJSONResponse_BracesInsideStrings(t *testing.T) {
	t.Parallel()
	rc := NewResponseCleaner()

	got, err := rc.CleanJSONResponse(`{"issue": "use {braces} carefully", "fix": "ok"}`)
	require.NoError(t, err)
	assert.Contains(t, got, "{braces}")
}

func TestCleanJSONResponse_Invalid(t *testing.T) {
	t.Parallel()
	rc := NewResponseCleaner()

	_, err := rc.CleanJSONResponse("the model refused to answer")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)

	_, err = rc.CleanJSONResponse(`{"unterminated": `)
	require.Error(t, err)
}

func TestSmartTruncate_ShortTextUntouched(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "short resume", SmartTruncate("short resume", 100))
}

func TestSmartTruncate_KeepsHeadAndTail(t *testing.T) {
	t.Parallel()
	head := "HEAD-MARKER "
	tail := " TAIL-MARKER"
	text := head + strings.Repeat("filler words in the middle section ", 3000) + tail

	got := SmartTruncate(text, 500)
	assert.Less(t, len(got), len(text))
	assert.Contains(t, got, "HEAD-MARKER")
	assert.Contains(t, got, "TAIL-MARKER")
	assert.Contains(t, got, "truncated for length")
}

func TestCountTokens_Positive(t *testing.T) {
	t.Parallel()
	n := CountTokens("a resume with several words of plain english text")
	assert.Greater(t, n, 0)
}
