package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		AppEnv:            "test",
		OpenRouterAPIKey:  "test-key",
		OpenRouterBaseURL: baseURL,
		OpenRouterModel:   "test/model",
	}
}

func chatResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

const sampleJD = "We need a QA engineer with python, selenium and docker experience for our automation team."
const sampleResume = "QA engineer with python and selenium test automation background across several product teams."

func TestExtract_Success(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		content := "```json\n" + `{
			"job_title": "QA Engineer",
			"seniority_level": "mid",
			"required_years": 3,
			"education_required": "bachelor",
			"jd_required_skills": ["Python", "K8s", "python"],
			"matched_skills": ["Python"],
			"missing_skills": ["K8s"]
		}` + "\n```"
		_, _ = w.Write([]byte(chatResponse(content)))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	ex := c.Extract(context.Background(), sampleJD, sampleResume)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, domain.SourceExtracted, ex.Source)
	assert.Equal(t, "QA Engineer", ex.JobTitle)
	assert.Equal(t, 3, ex.RequiredYears)
	// Aliases canonicalized and duplicates removed.
	assert.Equal(t, []string{"python", "kubernetes"}, ex.JDRequiredSkills)
	assert.Equal(t, []string{"python"}, ex.MatchedSkills)
	assert.Equal(t, []string{"kubernetes"}, ex.MissingSkills)
	assert.NotNil(t, ex.BonusSkills)
}

func TestExtract_ClientErrorFallsBack(t *testing.T) {
	t.Parallel()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	ex := c.Extract(context.Background(), sampleJD, sampleResume)

	assert.Equal(t, 1, hits, "4xx must not be retried")
	assert.Equal(t, domain.SourceFallback, ex.Source)
	assert.Contains(t, ex.MatchedSkills, "python")
	assert.Contains(t, ex.MatchedSkills, "selenium")
	assert.Contains(t, ex.MissingSkills, "docker")
}

func TestExtract_MalformedJSONFallsBack(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatResponse("I cannot produce JSON today, sorry.")))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	ex := c.Extract(context.Background(), sampleJD, sampleResume)
	assert.Equal(t, domain.SourceFallback, ex.Source)
}

func TestExtract_BadEnumFallsBack(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatResponse(`{"seniority_level": "rockstar", "matched_skills": ["python"]}`)))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	ex := c.Extract(context.Background(), sampleJD, sampleResume)
	assert.Equal(t, domain.SourceFallback, ex.Source)
}

func TestExtract_NoAPIKeyFallsBack(t *testing.T) {
	t.Parallel()
	c := New(config.Config{AppEnv: "test"})
	ex := c.Extract(context.Background(), sampleJD, sampleResume)
	assert.Equal(t, domain.SourceFallback, ex.Source)
}

func TestRewrite_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		content := `{"suggestions": [
			{"area": "Professional Summary", "priority": "high", "issue": "missing docker", "original": "QA engineer.", "fix": "QA engineer with docker experience.", "score_impact": "+4pts Keyword Match"},
			{"area": "Skills Section", "priority": "urgent", "issue": "x", "original": "N/A - new addition", "fix": "Docker, Kubernetes"},
			{"area": "Education", "priority": "low", "issue": "empty fix must be dropped", "fix": "   "}
		]}`
		_, _ = w.Write([]byte(chatResponse(content)))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	got := c.Rewrite(context.Background(), sampleResume, sampleJD, domain.Extraction{JobTitle: "QA Engineer"}, 62.5, []string{"keyword placement"})

	require.Len(t, got, 2)
	assert.Equal(t, domain.PriorityHigh, got[0].Priority)
	assert.Equal(t, "rewrite", got[0].Category)
	assert.Equal(t, "Replaces: QA engineer.", got[0].Rationale)
	assert.Equal(t, "+4pts Keyword Match", got[0].ScoreImpact)
	// Unknown priority defaults to medium; "N/A" original carries no rationale.
	assert.Equal(t, domain.PriorityMedium, got[1].Priority)
	assert.Empty(t, got[1].Rationale)
}

func TestRewrite_FailureReturnsNil(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	assert.Nil(t, c.Rewrite(context.Background(), sampleResume, sampleJD, domain.Extraction{}, 10, nil))
}
