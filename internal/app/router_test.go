package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/httpserver"
	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/usecase"
)

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, ParseOrigins(""))
	assert.Equal(t, []string{"*"}, ParseOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, ParseOrigins(" https://a.example, https://b.example ,"))
}

type noopExtractor struct{}

func (noopExtractor) Extract(_ domain.Context, _, _ string) domain.Extraction {
	return domain.NormalizeExtraction(domain.Extraction{Source: domain.SourceFallback})
}

type noopUsageRepo struct{}

func (noopUsageRepo) Increment(_ domain.Context, _ string) (int, error) { return 1, nil }
func (noopUsageRepo) Count(_ domain.Context, _ string) (int, error)    { return 0, nil }

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{AppEnv: "test", MaxUploadMB: 10, RateLimitPerMin: 100, CORSAllowOrigins: "*"}
	srv := httpserver.NewServer(cfg,
		usecase.NewAnalyzeService(noopExtractor{}, nil, nil),
		usecase.NewUsageService(noopUsageRepo{}, 5),
		nil,
	)
	return BuildRouter(cfg, srv)
}

func TestRouter_HealthAndRoot(t *testing.T) {
	h := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "online")
}

func TestRouter_Metrics(t *testing.T) {
	h := newRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UsageRoute(t *testing.T) {
	h := newRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/usage?user=jane", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "can_analyze")
}

func TestRouter_AnalyzeBadRequest(t *testing.T) {
	h := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
