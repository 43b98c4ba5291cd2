package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/usecase"
)

const handlerResume = `Jane Doe
Seattle, WA | jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe

Professional Summary
Senior software engineer with 6+ years of experience building Python services, Docker deployments, and AWS infrastructure. Strong communication and leadership.

Professional Experience
Senior Software Engineer, Acme Corp
Jan 2019 - Present
- Led a team of 5 engineers and reduced deployment time by 40%
- Built Python microservices on Kubernetes handling 2 million requests per day

Skills
Python, Docker, AWS, Kubernetes

Education
B.S. Computer Science, University of Washington`

const handlerJD = `We are hiring a Senior Software Engineer with 5+ years of experience. Must know Python, Docker, AWS, and Kubernetes. A bachelor's degree in computer science or related field is required.`

type fixedExtractor struct{ ex domain.Extraction }

func (f fixedExtractor) Extract(_ domain.Context, _, _ string) domain.Extraction {
	return domain.NormalizeExtraction(f.ex)
}

type memUsageRepo struct{ counts map[string]int }

func (m *memUsageRepo) Increment(_ domain.Context, user string) (int, error) {
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[user]++
	return m.counts[user], nil
}

func (m *memUsageRepo) Count(_ domain.Context, user string) (int, error) {
	return m.counts[user], nil
}

func newTestServer(t *testing.T, limit int) (*Server, *memUsageRepo) {
	t.Helper()
	ex := domain.Extraction{
		JobTitle:         "Senior Software Engineer",
		SeniorityLevel:   domain.LevelSenior,
		RequiredYears:    5,
		JDRequiredSkills: []string{"python", "docker", "aws", "kubernetes"},
		MatchedSkills:    []string{"python", "docker", "aws", "kubernetes"},
		MissingSkills:    []string{},
		Source:           domain.SourceExtracted,
	}
	repo := &memUsageRepo{}
	srv := NewServer(
		config.Config{AppEnv: "test", MaxUploadMB: 10},
		usecase.NewAnalyzeService(fixedExtractor{ex: ex}, nil, nil),
		usecase.NewUsageService(repo, limit),
		nil,
	)
	return srv, repo
}

func analyzeBody(t *testing.T, resume, jd, user string) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(map[string]string{"resume_text": resume, "jd_text": jd, "user": user})
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestAnalyzeHandler_Success(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", analyzeBody(t, handlerResume, handlerJD, "jane"))
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Greater(t, res.FinalScore, 50.0)
	assert.NotEmpty(t, res.Audit)
	assert.Equal(t, []string{"aws", "docker", "kubernetes", "python"}, res.MatchedSkills)
}

func TestAnalyzeHandler_MissingField(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", analyzeBody(t, handlerResume, "", "jane"))
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)
}

func TestAnalyzeHandler_ShortResume(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", analyzeBody(t, "too short", handlerJD, "jane"))
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)
	assert.Contains(t, env.Error.Message, "at least")
}

func TestAnalyzeHandler_QuotaExceeded(t *testing.T) {
	srv, repo := newTestServer(t, 2)
	repo.counts = map[string]int{"jane": 2}

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", analyzeBody(t, handlerResume, handlerJD, "jane"))
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "QUOTA_EXCEEDED", env.Error.Code)
}

func TestAnalyzeHandler_InvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeHandler_AcceptNegotiation(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", analyzeBody(t, handlerResume, handlerJD, ""))
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func multipartDocs(t *testing.T, resumeName, resumeBody, jdName, jdBody, user string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", resumeName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(resumeBody))
	require.NoError(t, err)
	fw, err = mw.CreateFormFile("jd", jdName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(jdBody))
	require.NoError(t, err)
	if user != "" {
		require.NoError(t, mw.WriteField("user", user))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadAnalyzeHandler_TextFiles(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	body, ctype := multipartDocs(t, "resume.txt", handlerResume, "jd.txt", handlerJD, "jane")
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	srv.UploadAnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Greater(t, res.FinalScore, 50.0)
}

func TestUploadAnalyzeHandler_UnsupportedExtension(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	body, ctype := multipartDocs(t, "resume.exe", handlerResume, "jd.txt", handlerJD, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	srv.UploadAnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUploadAnalyzeHandler_PDFWithoutRenderer(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	pdf := "%PDF-1.4\n" + strings.Repeat("x", 200)
	body, ctype := multipartDocs(t, "resume.pdf", pdf, "jd.txt", handlerJD, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	srv.UploadAnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Contains(t, env.Error.Message, "parser")
}

func TestUploadAnalyzeHandler_MissingFile(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(handlerResume))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.UploadAnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Contains(t, env.Error.Message, "jd file required")
}

func TestUploadAnalyzeHandler_WrongContentType(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze/upload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.UploadAnalyzeHandler()(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsageHandler(t *testing.T) {
	srv, repo := newTestServer(t, 5)
	repo.counts = map[string]int{"jane": 2}

	req := httptest.NewRequest(http.MethodGet, "/v1/usage?user=jane", nil)
	rec := httptest.NewRecorder()
	srv.UsageHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var st usecase.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Used)
	assert.Equal(t, 5, st.Limit)
	assert.True(t, st.CanAnalyze)
}

func TestHealthHandler(t *testing.T) {
	srv, _ := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.HealthHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		name string
	}{
		{domain.ErrInvalidArgument, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrQuotaExceeded, http.StatusTooManyRequests, "QUOTA_EXCEEDED"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{domain.ErrUpstreamTimeout, http.StatusServiceUnavailable, "UPSTREAM_TIMEOUT"},
		{domain.ErrSchemaInvalid, http.StatusServiceUnavailable, "SCHEMA_INVALID"},
		{domain.ErrInternal, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, nil)
		assert.Equal(t, tc.code, rec.Code, tc.name)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, tc.name, env.Error.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRequestID(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, LoggerFrom(r))
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
