package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/usecase"
	"github.com/fairyhunter13/ats-resume-scorer/pkg/textx"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg      config.Config
	Analyze  usecase.AnalyzeService
	Usage    usecase.UsageService
	Renderer domain.ResumeRenderer
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, analyze usecase.AnalyzeService, usage usecase.UsageService, renderer domain.ResumeRenderer) *Server {
	return &Server{Cfg: cfg, Analyze: analyze, Usage: usage, Renderer: renderer}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// allowedExt enforces an allowlist for uploads: .txt, .pdf, .docx
func allowedExt(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".txt") || strings.HasSuffix(n, ".pdf") || strings.HasSuffix(n, ".docx")
}

func allowedMIMEFor(m, filename string) bool {
	m = strings.ToLower(m)
	// Some detectors misclassify rich plain text, so .txt accepts any text/*
	if strings.HasSuffix(strings.ToLower(filename), ".txt") && strings.HasPrefix(m, "text/") {
		return true
	}
	if strings.HasPrefix(m, "text/plain") { // allow parameters such as charset
		return true
	}
	return m == "application/pdf" || m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// extractUploadedText turns an uploaded file into sanitized resume or job
// description text. Binary documents go through the renderer when one is
// configured.
func extractUploadedText(ctx context.Context, renderer domain.ResumeRenderer, h *multipart.FileHeader, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(h.Filename))
	if ext == ".pdf" || ext == ".docx" {
		if renderer == nil {
			return "", fmt.Errorf("%w: %s uploads require the document parser", domain.ErrInvalidArgument, strings.TrimPrefix(ext, "."))
		}
		paragraphs, err := renderer.Parse(ctx, data)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", ext, err)
		}
		return textx.SanitizeText(strings.Join(paragraphs, "\n")), nil
	}
	return textx.SanitizeText(string(data)), nil
}

type analyzeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	JDText     string `json:"jd_text" validate:"required"`
	User       string `json:"user"`
}

// AnalyzeHandler scores a resume against a job description from JSON input.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // caps well above the per-document text limit
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}
		s.runAnalysis(w, r, req.ResumeText, req.JDText, req.User)
	}
}

// UploadAnalyzeHandler accepts multipart resume and jd files, extracts their
// text, and runs the same analysis as AnalyzeHandler.
func (s *Server) UploadAnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes*2)
		if err := r.ParseMultipartForm(maxBytes * 2); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code:    "INVALID_ARGUMENT",
					Message: "payload too large",
					Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		resumeText, ok := s.readUploadedDoc(w, r, "resume")
		if !ok {
			return
		}
		jdText, ok := s.readUploadedDoc(w, r, "jd")
		if !ok {
			return
		}
		s.runAnalysis(w, r, resumeText, jdText, r.FormValue("user"))
	}
}

// readUploadedDoc reads one multipart file field, enforces the extension and
// MIME allowlists, and extracts its text. On failure it writes the error
// response and returns ok=false.
func (s *Server) readUploadedDoc(w http.ResponseWriter, r *http.Request, field string) (string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %s file required", domain.ErrInvalidArgument, field), map[string]string{"field": field})
		return "", false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %s read: %v", domain.ErrInvalidArgument, field, err), nil)
		return "", false
	}
	if !allowedExt(header.Filename) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
			Code:    "INVALID_ARGUMENT",
			Message: fmt.Sprintf("unsupported media type for %s (extension)", field),
			Details: map[string]any{"filename": header.Filename},
		}})
		return "", false
	}
	mt := mimetype.Detect(data)
	if !allowedMIMEFor(mt.String(), header.Filename) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
			Code:    "INVALID_ARGUMENT",
			Message: fmt.Sprintf("unsupported media type for %s (content)", field),
			Details: map[string]any{"mime": mt.String(), "filename": header.Filename},
		}})
		return "", false
	}
	text, err := extractUploadedText(r.Context(), s.Renderer, header, data)
	if err != nil {
		writeError(w, r, err, map[string]string{"field": field})
		return "", false
	}
	return text, true
}

// runAnalysis consumes the user's quota, runs the scoring pipeline, and
// writes the result.
func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, resumeText, jdText, user string) {
	ctx := r.Context()
	if err := s.Usage.Consume(ctx, user); err != nil {
		writeError(w, r, err, nil)
		return
	}
	res, err := s.Analyze.Analyze(ctx, resumeText, jdText)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	observability.ObserveAnalysis(string(res.Tier), res.FinalScore)
	LoggerFrom(r).Info("analysis complete",
		"final_score", res.FinalScore,
		"tier", string(res.Tier),
		"extraction_source", string(res.Extraction.Source))
	writeJSON(w, http.StatusOK, res)
}

// UsageHandler reports the caller's remaining free-tier analyses.
func (s *Server) UsageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := s.Usage.Status(r.Context(), r.URL.Query().Get("user"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// HealthHandler is the liveness probe.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// RootHandler reports service identity and version.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "online", "version": "3.0"})
	}
}

// acceptsJSON rejects requests whose Accept header excludes JSON.
func acceptsJSON(w http.ResponseWriter, r *http.Request) bool {
	if a := r.Header.Get("Accept"); a != "" && a != "*/*" && !strings.Contains(a, "application/json") {
		writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{
			Code:    "INVALID_ARGUMENT",
			Message: "not acceptable",
			Details: map[string]any{"accept": a},
		}})
		return false
	}
	return true
}
