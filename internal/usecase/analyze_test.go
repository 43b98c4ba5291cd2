package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

type stubExtractor struct{ ex domain.Extraction }

func (s stubExtractor) Extract(_ domain.Context, _, _ string) domain.Extraction { return s.ex }

type stubWriter struct{ out []domain.Suggestion }

func (s stubWriter) Rewrite(_ domain.Context, _, _ string, _ domain.Extraction, _ float64, _ []string) []domain.Suggestion {
	return s.out
}

const testResume = `Jane Doe
Seattle, WA
jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe

Professional Summary
Senior software engineer with 6+ years of experience building Python services, Docker deployments, and AWS infrastructure. Strong communication and leadership.

Professional Experience
Senior Software Engineer, Acme Corp
Jan 2019 - Present
- Led a team of 5 engineers and reduced deployment time by 40%
- Built Python microservices on Kubernetes handling 2 million requests per day
- Cut infrastructure spend by $200K through AWS rightsizing

Skills
Python, Docker, AWS, Kubernetes, Terraform

Education
B.S. Computer Science, University of Washington, 2016`

const testJD = `We are hiring a Senior Software Engineer with 5+ years of experience. Requirements: Python, Docker, AWS, and Kubernetes in production. A bachelor's degree in computer science is required for this position.`

func testExtraction() domain.Extraction {
	return domain.Extraction{
		JobTitle:          "Senior Software Engineer",
		SeniorityLevel:    domain.LevelSenior,
		RequiredYears:     5,
		EducationRequired: domain.DegreeBachelor,
		JDRequiredSkills:  []string{"python", "docker", "aws", "kubernetes"},
		MatchedSkills:     []string{"python", "docker", "aws", "kubernetes"},
		MissingSkills:     []string{"graphql"},
		Source:            domain.SourceExtracted,
	}
}

func TestAnalyze_Validation(t *testing.T) {
	t.Parallel()
	svc := NewAnalyzeService(stubExtractor{ex: testExtraction()}, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		resume string
		jd     string
		msg    string
	}{
		{"empty resume", "   ", testJD, "resume text cannot be empty"},
		{"empty jd", testResume, "\n\t", "job description cannot be empty"},
		{"short resume", "too short but not empty", testJD, "at least 100 characters"},
		{"short jd", testResume, "hire an engineer now", "at least 50 characters"},
		{"resume too long", strings.Repeat("word ", 11000), testJD, "maximum length"},
		{"jd too long", testResume, strings.Repeat("word ", 11000), "maximum length"},
		{"too few resume words", strings.Repeat("x", 120), testJD, "at least 20 words"},
		{"too few jd words", testResume, strings.Repeat("y", 80) + " only five words here now", "at least 10 words"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Analyze(ctx, tc.resume, tc.jd)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestAnalyze_FullPipeline(t *testing.T) {
	t.Parallel()
	svc := NewAnalyzeService(stubExtractor{ex: testExtraction()}, nil, nil)

	res, err := svc.Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)

	assert.Greater(t, res.FinalScore, 50.0)
	assert.NotEqual(t, domain.TierError, res.Tier)
	assert.NotEmpty(t, res.Outlook)
	assert.InDelta(t, res.Breakdown.Sum(), res.FinalScore, 0.001)

	assert.Equal(t, []string{"aws", "docker", "kubernetes", "python"}, res.MatchedSkills)
	assert.Equal(t, []string{"graphql"}, res.MissingSkills)
	assert.Contains(t, res.SoftSkills, "communication")
	assert.Equal(t, "Senior", res.SeniorityMatch)

	names := make([]string, 0, len(res.Audit))
	for _, g := range res.Audit {
		names = append(names, g.Name)
		assert.NotEmpty(t, g.Items)
	}
	assert.Equal(t, []string{
		"Contact & Searchability",
		"Document Structure",
		"Alignment & Seniority",
		"Keyword Intelligence",
		"Experience & Qualifications",
		"Experience Timeline",
	}, names)

	assert.NotEmpty(t, res.Suggestions)
	assert.LessOrEqual(t, len(res.Suggestions), 5)
	assert.Contains(t, res.VendorEstimates.Taleo, "match")
	assert.NotEmpty(t, res.Density.Labels)
}

func TestAnalyze_Idempotent(t *testing.T) {
	t.Parallel()
	svc := NewAnalyzeService(stubExtractor{ex: testExtraction()}, nil, nil)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, testResume, testJD)
	require.NoError(t, err)
	second, err := svc.Analyze(ctx, testResume, testJD)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyze_WriterPreferred(t *testing.T) {
	t.Parallel()
	custom := make([]domain.Suggestion, 0, 7)
	for i := 0; i < 7; i++ {
		custom = append(custom, domain.Suggestion{
			Priority: domain.PriorityHigh,
			Category: "rewrite",
			Area:     "summary",
			Issue:    "issue",
			Fix:      "fix",
		})
	}
	svc := NewAnalyzeService(stubExtractor{ex: testExtraction()}, stubWriter{out: custom}, nil)

	res, err := svc.Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 5)
	assert.Equal(t, "rewrite", res.Suggestions[0].Category)
}

func TestAnalyze_WriterEmptyFallsBackToCascade(t *testing.T) {
	t.Parallel()
	svc := NewAnalyzeService(stubExtractor{ex: testExtraction()}, stubWriter{}, nil)

	res, err := svc.Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Suggestions)
	for _, s := range res.Suggestions {
		assert.NotEqual(t, "rewrite", s.Category)
	}
}

func TestAnalyze_EmptyExtractionShortCircuits(t *testing.T) {
	t.Parallel()
	svc := NewAnalyzeService(stubExtractor{}, nil, nil)

	res, err := svc.Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)
	assert.Zero(t, res.FinalScore)
	assert.Equal(t, domain.TierError, res.Tier)
	assert.Empty(t, res.MatchedSkills)
	assert.NotNil(t, res.MatchedSkills)
	assert.NotEmpty(t, res.Suggestions)
}

func TestSkillCoverage_Messages(t *testing.T) {
	t.Parallel()
	strong := skillCoverage(domain.Extraction{
		JDRequiredSkills: []string{"a", "b", "c", "d"},
		MatchedSkills:    []string{"a", "b", "c"},
		MissingSkills:    []string{"d"},
	})
	assert.Equal(t, domain.CheckPass, strong.Status)
	assert.Contains(t, strong.Message, "3 of 4")

	weak := skillCoverage(domain.Extraction{
		JDRequiredSkills: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		MatchedSkills:    []string{"a"},
		MissingSkills:    []string{"b", "c", "d", "e", "f", "g", "h"},
	})
	assert.Equal(t, domain.CheckFail, weak.Status)
	assert.Contains(t, weak.Message, "...")
}
