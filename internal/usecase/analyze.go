// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/density"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/diagnostics"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/scoring"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/seniority"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/skills"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/suggest"
	"github.com/fairyhunter13/ats-resume-scorer/pkg/textx"
)

// Input limits mirroring the public API contract.
const (
	maxTextLength   = 50000
	minResumeLength = 100
	minJDLength     = 50
	minResumeWords  = 20
	minJDWords      = 10
)

// AnalyzeService orchestrates one full resume-versus-JD analysis: extraction,
// diagnostics, scoring, density, audit assembly and suggestions.
type AnalyzeService struct {
	Extractor domain.SkillExtractor
	Writer    domain.SuggestionWriter
	NLP       domain.NLPService
}

// NewAnalyzeService constructs an AnalyzeService with its collaborators.
// Writer and NLP may be nil; the service degrades to the deterministic
// suggestion cascade and lexical density counting.
func NewAnalyzeService(ex domain.SkillExtractor, w domain.SuggestionWriter, nlp domain.NLPService) AnalyzeService {
	return AnalyzeService{Extractor: ex, Writer: w, NLP: nlp}
}

func validateInputs(resumeText, jdText string) error {
	if strings.TrimSpace(resumeText) == "" {
		return fmt.Errorf("%w: resume text cannot be empty", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(jdText) == "" {
		return fmt.Errorf("%w: job description cannot be empty", domain.ErrInvalidArgument)
	}
	if len(resumeText) < minResumeLength {
		return fmt.Errorf("%w: resume must be at least %d characters, got %d",
			domain.ErrInvalidArgument, minResumeLength, len(resumeText))
	}
	if len(jdText) < minJDLength {
		return fmt.Errorf("%w: job description must be at least %d characters, got %d",
			domain.ErrInvalidArgument, minJDLength, len(jdText))
	}
	if len(resumeText) > maxTextLength {
		return fmt.Errorf("%w: resume exceeds maximum length of %d characters",
			domain.ErrInvalidArgument, maxTextLength)
	}
	if len(jdText) > maxTextLength {
		return fmt.Errorf("%w: job description exceeds maximum length of %d characters",
			domain.ErrInvalidArgument, maxTextLength)
	}
	if textx.WordCount(resumeText) < minResumeWords {
		return fmt.Errorf("%w: resume must contain at least %d words of actual content",
			domain.ErrInvalidArgument, minResumeWords)
	}
	if textx.WordCount(jdText) < minJDWords {
		return fmt.Errorf("%w: job description must contain at least %d words of actual content",
			domain.ErrInvalidArgument, minJDWords)
	}
	return nil
}

// Analyze runs the full deterministic pipeline. The only error class it
// returns is input validation; collaborator failures degrade to fallbacks
// inside their adapters and never surface here.
func (s AnalyzeService) Analyze(ctx domain.Context, resumeText, jdText string) (domain.AnalysisResult, error) {
	resumeText = textx.SanitizeText(resumeText)
	jdText = textx.SanitizeText(jdText)
	if err := validateInputs(resumeText, jdText); err != nil {
		return domain.AnalysisResult{}, err
	}

	ex := domain.NormalizeExtraction(s.Extractor.Extract(ctx, jdText, resumeText))

	contact := diagnostics.CheckContact(resumeText)
	headings := diagnostics.CheckSectionHeadings(resumeText)
	dates := diagnostics.CheckDates(resumeText)
	education := diagnostics.CheckEducation(resumeText, jdText)
	impact := diagnostics.CheckQuantifiedImpact(resumeText)
	placement := diagnostics.CheckKeywordPlacement(resumeText, ex.MatchedSkills)
	title := diagnostics.CheckTitleAlignment(resumeText, jdText, ex.JobTitle)
	stuffing := diagnostics.CheckKeywordStuffing(skills.DetectStuffing(resumeText, ex.MatchedSkills))
	seniorityCheck, fact := seniority.BuildAudit(resumeText, jdText)

	scored := scoring.Calculate(scoring.Facts{
		ResumeText:  resumeText,
		Extraction:  ex,
		ResumeYears: fact.TotalYears,
		HasDegree:   education.HasDegree,
	})

	soft := skills.ExtractSoft(resumeText)
	matched := sortedCopy(ex.MatchedSkills)
	missing := sortedCopy(ex.MissingSkills)

	suggestions := s.buildSuggestions(ctx, resumeText, jdText, ex, scored, placement, impact, seniorityCheck, headings, stuffing)

	res := domain.AnalysisResult{
		FinalScore:      scored.FinalScore,
		Tier:            scored.Tier,
		Outlook:         scored.Outlook,
		Breakdown:       scored.Breakdown,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		SoftSkills:      soft,
		SeniorityMatch:  seniority.DetectResumeLevel(resumeText).Label(),
		VendorEstimates: scored.Vendors,
		Density:         density.Calculate(ctx, s.NLP, resumeText, jdText),
		Audit:           buildAudit(ex, contact, headings, dates, education, impact, placement, title, stuffing, seniorityCheck, fact),
		Suggestions:     suggestions,
		Extraction:      ex,
	}
	return res, nil
}

// buildSuggestions prefers the rewrite collaborator when present and falls
// back to the deterministic cascade whenever it yields nothing.
func (s AnalyzeService) buildSuggestions(
	ctx domain.Context,
	resumeText, jdText string,
	ex domain.Extraction,
	scored scoring.Result,
	placement diagnostics.PlacementReport,
	impact diagnostics.ImpactReport,
	seniorityCheck domain.CheckResult,
	headings diagnostics.HeadingsReport,
	stuffing domain.CheckResult,
) []domain.Suggestion {
	if s.Writer != nil {
		weak := weakAreas(ex, placement, impact, seniorityCheck, headings, stuffing)
		if got := s.Writer.Rewrite(ctx, resumeText, jdText, ex, scored.FinalScore, weak); len(got) > 0 {
			if len(got) > suggest.MaxSuggestions {
				got = got[:suggest.MaxSuggestions]
			}
			return got
		}
	}
	return suggest.Generate(scored.Breakdown, ex)
}

// weakAreas names the failed diagnostics in plain language for the rewrite
// collaborator's prompt.
func weakAreas(
	ex domain.Extraction,
	placement diagnostics.PlacementReport,
	impact diagnostics.ImpactReport,
	seniorityCheck domain.CheckResult,
	headings diagnostics.HeadingsReport,
	stuffing domain.CheckResult,
) []string {
	var areas []string
	if !placement.Result.Passed() {
		areas = append(areas, "keyword placement in experience bullets")
	}
	if !impact.Result.Passed() {
		areas = append(areas, "quantified achievements and metrics")
	}
	if !seniorityCheck.Passed() {
		areas = append(areas, "seniority language and ownership verbs")
	}
	if !headings.Result.Passed() {
		areas = append(areas, "section structure and headings")
	}
	if !stuffing.Passed() {
		areas = append(areas, "keyword over-use")
	}
	if len(ex.MissingSkills) > 3 {
		areas = append(areas, fmt.Sprintf("%d missing required skills", len(ex.MissingSkills)))
	}
	return areas
}

func buildAudit(
	ex domain.Extraction,
	contact diagnostics.ContactReport,
	headings diagnostics.HeadingsReport,
	dates diagnostics.DatesReport,
	education diagnostics.EducationReport,
	impact diagnostics.ImpactReport,
	placement diagnostics.PlacementReport,
	title diagnostics.TitleReport,
	stuffing domain.CheckResult,
	seniorityCheck domain.CheckResult,
	fact domain.ExperienceFact,
) []domain.AuditGroup {
	groups := []domain.AuditGroup{
		{Name: "Contact & Searchability", Items: []domain.CheckResult{
			contact.Location, contact.Channels, contact.LinkedIn,
		}},
		{Name: "Document Structure", Items: []domain.CheckResult{
			headings.Result, dates.Result,
		}},
		{Name: "Alignment & Seniority", Items: []domain.CheckResult{
			title.Result, seniorityCheck,
		}},
		{Name: "Keyword Intelligence", Items: []domain.CheckResult{
			placement.Result, stuffing, skillCoverage(ex),
		}},
		{Name: "Experience & Qualifications", Items: []domain.CheckResult{
			impact.Result, education.Result,
		}},
	}
	if item, ok := timelineItem(fact); ok {
		groups = append(groups, domain.AuditGroup{Name: "Experience Timeline", Items: []domain.CheckResult{item}})
	}
	return groups
}

// skillCoverage summarizes the matched/required ratio as one audit item.
func skillCoverage(ex domain.Extraction) domain.CheckResult {
	total := len(ex.JDRequiredSkills)
	if n := len(ex.MatchedSkills) + len(ex.MissingSkills); n > total {
		total = n
	}
	if total == 0 {
		total = 1
	}
	pct := float64(len(ex.MatchedSkills)) / float64(total) * 100
	if pct >= 50 {
		return domain.CheckResult{
			Status: domain.CheckPass,
			Message: fmt.Sprintf("Strong Skill Coverage: %d of %d required skills matched (%.0f%%), a solid functional overlap.",
				len(ex.MatchedSkills), total, pct),
		}
	}
	listed := ex.MissingSkills
	suffix := ""
	if len(listed) > 5 {
		listed = listed[:5]
		suffix = "..."
	}
	return domain.CheckResult{
		Status: domain.CheckFail,
		Message: fmt.Sprintf("Skill Gap: %d of %d required skills matched (%.0f%%). Add these missing skills: %s%s.",
			len(ex.MatchedSkills), total, pct, strings.Join(listed, ", "), suffix),
	}
}

func timelineItem(fact domain.ExperienceFact) (domain.CheckResult, bool) {
	if fact.Mismatch {
		return domain.CheckResult{Status: domain.CheckFail, Message: fact.MismatchMessage}, true
	}
	if fact.YearsFromDates > 0 {
		return domain.CheckResult{
			Status: domain.CheckPass,
			Message: fmt.Sprintf("Timeline Verified: Date ranges calculate to %d years of experience. ATS systems use chronological dates to validate claimed experience levels.",
				fact.YearsFromDates),
		}, true
	}
	return domain.CheckResult{}, false
}

func sortedCopy(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	sort.Strings(out)
	return out
}
