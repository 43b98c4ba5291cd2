// Package seniority infers career level and total experience from resume and
// job-description text: explicit "N years" statements, employment date
// ranges, and level/leadership vocabulary.
package seniority

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

var mgmtKeys = []string{
	"director", "vp ", "vice president", "head of",
	"chief", "cto", "cpo", "ceo", "principal architect",
	"solutions architect", "enterprise architect", "staff architect",
}

var seniorKeys = []string{"senior", "sr.", "sr ", "lead ", "staff ", "principal"}

var entryKeys = []string{
	"junior", "jr.", "jr ", "entry level", "entry-level",
	"associate", "graduate", "intern", "trainee", "new grad",
}

// leadershipVocabulary terms signal senior scope even without a senior title.
var leadershipVocabulary = []string{
	"stakeholder management", "budgeting", "mentoring", "strategic planning",
	"resource allocation", "team leadership", "project delivery", "roadmap",
	"cross-functional", "process improvement", "hiring", "performance review",
	"organizational development", "change management", "executive reporting",
	"p&l", "profit and loss", "board reporting", "kpi", "okr",
}

// statedYearsPatterns are ordered most specific first; the first match wins.
var statedYearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)over\s+(\d+)\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d+)\s*years?\s+experience`),
	regexp.MustCompile(`(?i)minimum\s+(\d+)\s*years?`),
	regexp.MustCompile(`(?i)at\s+least\s+(\d+)\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\s*[-–—]\s*\d+\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\+\s*years?`),
}

// jdRangePatterns map common JD year ranges straight to a level and minimum.
var jdRangePatterns = []struct {
	re       *regexp.Regexp
	level    domain.Level
	minYears int
}{
	{regexp.MustCompile(`5\s*[-–—]\s*8\s*years?`), domain.LevelSenior, 5},
	{regexp.MustCompile(`3\s*[-–—]\s*6\s*years?`), domain.LevelMid, 3},
	{regexp.MustCompile(`3\s*[-–—]\s*5\s*years?`), domain.LevelMid, 3},
	{regexp.MustCompile(`2\s*[-–—]\s*5\s*years?`), domain.LevelMid, 2},
	{regexp.MustCompile(`2\s*[-–—]\s*4\s*years?`), domain.LevelMid, 2},
	{regexp.MustCompile(`8\s*[-–—]\s*10\s*years?`), domain.LevelManagement, 8},
}

// ParseStatedYears extracts a single integer from explicit experience
// statements like "5+ years of experience" or "minimum 3 years". Returns 0
// when no pattern matches.
func ParseStatedYears(text string) int {
	for _, re := range statedYearsPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n
			}
		}
	}
	return 0
}

// ExtractLeadershipSkills returns the leadership vocabulary terms present in
// the text, sorted for stable output.
func ExtractLeadershipSkills(text string) []string {
	low := strings.ToLower(text)
	var found []string
	for _, term := range leadershipVocabulary {
		if strings.Contains(low, term) {
			found = append(found, term)
		}
	}
	sort.Strings(found)
	return found
}

// CalculateExperience reconciles explicit year statements with date-range
// math: the final figure is whichever signal is higher, and a mismatch is
// flagged when both are present and disagree beyond a seniority-scaled
// tolerance (1 year under 5 stated years, otherwise 2).
func CalculateExperience(resumeText string) domain.ExperienceFact {
	fromText := ParseStatedYears(resumeText)
	fromDates, ranges := ParseDateRanges(resumeText)

	fact := domain.ExperienceFact{
		YearsFromStatement: fromText,
		YearsFromDates:     fromDates,
		TotalYears:         fromText,
		DateRanges:         ranges,
	}
	if fromDates > fact.TotalYears {
		fact.TotalYears = fromDates
	}

	if fromText > 0 && fromDates > 0 {
		diff := fromText - fromDates
		if diff < 0 {
			diff = -diff
		}
		tolerance := 2
		if fromText < 5 {
			tolerance = 1
		}
		if diff > tolerance {
			fact.Mismatch = true
			fact.MismatchMessage = fmt.Sprintf(
				"Experience Discrepancy: Your summary states '%d years' but date ranges calculate to %d years. ATS systems cross-validate these; ensure consistency.",
				fromText, fromDates)
		}
	}
	return fact
}

func anyKeyword(textLow string, keys []string) bool {
	for _, k := range keys {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(k))
		if err != nil {
			continue
		}
		if re.MatchString(textLow) {
			return true
		}
	}
	return false
}

// classifyLevel applies the level priority order: reconciled years first,
// then entry keywords, management keywords, and senior signals.
func classifyLevel(textLow string, leadershipCount, years int) domain.Level {
	switch {
	case years >= 8:
		return domain.LevelManagement
	case years >= 5:
		return domain.LevelSenior
	case years > 2:
		return domain.LevelMid
	case years > 0:
		return domain.LevelEntry
	}

	if anyKeyword(textLow, entryKeys) {
		return domain.LevelEntry
	}
	if anyKeyword(textLow, mgmtKeys) {
		return domain.LevelManagement
	}
	if anyKeyword(textLow, seniorKeys) || leadershipCount >= 3 {
		return domain.LevelSenior
	}
	return domain.LevelMid
}

// DetectResumeLevel classifies the resume's career level.
func DetectResumeLevel(resumeText string) domain.Level {
	leadership := len(ExtractLeadershipSkills(resumeText))
	fact := CalculateExperience(resumeText)
	return classifyLevel(strings.ToLower(resumeText), leadership, fact.TotalYears)
}

// DetectJDLevel classifies the JD's target level and required years. Explicit
// numeric ranges win over the single-year extractor, which wins over
// keyword-only classification.
func DetectJDLevel(jdText string) (domain.Level, int) {
	jdLow := strings.ToLower(jdText)

	for _, p := range jdRangePatterns {
		if p.re.MatchString(jdLow) {
			return p.level, p.minYears
		}
	}

	years := ParseStatedYears(jdLow)
	switch {
	case years >= 8:
		return domain.LevelManagement, years
	case years >= 5:
		return domain.LevelSenior, years
	case years > 2:
		return domain.LevelMid, years
	case years > 0:
		return domain.LevelEntry, years
	}

	if anyKeyword(jdLow, mgmtKeys) {
		return domain.LevelManagement, 0
	}
	if anyKeyword(jdLow, seniorKeys) {
		return domain.LevelSenior, 0
	}
	if anyKeyword(jdLow, entryKeys) {
		return domain.LevelEntry, 0
	}
	return domain.LevelMid, 0
}

// BuildAudit compares resume level rank against the JD's. A years shortfall
// against an explicit requirement is a hard gate that overrides level-rank
// agreement.
func BuildAudit(resumeText, jdText string) (domain.CheckResult, domain.ExperienceFact) {
	jdLevel, requiredYears := DetectJDLevel(jdText)
	resLevel := DetectResumeLevel(resumeText)
	fact := CalculateExperience(resumeText)

	if requiredYears > 0 && fact.TotalYears < requiredYears {
		return domain.CheckResult{
			Status: domain.CheckFail,
			Message: fmt.Sprintf(
				"Hard Gate Risk: This role requires %d+ years of experience. Your resume reflects approximately %d years. Taleo and Workday use this as an automatic filter; consider making your total experience duration more explicit.",
				requiredYears, fact.TotalYears),
		}, fact
	}

	resRank, jdRank := resLevel.Rank(), jdLevel.Rank()
	switch {
	case resRank > jdRank:
		return domain.CheckResult{
			Status: domain.CheckPass,
			Message: fmt.Sprintf(
				"Competitive Advantage: Your %s profile exceeds the %s requirement. Tailor your summary to show cultural fit and avoid appearing over-qualified.",
				resLevel.Label(), jdLevel.Label()),
		}, fact
	case resRank == jdRank:
		return domain.CheckResult{
			Status: domain.CheckPass,
			Message: fmt.Sprintf(
				"Ideal Seniority Match: Your %s background maps perfectly to the target level. This reduces hire-risk signals in Greenhouse and SmartRecruiters scoring.",
				resLevel.Label()),
		}, fact
	default:
		return domain.CheckResult{
			Status: domain.CheckFail,
			Message: fmt.Sprintf(
				"Experience Gap: The role demands %s competence, but your profile reflects %s. Use ownership verbs (led, owned, drove) and quantified business outcomes to signal higher seniority.",
				jdLevel.Label(), resLevel.Label()),
		}, fact
	}
}
