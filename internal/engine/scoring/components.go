// Package scoring implements the nine component scorers and the aggregator
// that combines them into the final 0-100 result.
package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/diagnostics"
	"github.com/fairyhunter13/ats-resume-scorer/pkg/textx"
)

// round1 keeps component scores presentable without float noise.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// ScoreKeywordMatch maps the required-skill match rate onto a continuous
// piecewise-linear 0-30 scale. The bands join without jumps: 80% scores 26,
// 100% scores 30, 60% scores 20, 40% scores 11. A JD with no detectable
// required skills earns neutral partial credit.
func ScoreKeywordMatch(matched, required []string) domain.KeywordMatchScore {
	if len(required) == 0 {
		return domain.KeywordMatchScore{
			Score:    20,
			Behavior: "No required skills detected in JD. Neutral partial credit applied.",
		}
	}
	rate := float64(len(matched)) / float64(len(required))

	var score float64
	var behavior string
	switch {
	case rate >= 1.0:
		score = 30
		behavior = "Workday: Auto-forwarded to recruiter. Top 10% of applicants."
	case rate >= 0.80:
		score = 26 + (rate-0.80)/0.20*4
		behavior = "Workday: Auto-forwarded to recruiter. Top 10% of applicants."
	case rate >= 0.60:
		score = 20 + (rate-0.60)/0.20*6
		behavior = "Workday: Passes initial screen. Top 25% of applicants."
	case rate >= 0.40:
		score = 11 + (rate-0.40)/0.20*9
		behavior = "Workday: Reviewed only if insufficient qualified candidates. Top 50%."
	default:
		score = rate / 0.40 * 11
		behavior = "Workday: Likely auto-rejected. Bottom 50% of applicants."
	}

	return domain.KeywordMatchScore{
		Score:     round1(score),
		MatchRate: round1(rate * 100),
		Matched:   len(matched),
		Required:  len(required),
		Behavior:  behavior,
	}
}

// ScoreKeywordPlacement weights where matched skills physically appear:
// summary hits at 5 points (capped 15), experience at 3 (capped 12), skills
// list at 1 (capped 8), then scales the raw 35-point ceiling to 20.
func ScoreKeywordPlacement(resumeText string, matched []string) domain.PlacementScore {
	if len(matched) == 0 {
		return domain.PlacementScore{
			Behavior: "Greenhouse: No matched skills to analyze.",
		}
	}
	placement := diagnostics.CheckKeywordPlacement(resumeText, matched)

	weighted := math.Min(float64(placement.SummaryHits)*5, 15) +
		math.Min(float64(placement.ExperienceHits)*3, 12) +
		math.Min(float64(placement.SkillsHits), 8)
	score := round1(weighted * 20 / 35)

	var behavior string
	switch {
	case placement.SummaryHits >= 3 && placement.ExperienceHits >= 5:
		behavior = "Greenhouse: Top-tier placement. Keywords in Summary + Experience = highest ranking."
	case placement.SummaryHits >= 2 || placement.ExperienceHits >= 4:
		behavior = "Greenhouse: Good placement. Some keywords in high-value sections."
	case placement.SkillsHits >= 3:
		behavior = "Greenhouse: Weak placement. Keywords only in Skills section = lower ranking."
	default:
		behavior = "Greenhouse: Poor placement. Critical keywords missing from visible sections."
	}

	return domain.PlacementScore{
		Score:          score,
		SummaryHits:    placement.SummaryHits,
		ExperienceHits: placement.ExperienceHits,
		SkillsHits:     placement.SkillsHits,
		Behavior:       behavior,
	}
}

// ScoreExperience applies the years hard-gate emulation: a step function on
// the gap between required and reconciled resume years.
func ScoreExperience(resumeYears, requiredYears int) domain.ExperienceScore {
	if requiredYears == 0 {
		return domain.ExperienceScore{
			Score:         15,
			YearsDetected: resumeYears,
			Behavior:      "No experience requirement specified.",
		}
	}

	gap := requiredYears - resumeYears
	var score float64
	var behavior string
	switch {
	case gap <= 0:
		score = 15
		behavior = fmt.Sprintf("Workday: Experience verified (%d years >= %d required). Meets gate.", resumeYears, requiredYears)
	case gap == 1:
		score = 11
		behavior = fmt.Sprintf("Workday: Close match (%d years vs %d required). May pass with strong skills.", resumeYears, requiredYears)
	case gap == 2:
		score = 7
		behavior = fmt.Sprintf("Workday: Under-experienced (%d years vs %d required). Likely filtered out.", resumeYears, requiredYears)
	case gap == 3:
		score = 3
		behavior = fmt.Sprintf("Workday: Well under requirement (%d years vs %d required). Borderline auto-reject.", resumeYears, requiredYears)
	default:
		score = 0
		behavior = fmt.Sprintf("Workday: Significantly under-qualified (%d years vs %d required). Auto-rejected.", resumeYears, requiredYears)
	}

	return domain.ExperienceScore{
		Score:         score,
		YearsDetected: resumeYears,
		YearsRequired: requiredYears,
		Gap:           gap,
		Behavior:      behavior,
	}
}

// ScoreEducation is the binary degree gate: a hard requirement with no degree
// keyword present zeroes the component, anything else earns full credit.
func ScoreEducation(required domain.Degree, hasDegree bool) domain.EducationScore {
	s := domain.EducationScore{Required: required, HasDegree: hasDegree}
	if required.Required() && !hasDegree {
		s.Score = 0
		s.Behavior = fmt.Sprintf("Workday/iCIMS: Education gate FAILED (%s required, no degree detected). AUTO-REJECTED.", required)
		return s
	}
	s.Score = 10
	if required.Required() {
		s.Behavior = fmt.Sprintf("Workday/iCIMS: Education gate PASSED (%s required, degree detected).", required)
	} else {
		s.Behavior = "Workday/iCIMS: No education requirement. Full points."
	}
	return s
}

var formattingMetricRE = regexp.MustCompile(`(?i)\d+\s*%|\$\s*\d+|\d+\s*x\b|\d+\s*(users|clients|team|engineers|million|billion)`)

const minSubstantiveWords = 300

// ScoreFormatting grades parsability: section-heading coverage (4), contact
// completeness (3), quantified metrics (2), and document length (1).
func ScoreFormatting(resumeText string) domain.FormattingScore {
	low := strings.ToLower(resumeText)
	var score float64
	var issues []string

	sections := 0
	for _, s := range []string{"experience", "education", "skills"} {
		if strings.Contains(low, s) {
			sections++
		}
	}
	switch {
	case sections >= 3:
		score += 4
	case sections == 2:
		score += 2
		issues = append(issues, "Missing standard section heading")
	default:
		issues = append(issues, "Multiple standard sections missing")
	}

	contact := diagnostics.CheckContact(resumeText)
	switch {
	case contact.HasEmail && contact.HasPhone:
		score += 3
	case contact.HasEmail || contact.HasPhone:
		score += 1
		issues = append(issues, "Missing email or phone")
	default:
		issues = append(issues, "No contact information detected")
	}

	metrics := len(formattingMetricRE.FindAllString(resumeText, -1))
	switch {
	case metrics >= 5:
		score += 2
	case metrics >= 2:
		score += 1
		issues = append(issues, "Few quantified achievements")
	default:
		issues = append(issues, "No metrics or quantified results")
	}

	if textx.WordCount(resumeText) >= minSubstantiveWords {
		score += 1
	} else {
		issues = append(issues, "Resume is short; parsers may see it as thin")
	}

	var behavior string
	switch {
	case score >= 8:
		behavior = "iCIMS/Taleo: Clean formatting. Resume parsed successfully."
	case score >= 5:
		behavior = "iCIMS/Taleo: Some formatting issues. Partial data extracted."
	default:
		behavior = "iCIMS/Taleo: Poor formatting. Critical parsing errors likely."
	}

	return domain.FormattingScore{
		Score:        score,
		Issues:       issues,
		MetricsFound: metrics,
		Behavior:     behavior,
	}
}

// ScoreContactInfo awards email 2, phone 2, location 1, with a 0.5 LinkedIn
// bonus capped at the component ceiling.
func ScoreContactInfo(resumeText string) domain.ContactScore {
	contact := diagnostics.CheckContact(resumeText)

	var score float64
	if contact.HasEmail {
		score += 2
	}
	if contact.HasPhone {
		score += 2
	}
	if contact.HasLocation {
		score += 1
	}
	if contact.HasLinkedIn {
		score = math.Min(score+0.5, domain.CeilContactInfo)
	}

	var behavior string
	switch {
	case score >= 4:
		behavior = "All ATS: Complete contact info. Profile auto-populated successfully."
	case score >= 2:
		behavior = "All ATS: Partial contact info. May require manual entry."
	default:
		behavior = "All ATS: Critical contact info missing. Profile creation may fail."
	}

	return domain.ContactScore{
		Score:       score,
		HasEmail:    contact.HasEmail,
		HasPhone:    contact.HasPhone,
		HasLocation: contact.HasLocation,
		HasLinkedIn: contact.HasLinkedIn,
		Behavior:    behavior,
	}
}

var structureSections = map[string][]string{
	"experience": {"experience", "work experience", "professional experience", "employment"},
	"education":  {"education", "academic", "qualifications"},
	"skills":     {"skills", "technical skills", "competencies"},
}

var anyDateRE = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\b|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)|\d{1,2}/\d{4}`)

// ScoreDocumentStructure grades section organization (3/2/1 for 3/2/fewer of
// the standard sections) plus 2 for any date token.
func ScoreDocumentStructure(resumeText string) domain.StructureScore {
	low := strings.ToLower(resumeText)

	found := 0
	for _, variants := range structureSections {
		for _, v := range variants {
			if strings.Contains(low, v) {
				found++
				break
			}
		}
	}

	var score float64
	switch found {
	case 3:
		score = 3
	case 2:
		score = 2
	default:
		score = 1
	}

	hasDates := anyDateRE.MatchString(resumeText)
	if hasDates {
		score += 2
	}

	var behavior string
	switch {
	case score >= 4:
		behavior = "Taleo/iCIMS: Standard structure detected. Clean parsing expected."
	case score >= 2:
		behavior = "Taleo/iCIMS: Some structure issues. Partial data extraction likely."
	default:
		behavior = "Taleo/iCIMS: Poor structure. Parsing errors likely (data loss)."
	}

	return domain.StructureScore{
		Score:         score,
		SectionsFound: found,
		HasDates:      hasDates,
		Behavior:      behavior,
	}
}

// Six metric categories: percent, currency, multiplier, scale nouns, large
// numbers, "N+ years/months".
var impactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*%`),
	regexp.MustCompile(`(?i)\$\s*\d+[KMB]?`),
	regexp.MustCompile(`(?i)\d+\s*x\b`),
	regexp.MustCompile(`(?i)\d+\s*(users|clients|customers|team|engineers|people|reports)`),
	regexp.MustCompile(`(?i)\d+\s*(million|billion|thousand)`),
	regexp.MustCompile(`(?i)\d+\+\s*(years|months)`),
}

// ScoreQuantifiedImpact counts measurable-result mentions across the six
// metric categories and maps the count onto fixed tiers.
func ScoreQuantifiedImpact(resumeText string) domain.ImpactScore {
	count := 0
	for _, re := range impactPatterns {
		count += len(re.FindAllString(resumeText, -1))
	}

	var score float64
	var behavior string
	switch {
	case count >= 8:
		score = 5
		behavior = fmt.Sprintf("Excellent impact: %d quantified achievements detected. Workday AI will rank you highly; metrics like these move candidates to the top of the list.", count)
	case count >= 5:
		score = 4
		behavior = fmt.Sprintf("Good start: %d quantified achievements found. Add 1-2 more for even stronger Workday AI ranking.", count)
	case count >= 3:
		score = 2.5
		behavior = fmt.Sprintf("On the right track: %d metrics detected. Quick win: add 2-3 more numbers to your bullets (%%, team size, time saved) to boost your ranking significantly.", count)
	case count >= 1:
		score = 1
		behavior = fmt.Sprintf("Low impact signals: only %d metric(s) found. Adding numbers makes a huge difference; try 'Improved performance by 30%%' instead of 'Improved performance'.", count)
	default:
		score = 0
		behavior = "Missing metrics: no quantified results detected. Workday's AI heavily weights numbers. Add 3-5 achievements with %, $, or scale (e.g. 'Led team of 5', 'Reduced costs by $50K')."
	}

	return domain.ImpactScore{
		Score:        score,
		MetricsCount: count,
		Behavior:     behavior,
	}
}

// Language-register indicators for the quick three-level seniority read used
// by the seniority scorer. The full classifier in the seniority package does
// the audit; this heuristic mirrors how trackers skim for level language.
var (
	seniorIndicators = []string{
		"senior", "lead", "principal", "staff", "architect", "director",
		"led team", "managed team", "mentored", "architected", "owned",
	}
	entryIndicators = []string{
		"assisted", "supported", "helped", "learned", "intern",
		"entry", "junior", "associate",
	}
)

// ScoreSeniorityMatch compares the resume's language register against the
// JD's target level: equal earns 5, one level over 4, one under 2, a two
// level distance 1.
func ScoreSeniorityMatch(resumeText string, jdLevel domain.Level) domain.SeniorityScore {
	low := strings.ToLower(resumeText)

	seniorCount := 0
	for _, ind := range seniorIndicators {
		if strings.Contains(low, ind) {
			seniorCount++
		}
	}
	entryCount := 0
	for _, ind := range entryIndicators {
		if strings.Contains(low, ind) {
			entryCount++
		}
	}

	resumeLevel := domain.LevelMid
	switch {
	case seniorCount >= 3:
		resumeLevel = domain.LevelSenior
	case entryCount >= 2:
		resumeLevel = domain.LevelEntry
	}

	if jdLevel == "" {
		jdLevel = domain.LevelMid
	}
	// The quick read tops out at senior; a management JD is treated as
	// senior for distance purposes.
	effective := jdLevel
	if effective == domain.LevelManagement {
		effective = domain.LevelSenior
	}

	var score float64
	var behavior string
	diff := resumeLevel.Rank() - effective.Rank()
	switch {
	case diff == 0:
		score = 5
		behavior = fmt.Sprintf("Level match: Resume %s = JD %s. Appropriate experience level.", resumeLevel, effective)
	case diff == 1:
		score = 4
		behavior = fmt.Sprintf("Over-qualified: Resume %s > JD %s. May be filtered as overqualified.", resumeLevel, effective)
	case diff == -1:
		score = 2
		behavior = fmt.Sprintf("Under-qualified: Resume %s < JD %s. Language mismatch detected.", resumeLevel, effective)
	default:
		score = 1
		behavior = fmt.Sprintf("Significant mismatch: Resume %s vs JD %s. Likely filtered.", resumeLevel, effective)
	}

	return domain.SeniorityScore{
		Score:       score,
		ResumeLevel: resumeLevel,
		JDLevel:     effective,
		Behavior:    behavior,
	}
}
