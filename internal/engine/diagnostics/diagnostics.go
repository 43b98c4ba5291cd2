// Package diagnostics implements the stateless document checks that feed the
// audit report: contact details, section headings, chronology, education
// gating, quantified impact, keyword placement, title alignment and keyword
// stuffing. Every check is a pure function over raw text.
package diagnostics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/skills"
	"github.com/fairyhunter13/ats-resume-scorer/pkg/textx"
)

var (
	emailRE = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRE = regexp.MustCompile(`\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)

	// City, ST with a real two-letter US state code.
	stateLocRE = regexp.MustCompile(`[A-Z][a-zA-Z\s]{2,20},\s?(AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY|DC)\b`)
	cityRE     = regexp.MustCompile(`(?i)\b(?:New York|Los Angeles|San Francisco|Chicago|Houston|Seattle|Austin|Boston|Jersey City|New Jersey|Brooklyn|Manhattan|Charlotte|Atlanta|Dallas|Miami|Phoenix|Denver|Portland|Philadelphia|Minneapolis|Nashville|San Diego|Washington)\b`)

	// Full profile URLs plus the "in/handle" shorthand.
	linkedinRE = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|\bin/)[\w\-]{3,}`)

	// 19xx/20xx years only, so phone digits never count as dates.
	dateTokenRE = regexp.MustCompile(`(?i)(\d{1,2}/\d{2,4}|\b(?:19|20)\d{2}\b|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*\d{4})`)

	metricRE = regexp.MustCompile(`(?i)(\d+\s*%|\$\s*\d+|\d+\s*x\b|\d+\s*times|\d+\s*million|\d+\s*billion|\d+\s*users|\d+\s*clients|\d+\s*team|\d+\s*engineers|\d+\s*people|\d+\s*reports)`)

	eduRequiredRE  = regexp.MustCompile(`(?i)(required?|must\s+have|minimum).{0,40}(bachelor|master|degree|phd|mba)`)
	eduPreferredRE = regexp.MustCompile(`(?i)(preferred?|nice\s+to\s+have|desired?).{0,40}(bachelor|master|degree|phd|mba)`)
)

var degreeKeywords = []string{
	"bachelor", "b.s.", "b.a.", "bs ", "ba ", "master", "m.s.", "m.a.",
	"mba", "phd", "ph.d", "doctorate", "associate degree", "a.s.", "a.a.",
	"degree", "university", "college", "graduated",
}

func pass(msg string) domain.CheckResult {
	return domain.CheckResult{Status: domain.CheckPass, Message: msg}
}

func fail(msg string) domain.CheckResult {
	return domain.CheckResult{Status: domain.CheckFail, Message: msg}
}

// ContactReport carries the three contact sub-checks plus the raw signals the
// contact scorer reuses.
type ContactReport struct {
	Location domain.CheckResult
	Channels domain.CheckResult
	LinkedIn domain.CheckResult

	HasEmail    bool
	HasPhone    bool
	HasLocation bool
	HasLinkedIn bool
}

// Overall is a pass when a majority of the sub-checks pass.
func (r ContactReport) Overall() domain.CheckStatus {
	passed := 0
	for _, c := range []domain.CheckResult{r.Location, r.Channels, r.LinkedIn} {
		if c.Passed() {
			passed++
		}
	}
	if passed >= 2 {
		return domain.CheckPass
	}
	return domain.CheckFail
}

// CheckContact detects email, phone, location and a LinkedIn reference.
// Location is either "City, ST" with a valid state code anywhere in the
// document, or a known major city name within the first five lines.
func CheckContact(resumeText string) ContactReport {
	var r ContactReport
	r.HasEmail = emailRE.MatchString(resumeText)
	r.HasPhone = phoneRE.MatchString(resumeText)

	lines := textx.Lines(resumeText)
	if len(lines) > 5 {
		lines = lines[:5]
	}
	header := strings.Join(lines, "\n")
	r.HasLocation = stateLocRE.MatchString(resumeText) || cityRE.MatchString(header)
	r.HasLinkedIn = linkedinRE.MatchString(resumeText)

	if r.HasLocation {
		r.Location = pass("Geo-Searchability Verified: Location found. Workday and iCIMS prioritise regional candidates, which prevents your profile from being filtered out in location-based queries.")
	} else {
		r.Location = fail("Searchability Risk: No City/State detected. Workday, iCIMS, and Taleo all run location filters during initial screening; missing location can result in automatic exclusion from regional searches.")
	}
	if r.HasEmail && r.HasPhone {
		r.Channels = pass("Contact Complete: Email and phone detected. ATS systems like Greenhouse and Lever use these to auto-populate candidate profiles.")
	} else {
		r.Channels = fail("Incomplete Contact: Missing email or phone. ATS systems like Greenhouse and Lever require both for candidate profile creation.")
	}
	if r.HasLinkedIn {
		r.LinkedIn = pass("LinkedIn Profile Detected: SmartRecruiters and Lever cross-reference LinkedIn profiles for candidate validation and enrichment.")
	} else {
		r.LinkedIn = fail("LinkedIn Missing: SmartRecruiters and Lever recruiters routinely cross-check LinkedIn. Add your LinkedIn URL to enable profile enrichment and increase credibility.")
	}
	return r
}

// HeadingsReport is the section-heading check result plus which categories
// were found, reused by the structure scorer.
type HeadingsReport struct {
	Result        domain.CheckResult
	Found         map[string]bool
	SectionsFound int
}

// CheckSectionHeadings verifies the four canonical section categories are
// present and that no creative heading phrases are used.
func CheckSectionHeadings(resumeText string) HeadingsReport {
	low := strings.ToLower(resumeText)

	found := make(map[string]bool, len(standardHeadings))
	count := 0
	var missing []string
	for _, category := range []string{"summary", "experience", "education", "skills"} {
		ok := containsAny(low, standardHeadings[category])
		found[category] = ok
		if ok {
			count++
		} else {
			missing = append(missing, category)
		}
	}
	hasNonstandard := containsAny(low, nonstandardHeadings)

	r := HeadingsReport{Found: found, SectionsFound: count}
	switch {
	case count == len(standardHeadings) && !hasNonstandard:
		r.Result = pass("Standard Structure: All major sections use ATS-recognised headings. Workday and Taleo can parse your resume without errors.")
	case count < len(standardHeadings):
		r.Result = fail(fmt.Sprintf(
			"Missing Standard Headings: %s section(s) not found. Workday and Taleo require standard headings like 'Experience', 'Education', 'Skills', 'Summary' to parse your resume correctly.",
			titleCase(strings.Join(missing, ", "))))
	default:
		r.Result = fail("Non-Standard Headings Detected: Creative headings like 'Career Highlights' or 'My Journey' confuse Workday and Taleo parsers. Use standard ATS-compliant section names instead.")
	}
	return r
}

// DatesReport is the chronology check result plus the distinct-token count.
type DatesReport struct {
	Result domain.CheckResult
	Count  int
}

// CheckDates counts distinct recognizable date tokens; two or more imply a
// parsable chronology.
func CheckDates(resumeText string) DatesReport {
	seen := map[string]struct{}{}
	for _, tok := range dateTokenRE.FindAllString(resumeText, -1) {
		seen[strings.ToLower(strings.TrimSpace(tok))] = struct{}{}
	}
	r := DatesReport{Count: len(seen)}
	if r.Count >= 2 {
		r.Result = pass("Timeline Parsed: Chronological dates detected. Workday and Taleo use dates to auto-calculate total years of experience; accurate dates prevent mis-scoring of your seniority level.")
	} else {
		r.Result = fail("Date Format Issue: Insufficient or inconsistent dates. Workday and Taleo require chronological dates (e.g. 'Jan 2020 - Dec 2022') to parse your work history correctly.")
	}
	return r
}

// EducationReport is the education gate result plus the classification facts
// the education scorer reuses.
type EducationReport struct {
	Result    domain.CheckResult
	HasDegree bool
	Required  bool
	Preferred bool
}

// CheckEducation classifies the JD's degree requirement as hard-required or
// preferred and scans the resume for degree keywords. Required-but-absent is
// the hard gate.
func CheckEducation(resumeText, jdText string) EducationReport {
	resLow := strings.ToLower(resumeText)
	jdLow := strings.ToLower(jdText)

	r := EducationReport{
		HasDegree: containsAny(resLow, degreeKeywords),
		Required:  eduRequiredRE.MatchString(jdLow),
		Preferred: eduPreferredRE.MatchString(jdLow),
	}
	switch {
	case r.Required && !r.HasDegree:
		r.Result = fail("Education Hard Gate Risk: This role requires a degree, but none was detected in your resume. Taleo and Workday auto-reject candidates without required credentials, so ensure your degree is clearly listed.")
	case r.Required:
		r.Result = pass("Education Hard Gate Cleared: Degree detected and the role requires one. This passes the binary education filter in Taleo and Workday.")
	case r.Preferred && r.HasDegree:
		r.Result = pass("Education Bonus: Degree detected and preferred by the JD. This adds positive weight in SmartRecruiters and iCIMS scoring.")
	case !r.HasDegree:
		r.Result = fail("Education Section Missing: No degree or education credentials detected. Even for senior roles, many ATS systems use education as a secondary verification filter. Add your education section.")
	default:
		r.Result = pass("Education Verified: Education credentials found. Satisfies basic HR compliance checks across all major ATS platforms.")
	}
	return r
}

// ImpactReport is the quantified-impact check result plus the metric count.
type ImpactReport struct {
	Result domain.CheckResult
	Count  int
}

// CheckQuantifiedImpact counts percentage, currency, multiplier and scale
// metrics; three or more is a pass.
func CheckQuantifiedImpact(resumeText string) ImpactReport {
	r := ImpactReport{Count: len(metricRE.FindAllString(resumeText, -1))}
	if r.Count >= 3 {
		r.Result = pass(fmt.Sprintf(
			"Impact Signals Detected: %d quantified achievements found (%%, $, or numeric results). SmartRecruiters and Workday AI scoring weighs measurable outcomes heavily, which significantly boosts your rank.", r.Count))
	} else {
		r.Result = fail(fmt.Sprintf(
			"Weak Impact Signals: Only %d measurable result(s) found. Add metrics to your bullet points (e.g. 'Reduced load time by 40%%', 'Managed $2M budget'); Workday and SmartRecruiters AI scoring ranks quantified resumes 2-3 positions higher.", r.Count))
	}
	return r
}

// PlacementReport carries where the given skills physically appear in the
// resume, reused by the placement scorer.
type PlacementReport struct {
	Result         domain.CheckResult
	SummaryHits    int
	ExperienceHits int
	SkillsHits     int
}

// CheckKeywordPlacement counts how many of the given skills appear in the
// summary, experience and skills sections. A skill counts when either its
// literal lowercased form or its canonical form occurs in the section text.
// Good placement is at least 3 skills in the summary or at least 5 in the
// experience section.
func CheckKeywordPlacement(resumeText string, skillList []string) PlacementReport {
	sections := SplitSections(resumeText)

	r := PlacementReport{
		SummaryHits:    countInSection(sections.Summary, skillList),
		ExperienceHits: countInSection(sections.Experience, skillList),
		SkillsHits:     countInSection(sections.Skills, skillList),
	}
	if r.SummaryHits >= 3 || r.ExperienceHits >= 5 {
		r.Result = pass(fmt.Sprintf(
			"Keyword Placement Strong: %d key skill(s) in your summary and %d in your experience section. ATS systems weight keywords in Summary and Experience 2-3x higher than Skills lists.",
			r.SummaryHits, r.ExperienceHits))
	} else {
		r.Result = fail("Keyword Placement Weak: Critical JD keywords appear only in your Skills section or not at all. Move key skills into your Summary and Experience bullet points; this is the single highest-impact score improvement.")
	}
	return r
}

func countInSection(sectionText string, skillList []string) int {
	if sectionText == "" {
		return 0
	}
	hits := 0
	for _, skill := range skillList {
		low := strings.ToLower(skill)
		if strings.Contains(sectionText, low) || strings.Contains(sectionText, skills.Normalize(skill)) {
			hits++
		}
	}
	return hits
}

var (
	labelOnlyRE       = regexp.MustCompile(`(?i)^(job\s*description|job\s*title|role|position|title|duties|about\s*the\s*role|about\s*us|overview|description|duties\s*&\s*responsibilities|responsibilities)\s*:?\s*$`)
	labelPrefixRE     = regexp.MustCompile(`(?i)^(job\s*title|role|position|title)\s*:\s*`)
	bodyTitleRE       = regexp.MustCompile(`(?i)(?:of an?|for an?|as an?|hiring an?|seeking an?)\s+([a-zA-Z][a-zA-Z\s/]+(?:engineer|developer|manager|analyst|architect|designer|specialist|lead|director|scientist|consultant))`)
	standaloneTitleRE = regexp.MustCompile(`(?i)\b((?:senior|junior|lead|staff|principal|qa|embedded|software|systems?|hardware|firmware|automation)\s+){0,3}(?:engineer|developer|manager|analyst|architect|designer|scientist)\b`)
	nonAlnumRE        = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// titleCase capitalizes the first letter of each comma-separated word list
// entry for display in audit messages.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var titleSignals = []string{
	"engineer", "developer", "manager", "analyst", "designer", "architect",
	"director", "lead", "specialist", "consultant", "coordinator", "officer",
	"associate", "scientist", "administrator", "executive", "head", "vp",
	"product", "software", "data", "senior", "junior", "staff", "principal",
}

// TitleReport is the title-alignment result plus the extracted role title.
type TitleReport struct {
	Result domain.CheckResult
	Title  string
}

// CheckTitleAlignment extracts the most likely role title from the JD and
// checks whether the resume reflects it. knownTitle, when non-empty, takes
// precedence over the heuristic extraction (the extraction collaborator
// usually knows the title). Alignment requires all but one of the title's
// significant words to appear in the resume.
func CheckTitleAlignment(resumeText, jdText, knownTitle string) TitleReport {
	title := strings.TrimSpace(knownTitle)
	if title == "" {
		title = extractTitle(jdText)
	}

	jdCore := strings.TrimSpace(strings.ToLower(nonAlnumRE.ReplaceAllString(title, "")))
	resCore := nonAlnumRE.ReplaceAllString(strings.ToLower(resumeText), "")

	titleWords := map[string]struct{}{}
	for _, w := range strings.Fields(jdCore) {
		if len(w) > 2 {
			titleWords[w] = struct{}{}
		}
	}
	resWords := map[string]struct{}{}
	for _, w := range strings.Fields(resCore) {
		resWords[w] = struct{}{}
	}
	overlap := 0
	for w := range titleWords {
		if _, ok := resWords[w]; ok {
			overlap++
		}
	}
	need := len(titleWords) - 1
	if need < 1 {
		need = 1
	}
	matched := len(titleWords) > 0 && overlap >= need

	r := TitleReport{Title: title}
	if matched {
		r.Result = pass(fmt.Sprintf(
			"Title Aligned: Your resume reflects the target role '%s'. Greenhouse and Lever rank candidates higher when the profile title matches the JD title exactly.", title))
	} else {
		r.Result = fail(fmt.Sprintf(
			"Title Gap: The role title '%s' isn't explicitly reflected in your resume. Add it to your summary or headline; Greenhouse and Lever use title matching as a primary relevance signal.", title))
	}
	return r
}

// extractTitle runs the three-pass fallback: a title-looking line near the
// top of the JD, a "seeking a <Title>" body pattern, then a standalone title
// pattern in the first 500 characters.
func extractTitle(jdText string) string {
	var jdLines []string
	for _, l := range textx.Lines(jdText) {
		if t := strings.TrimSpace(l); t != "" {
			jdLines = append(jdLines, t)
		}
	}
	limit := len(jdLines)
	if limit > 8 {
		limit = 8
	}
	for _, line := range jdLines[:limit] {
		if labelOnlyRE.MatchString(line) {
			continue
		}
		stripped := strings.TrimSpace(labelPrefixRE.ReplaceAllString(line, ""))
		if len(strings.Fields(stripped)) <= 8 && containsAny(strings.ToLower(stripped), titleSignals) {
			return stripped
		}
	}

	if m := bodyTitleRE.FindStringSubmatch(jdText); m != nil {
		return strings.TrimSpace(m[1])
	}

	head := jdText
	if len(head) > 500 {
		head = head[:500]
	}
	if m := standaloneTitleRE.FindString(head); m != "" {
		return strings.TrimSpace(m)
	}
	return "Target Role"
}

// CheckKeywordStuffing reports over-optimisation given the skills already
// flagged by the stuffing detector.
func CheckKeywordStuffing(stuffed []string) domain.CheckResult {
	if len(stuffed) > 0 {
		return fail(fmt.Sprintf(
			"Over-Optimisation Detected: '%s' and %d other skill(s) appear suspiciously often. Modern ATS platforms (SmartRecruiters, Workday) use NLP to detect keyword stuffing and penalise or flag affected resumes.",
			stuffed[0], len(stuffed)-1))
	}
	return pass("Natural Keyword Density: No keyword stuffing detected. Your resume reads naturally, which passes NLP-based authenticity checks in SmartRecruiters and Workday AI scoring.")
}
