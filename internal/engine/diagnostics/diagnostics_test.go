package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/engine/diagnostics"
)

const sampleResume = `Jane Doe
Seattle, WA | jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe

Professional Summary
Senior QA engineer with python, selenium and docker experience.

Professional Experience
Acme Corp, Jan 2020 - Dec 2023
- Built selenium suites in python, cut regression time by 40%
- Ran docker based CI for a team of 6 engineers

Skills
python, selenium, docker, kubernetes

Education
B.S. Computer Science, University of Washington
`

func TestCheckContact_AllSignals(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckContact(sampleResume)
	assert.True(t, r.HasEmail)
	assert.True(t, r.HasPhone)
	assert.True(t, r.HasLocation)
	assert.True(t, r.HasLinkedIn)
	assert.Equal(t, domain.CheckPass, r.Location.Status)
	assert.Equal(t, domain.CheckPass, r.Channels.Status)
	assert.Equal(t, domain.CheckPass, r.LinkedIn.Status)
	assert.Equal(t, domain.CheckPass, r.Overall())
}

func TestCheckContact_Missing(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckContact("No identifying details here at all.")
	assert.Equal(t, domain.CheckFail, r.Channels.Status)
	assert.Equal(t, domain.CheckFail, r.Location.Status)
	assert.Equal(t, domain.CheckFail, r.Overall())
}

func TestCheckContact_LinkedInShorthand(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckContact("Jane Doe - in/janedoe")
	assert.True(t, r.HasLinkedIn)
}

func TestCheckContact_CityInHeaderOnly(t *testing.T) {
	t.Parallel()
	// City name appears past the header region, so it does not count.
	body := "Jane Doe\n\n\n\n\n\nRelocated from Seattle last year."
	r := diagnostics.CheckContact(body)
	assert.False(t, r.HasLocation)

	header := "Jane Doe\nSeattle\n"
	assert.True(t, diagnostics.CheckContact(header).HasLocation)
}

func TestCheckSectionHeadings(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckSectionHeadings(sampleResume)
	assert.Equal(t, domain.CheckPass, r.Result.Status)
	assert.Equal(t, 4, r.SectionsFound)

	missing := diagnostics.CheckSectionHeadings("Just some prose with no headings.")
	assert.Equal(t, domain.CheckFail, missing.Result.Status)
	assert.Contains(t, missing.Result.Message, "Missing Standard Headings")
}

func TestCheckSectionHeadings_CreativeHeadings(t *testing.T) {
	t.Parallel()
	text := sampleResume + "\nMy Journey\nIt all began long ago."
	r := diagnostics.CheckSectionHeadings(text)
	assert.Equal(t, domain.CheckFail, r.Result.Status)
	assert.Contains(t, r.Result.Message, "Non-Standard Headings")
}

func TestCheckDates(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckDates(sampleResume)
	assert.Equal(t, domain.CheckPass, r.Result.Status)
	assert.GreaterOrEqual(t, r.Count, 2)

	// A bare phone number must not count as dates.
	none := diagnostics.CheckDates("Call 555-123-4567 anytime.")
	assert.Equal(t, domain.CheckFail, none.Result.Status)
}

func TestCheckEducation_HardGate(t *testing.T) {
	t.Parallel()
	jd := "A bachelor degree is required for this position."

	r := diagnostics.CheckEducation(sampleResume, jd)
	assert.True(t, r.Required)
	assert.True(t, r.HasDegree)
	assert.Equal(t, domain.CheckPass, r.Result.Status)

	gate := diagnostics.CheckEducation("Self-taught tinkerer.", jd)
	assert.Equal(t, domain.CheckFail, gate.Result.Status)
	assert.Contains(t, gate.Result.Message, "Hard Gate")
}

func TestCheckEducation_NotRequired(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckEducation(sampleResume, "No formal requirements.")
	assert.False(t, r.Required)
	assert.Equal(t, domain.CheckPass, r.Result.Status)
}

func TestCheckQuantifiedImpact(t *testing.T) {
	t.Parallel()
	text := "Cut costs by 30%, managed $2M budget, grew to 40 users."
	r := diagnostics.CheckQuantifiedImpact(text)
	assert.Equal(t, domain.CheckPass, r.Result.Status)
	assert.Equal(t, 3, r.Count)

	weak := diagnostics.CheckQuantifiedImpact("Did many things well.")
	assert.Equal(t, domain.CheckFail, weak.Result.Status)
	assert.Equal(t, 0, weak.Count)
}

func TestSplitSections(t *testing.T) {
	t.Parallel()
	s := diagnostics.SplitSections(sampleResume)
	assert.Contains(t, s.Summary, "senior qa engineer")
	assert.NotContains(t, s.Summary, "acme corp")
	assert.Contains(t, s.Experience, "acme corp")
	assert.NotContains(t, s.Experience, "university of washington")
	assert.Contains(t, s.Skills, "kubernetes")
}

func TestCheckKeywordPlacement(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckKeywordPlacement(sampleResume, []string{"python", "selenium", "docker", "kubernetes"})
	assert.Equal(t, 3, r.SummaryHits)
	// The experience span runs until the education heading, so it also
	// covers the skills list in between.
	assert.Equal(t, 4, r.ExperienceHits)
	assert.Equal(t, 4, r.SkillsHits)
	assert.Equal(t, domain.CheckPass, r.Result.Status)
}

func TestCheckKeywordPlacement_SkillsOnly(t *testing.T) {
	t.Parallel()
	resume := "Summary\nGeneralist.\n\nExperience\nVaried roles.\n\nSkills\npython, selenium, docker\n"
	r := diagnostics.CheckKeywordPlacement(resume, []string{"python", "selenium", "docker"})
	assert.Equal(t, domain.CheckFail, r.Result.Status)
}

func TestCheckTitleAlignment_FirstLines(t *testing.T) {
	t.Parallel()
	jd := "Senior QA Engineer\nWe need someone great."
	r := diagnostics.CheckTitleAlignment(sampleResume, jd, "")
	assert.Equal(t, "Senior QA Engineer", r.Title)
	assert.Equal(t, domain.CheckPass, r.Result.Status)
}

func TestCheckTitleAlignment_LabelPrefixStripped(t *testing.T) {
	t.Parallel()
	jd := "Job Title: Senior QA Engineer\nDetails follow."
	r := diagnostics.CheckTitleAlignment(sampleResume, jd, "")
	assert.Equal(t, "Senior QA Engineer", r.Title)
}

func TestCheckTitleAlignment_BodyPattern(t *testing.T) {
	t.Parallel()
	jd := "About us\nWe are hiring!\nWe are in search of a teammate, seeking a Software Engineer to join us."
	r := diagnostics.CheckTitleAlignment("Software engineer with ten years of practice.", jd, "")
	assert.Contains(t, strings.ToLower(r.Title), "software engineer")
	assert.Equal(t, domain.CheckPass, r.Result.Status)
}

func TestCheckTitleAlignment_KnownTitleWins(t *testing.T) {
	t.Parallel()
	jd := "Senior QA Engineer\nDetails."
	r := diagnostics.CheckTitleAlignment(sampleResume, jd, "Staff Test Architect")
	assert.Equal(t, "Staff Test Architect", r.Title)
}

func TestCheckTitleAlignment_Fallback(t *testing.T) {
	t.Parallel()
	r := diagnostics.CheckTitleAlignment("Plain resume text.", "Nothing resembling a role here.", "")
	assert.Equal(t, "Target Role", r.Title)
	assert.Equal(t, domain.CheckFail, r.Result.Status)
}

func TestCheckKeywordStuffing(t *testing.T) {
	t.Parallel()
	flagged := diagnostics.CheckKeywordStuffing([]string{"python", "docker"})
	assert.Equal(t, domain.CheckFail, flagged.Status)
	assert.Contains(t, flagged.Message, "'python'")

	clean := diagnostics.CheckKeywordStuffing(nil)
	assert.Equal(t, domain.CheckPass, clean.Status)
}
