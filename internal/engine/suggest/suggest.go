// Package suggest turns a score breakdown into a short, priority-ranked list
// of concrete resume fixes. The rules form a deterministic cascade: each
// fires independently against the breakdown, results sort by priority, and
// the list caps at five entries.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// MaxSuggestions bounds the returned list.
const MaxSuggestions = 5

// Generate evaluates the rule cascade against the breakdown. When no rule
// fires it falls back to the generic list so callers always have something to
// show.
func Generate(b domain.Breakdown, ex domain.Extraction) []domain.Suggestion {
	var out []domain.Suggestion

	if b.Education.Score == 0 {
		required := string(b.Education.Required)
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityCritical,
			Category:    "hard_gate",
			Area:        "Education Section",
			Issue:       fmt.Sprintf("JD requires %s degree but none detected", required),
			Fix:         fmt.Sprintf("Add an Education section: '%s of [Your Field], [University Name], [Graduation Year]'. Place it after Experience.", capitalize(required)),
			Rationale:   "Workday and iCIMS use education as a hard gate. A required degree missing from the resume means auto-rejection before any human sees the application.",
			ScoreImpact: "+10 points (passes critical gate)",
		})
	}

	missing := ex.MissingSkills
	switch {
	case b.KeywordMatch.MatchRate < 40:
		top := firstN(missing, 5)
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityCritical,
			Category:    "keyword_match",
			Area:        "Skills Coverage",
			Issue:       fmt.Sprintf("Only %g%% of required skills match (need 40%%+ minimum)", b.KeywordMatch.MatchRate),
			Fix:         fmt.Sprintf("Add these missing skills: %s. Put them in your Skills section and weave them into 2-3 experience bullets showing how you used them.", strings.Join(top, ", ")),
			Rationale:   "Workday auto-rejects candidates below 40% keyword match, and Taleo ranks purely by keyword count. Missing skills make the resume invisible to recruiters.",
			ScoreImpact: "+10-20 points (moves from auto-reject to qualified tier)",
		})
	case b.KeywordMatch.MatchRate < 60:
		top := firstN(missing, 3)
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityHigh,
			Category:    "keyword_match",
			Area:        "Skills Coverage",
			Issue:       fmt.Sprintf("%g%% match; need 60%%+ to be 'Qualified' in Workday", b.KeywordMatch.MatchRate),
			Fix:         fmt.Sprintf("Add %d missing critical skills: %s", len(top), strings.Join(top, ", ")),
			Rationale:   "Workday tiers candidates at 80%/60%/40% match. Moving above 60% upgrades you a full tier.",
			ScoreImpact: "+5-10 points (tier upgrade in Workday)",
		})
	}

	matched := firstN(ex.MatchedSkills, 3)
	if b.KeywordPlacement.SummaryHits < 2 {
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityHigh,
			Category:    "keyword_placement",
			Area:        "Professional Summary",
			Issue:       fmt.Sprintf("Only %d keyword(s) in your Summary (need 3+)", b.KeywordPlacement.SummaryHits),
			Fix:         fmt.Sprintf("Rewrite your Professional Summary to include: %s. Example: 'Senior Engineer with 5+ years expertise in %s, delivering scalable solutions...'", strings.Join(matched, ", "), exampleSkill(matched)),
			Rationale:   "Greenhouse weights Summary keywords 5x higher than Skills lists. The summary is the first thing recruiters and trackers read.",
			ScoreImpact: "+8-12 points (significant Greenhouse ranking boost)",
		})
	}
	if b.KeywordPlacement.ExperienceHits < 4 {
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityHigh,
			Category:    "keyword_placement",
			Area:        "Experience Bullets",
			Issue:       fmt.Sprintf("Only %d keyword(s) in your Experience section (need 5+)", b.KeywordPlacement.ExperienceHits),
			Fix:         fmt.Sprintf("Rewrite 3-4 experience bullets to show usage, not claims. Example: 'Built API using %s that processed 10K requests/day'", exampleSkill(matched)),
			Rationale:   "Greenhouse weights Experience keywords 3x higher than Skills. Keywords in bullets are proof you actually used the technology.",
			ScoreImpact: "+5-8 points (Greenhouse ranking improvement)",
		})
	}

	if b.Experience.Score < 10 {
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityHigh,
			Category:    "experience",
			Area:        "Experience Timeline",
			Issue:       fmt.Sprintf("You show %d years but the JD requires %d (%d year gap)", b.Experience.YearsDetected, b.Experience.YearsRequired, b.Experience.Gap),
			Fix:         "1) Verify your date ranges are correct and visible (format: 'Jan 2020 - Present'). 2) Include all relevant experience; internships, freelance and side projects count. 3) If the gap is real, emphasize depth: 'Led team of 5', 'Managed $2M budget', 'Owned critical infrastructure'.",
			Rationale:   "Workday calculates experience from date ranges. Short by 2+ years usually means auto-filtering; within 1 year a recruiter may overlook it if skills are strong.",
			ScoreImpact: "+5-10 points (reduces experience penalty)",
		})
	}

	if b.Formatting.Score < 7 {
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityMedium,
			Category:    "formatting",
			Area:        "Document Structure",
			Issue:       fmt.Sprintf("Formatting issues detected: %s", strings.Join(firstN(b.Formatting.Issues, 2), ", ")),
			Fix:         "1) Use standard section headings: PROFESSIONAL EXPERIENCE, EDUCATION, SKILLS. 2) Include phone number and email at the top. 3) Add 3-5 quantified achievements with numbers (%, $, team size).",
			Rationale:   "iCIMS and Taleo have weak parsers. Non-standard formats fail data extraction, leaving an empty-looking profile in the recruiter's system.",
			ScoreImpact: "+3-5 points (ensures data is actually read)",
		})
	}

	if b.Formatting.MetricsFound < 3 {
		out = append(out, domain.Suggestion{
			Priority:    domain.PriorityMedium,
			Category:    "impact",
			Area:        "Quantified Achievements",
			Issue:       fmt.Sprintf("Only %d quantified result(s) (need 5+)", b.Formatting.MetricsFound),
			Fix:         "Add numbers to 5 bullets. Formula: [Action Verb] + [What] + [How/Tool] + [Measurable Result]. Example: 'Improved API latency by 40% using Redis caching'.",
			Rationale:   "Workday's AI scoring heavily weights quantified achievements. Resumes with metrics rank 2-3 positions higher than identical ones without.",
			ScoreImpact: "+2-5 points (AI scoring boost across all systems)",
		})
	}

	if len(out) == 0 {
		return Fallback()
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// Fallback is the generic list used when the rule cascade has nothing to say
// or the rewrite collaborator is unavailable.
func Fallback() []domain.Suggestion {
	return []domain.Suggestion{
		{
			Priority:    domain.PriorityHigh,
			Category:    "keyword_match",
			Area:        "Skills & Keywords",
			Issue:       "Resume may not match job requirements closely enough",
			Fix:         "Mirror the exact language from the job description. If they say 'project management', use 'project management' (not 'managed projects').",
			Rationale:   "Most ATS systems do literal keyword matching. Synonyms don't count; exact phrase matching is critical.",
			ScoreImpact: "+10-15 points",
		},
		{
			Priority:    domain.PriorityHigh,
			Category:    "keyword_placement",
			Area:        "Professional Summary",
			Issue:       "Keywords likely only in Skills section",
			Fix:         "Add 3-5 critical skills to your Professional Summary. Keep it keyword-rich but natural: 'Senior [Title] with expertise in [skill 1], [skill 2], and [skill 3]...'",
			Rationale:   "Summary keywords are weighted 5x higher than Skills lists in Greenhouse and Lever.",
			ScoreImpact: "+8-12 points",
		},
		{
			Priority:    domain.PriorityMedium,
			Category:    "impact",
			Area:        "Experience Bullets",
			Issue:       "Likely missing quantified achievements",
			Fix:         "Add numbers to 5+ bullets: percentages, dollar amounts, time saved, team size, users served. 'Improved performance by 40%' beats 'Improved performance'.",
			Rationale:   "Workday's AI gives higher scores to resumes with metrics, and recruiters spend twice as long on them.",
			ScoreImpact: "+5-8 points",
		},
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func exampleSkill(matched []string) string {
	if len(matched) > 0 {
		return matched[0]
	}
	return "the top required skill"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
