package openrouter

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

const extractSystemPrompt = `You are an expert ATS analyst and technical recruiter with deep knowledge across ALL industries and domains including software, embedded systems, automotive, aerospace, finance, healthcare, and marketing.

Analyse the job description and resume provided by the user. Return ONLY valid JSON with no explanation, no markdown, no code blocks.

Return exactly this structure:
{
  "job_title": "exact job title extracted from JD",
  "seniority_level": "entry|mid|senior|management",
  "required_years": 0,
  "education_required": "none|associate|bachelor|master|phd",
  "education_preferred": "none|associate|bachelor|master|phd",
  "jd_required_skills": ["skill1", "skill2"],
  "jd_preferred_skills": ["skill1", "skill2"],
  "jd_responsibilities": ["resp1", "resp2"],
  "resume_skills": ["skill1", "skill2"],
  "matched_skills": ["skills present in BOTH documents, using the JD's version of the name"],
  "missing_skills": ["skills required by JD but NOT found in resume"],
  "bonus_skills": ["skills in resume that are preferred or nice-to-have in JD"],
  "extra_skills": ["skills in resume not mentioned in JD"]
}

Skill extraction rules:
- Extract ALL skills: hard skills, tools, technologies, frameworks, protocols, methodologies, domain terms, certifications
- Be domain-aware: for embedded roles extract protocols (CAN, J1939, SPI, I2C), testing methods (HIL, SIL), OS (RTOS, Linux), standards (MISRA, AUTOSAR)
- For software roles: languages, frameworks, cloud, DevOps, databases, testing
- Treat semantic equivalents as matches: "HIL bench setup/troubleshooting" equals "HIL testing" equals "hardware in the loop"
- Treat synonym variants as matches: "C++" equals "C plus plus", "Microsoft Azure" equals "Azure", "GIT" equals "Git"
- Use lowercase for all skill names
- Return [] never null for any array

CRITICAL rule for required_years, extract the MINIMUM from any range:
- "3-6 years" means required_years: 3 (NOT 6)
- "5-8 years" means required_years: 5 (NOT 8)
- "3+ years" means required_years: 3
- "minimum 5 years" means required_years: 5
- If no years mentioned, required_years: 0
The minimum is used for hard gate filtering in ATS systems.`

func extractUserPrompt(jdText, resumeText string) string {
	return fmt.Sprintf("JOB DESCRIPTION:\n%s\n\nRESUME:\n%s", jdText, resumeText)
}

const suggestSystemPrompt = `You are an expert resume writer and ATS specialist. Your job is to rewrite parts of the candidate's resume so it scores higher when analysed against the job description.

Generate exactly 5 suggestions. Each suggestion must contain a READY-TO-USE rewrite, not advice: the actual new text the candidate can copy directly into their resume.

Return ONLY valid JSON, no explanation:
{
  "suggestions": [
    {
      "area": "exact section (Professional Summary | Skills Section | Experience - [Company Name] | Education)",
      "priority": "high|medium|low",
      "issue": "one sentence: what specific gap this fixes",
      "original": "the exact current text from their resume being replaced (or 'N/A - new addition')",
      "fix": "the complete replacement text, ready to copy-paste into the resume as-is",
      "score_impact": "which score component this improves and by roughly how much (e.g. +5-8pts Keyword Match)"
    }
  ]
}

STRICT RULES for the "fix" field:
1. SUMMARY rewrite: Write a complete 2-3 sentence summary that naturally includes the missing skills and mirrors JD language
2. SKILLS addition: List the exact skill names from the JD that are missing, using the JD's exact terminology
3. EXPERIENCE bullet rewrites: Rewrite 2-3 actual bullets from their resume, adding missing keywords and metrics
4. Keep each fix under 80 words
5. Never say "add X here" or "consider adding"; write the actual content
6. Use exact JD terminology: if the JD says "CI/CD pipelines" write "CI/CD pipelines" not "deployment automation"
7. If a skill is missing from their resume, show how to naturally work it into existing experience context`

func suggestUserPrompt(resumeText, jdText string, ex domain.Extraction, score float64, weakAreas []string) string {
	missing := joinOr(ex.MissingSkills, 12, "none")
	matched := joinOr(ex.MatchedSkills, 10, "none")
	responsibilities := "none"
	if len(ex.JDResponsibilities) > 0 {
		rs := ex.JDResponsibilities
		if len(rs) > 5 {
			rs = rs[:5]
		}
		responsibilities = strings.Join(rs, "; ")
	}
	title := ex.JobTitle
	if title == "" {
		title = "target role"
	}
	weak := "keyword placement"
	if len(weakAreas) > 0 {
		weak = strings.Join(weakAreas, ", ")
	}
	return fmt.Sprintf(
		"ROLE APPLIED FOR: %s\nCURRENT ATS SCORE: %.1f/100\nMISSING REQUIRED SKILLS: %s\nMATCHED SKILLS: %s\nJD RESPONSIBILITIES: %s\nWEAK AREAS: %s\n\nACTUAL RESUME TEXT:\n%s\n\nJOB DESCRIPTION:\n%s",
		title, score, missing, matched, responsibilities, weak, resumeText, jdText)
}

func joinOr(items []string, limit int, empty string) string {
	if len(items) == 0 {
		return empty
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
