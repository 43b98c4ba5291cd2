package skills

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// synonyms expands each known skill into the surface forms that count as a
// match. Used by the deterministic fallback extraction when the LLM
// collaborator is unavailable.
var synonyms = map[string][]string{
	"test automation":  {"automated test", "automation framework", "automated testing", "automation suite"},
	"qa testing":       {"quality assurance", "quality gates", "qa engineer", "sdet", "quality engineering"},
	"manual testing":   {"manual test", "manual and automated", "test cases", "test plans", "test execution"},
	"web testing":      {"web-based application", "web application", "frontend testing", "ui testing"},
	"mobile testing":   {"mobile application", "android testing", "ios testing", "mobile app"},
	"ci/cd pipelines":  {"ci/cd", "jenkins", "continuous integration", "continuous delivery", "github actions"},
	"ci/cd":            {"jenkins", "continuous integration", "continuous delivery", "pipelines"},
	"playwright":       {"playwright"},
	"selenium":         {"selenium"},
	"cypress":          {"cypress"},
	"appium":           {"appium"},
	"javascript":       {"javascript", " js ", "ecmascript"},
	"typescript":       {"typescript", " ts "},
	"node.js":          {"node.js", "nodejs", "node js"},
	"next.js":          {"next.js", "nextjs"},
	"react":            {"react", "reactjs"},
	"python":           {"python"},
	"java":             {"java"},
	"go":               {"golang", " go "},
	"sql":              {"sql"},
	"api testing":      {"rest assured", "api test", "postman", "karate dsl", "api automation"},
	"rest api":         {"rest assured", "restful", "rest api"},
	"docker":           {"docker", "containerization"},
	"kubernetes":       {"kubernetes", "k8s"},
	"aws":              {"amazon web services", "aws", " ec2 ", " s3 ", "lambda"},
	"agile":            {"agile", "scrum", "sprint", "kanban"},
	"git":              {"git", "github", "gitlab", "bitbucket"},
	"ai testing tools": {"ai testing", "ai-powered test", "cursor", "copilot test", "llm test"},
	"bdd":              {"bdd", "cucumber", "behave", "gherkin", "behavior driven"},
	"machine learning": {"machine learning", "deep learning", "neural network"},
	"terraform":        {"terraform", "infrastructure as code"},
	"linux":            {"linux", "unix", "bash"},
	"hil":              {"hil testing", "hil bench", "hardware in the loop", "hardware-in-the-loop"},
}

var jdSkillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[-*\x{2022}]\s*([^,\r\n]{3,60}?)(?:\r?\n|,|$)`),
	regexp.MustCompile(`(?i)experience (?:with|in)\s+([^,\r\n]{3,40})`),
	regexp.MustCompile(`(?i)knowledge of\s+([^,\r\n]{3,40})`),
	regexp.MustCompile(`(?i)familiarity with\s+([^,\r\n]{3,40})`),
	regexp.MustCompile(`(?i)expertise in\s+([^,\r\n]{3,40})`),
}

// FallbackExtraction is the deterministic substitute for the LLM extractor:
// the known-skill table is matched against the JD via synonym expansion, and
// each required skill is then checked against the resume. List fields are
// always non-nil.
func FallbackExtraction(jdText, resumeText string) domain.Extraction {
	jdLow := strings.ToLower(jdText)
	resumeLow := strings.ToLower(resumeText)

	var required []string
	seen := map[string]struct{}{}
	appendSkill := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		required = append(required, s)
	}

	for _, skill := range synonymKeys {
		if skillInText(skill, jdLow) {
			appendSkill(skill)
		}
	}

	// No table hits: mine candidate skill tokens from bullet lists and common
	// requirement phrasings instead.
	if len(required) == 0 {
		for _, re := range jdSkillPatterns {
			for _, m := range re.FindAllStringSubmatch(jdLow, -1) {
				token := strings.Trim(strings.TrimSpace(m[1]), ".,;:")
				if len(token) >= 3 && len(token) <= 50 {
					appendSkill(token)
				}
				if len(required) >= 20 {
					break
				}
			}
		}
	}

	matched := []string{}
	missing := []string{}
	for _, skill := range required {
		if skillInText(skill, resumeLow) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	if required == nil {
		required = []string{}
	}

	return domain.NormalizeExtraction(domain.Extraction{
		JDRequiredSkills: required,
		MatchedSkills:    matched,
		MissingSkills:    missing,
		Source:           domain.SourceFallback,
	})
}

// skillInText reports whether the skill or any of its synonyms occurs in the
// lowercased text.
func skillInText(skill, textLow string) bool {
	if strings.Contains(textLow, skill) {
		return true
	}
	for _, syn := range synonyms[skill] {
		if strings.Contains(textLow, syn) {
			return true
		}
	}
	return false
}

// synonymKeys is the table's key set in sorted order so fallback output is
// deterministic across runs.
var synonymKeys = func() []string {
	keys := make([]string, 0, len(synonyms))
	for k := range synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()
