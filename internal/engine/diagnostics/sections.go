package diagnostics

import (
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/pkg/textx"
)

// Heading synonym sets per canonical section category. Matching is substring
// over lowercased lines, so "PROFESSIONAL EXPERIENCE" and "Work Experience"
// both resolve to the experience category.
var standardHeadings = map[string][]string{
	"summary": {
		"summary", "professional summary", "profile", "objective",
		"professional profile", "career objective",
	},
	"experience": {
		"experience", "work experience", "professional experience",
		"employment history", "work history", "career history",
	},
	"education": {
		"education", "academic background", "academic history",
		"qualifications", "degrees",
	},
	"skills": {
		"skills", "technical skills", "core competencies",
		"key skills", "areas of expertise", "competencies",
	},
}

// Creative headings that confuse parser-driven trackers even when the
// standard ones are also present.
var nonstandardHeadings = []string{
	"career highlights", "what i bring", "why hire me",
	"my journey", "career story", "professional journey",
	"achievements overview", "value proposition",
}

const (
	// headingMaxLen distinguishes a section header from body text that
	// merely mentions a heading word.
	headingMaxLen = 50
	// summaryLookahead bounds the scan for the heading that ends the
	// summary section.
	summaryLookahead = 30
	// summaryDefaultSpan is assumed when no closing heading is found.
	summaryDefaultSpan = 15
)

// Sections holds the lowercased text of the three resume regions used for
// keyword placement analysis. A region is empty when its heading was not
// found.
type Sections struct {
	Summary    string
	Experience string
	Skills     string
}

// SplitSections locates the summary, experience and skills regions of a
// resume by their heading lines and the next heading after each.
func SplitSections(resumeText string) Sections {
	lines := textx.Lines(strings.ToLower(resumeText))

	var s Sections
	s.Summary = sliceSection(lines,
		[]string{"professional summary", "summary", "profile", "objective"},
		[]string{"experience", "work history", "employment", "education", "skills", "competencies", "certifications"},
		summaryLookahead, summaryDefaultSpan)
	s.Experience = sliceSection(lines,
		[]string{"professional experience", "work experience", "experience", "employment history"},
		[]string{"education", "certifications", "awards", "publications"},
		len(lines), 0)
	s.Skills = sliceSection(lines,
		[]string{"skills", "technical skills", "competencies"},
		[]string{"summary", "experience", "education", "certifications", "projects"},
		len(lines), 0)
	return s
}

// sliceSection returns the lines from the first heading matching startKeys up
// to the next heading matching endKeys. Both boundaries must look like
// headers (shorter than headingMaxLen). lookahead bounds the end scan;
// defaultSpan (0 meaning "rest of document") applies when no end heading is
// found.
func sliceSection(lines []string, startKeys, endKeys []string, lookahead, defaultSpan int) string {
	start := -1
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) >= headingMaxLen {
			continue
		}
		if containsAny(stripped, startKeys) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := -1
	limit := start + 1 + lookahead
	if limit > len(lines) {
		limit = len(lines)
	}
	for j := start + 1; j < limit; j++ {
		stripped := strings.TrimSpace(lines[j])
		if len(stripped) < headingMaxLen && containsAny(stripped, endKeys) {
			end = j
			break
		}
	}
	if end == -1 {
		if defaultSpan > 0 {
			end = start + defaultSpan
			if end > len(lines) {
				end = len(lines)
			}
		} else {
			end = len(lines)
		}
	}
	return strings.Join(lines[start:end], "\n")
}

func containsAny(line string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(line, k) {
			return true
		}
	}
	return false
}
