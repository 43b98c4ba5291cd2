package skills

import (
	"regexp"
	"sort"
	"strings"
)

var softSkillTable = []string{
	"communication", "leadership", "teamwork", "problem solving",
	"critical thinking", "time management", "adaptability", "creativity",
	"collaboration", "attention to detail", "analytical thinking",
	"decision making", "conflict resolution", "negotiation", "presentation",
	"mentoring", "coaching", "strategic thinking", "stakeholder management",
	"cross-functional", "client management", "vendor management",
	"self-motivated", "detail-oriented", "fast learner", "multitasking",
	"requirements management", "project management", "change management",
	"risk management", "team coordination", "cross functional",
	"communication skills", "technical documentation", "reporting",
}

// ExtractSoft returns the soft skills from the fixed table that appear in the
// text, sorted for stable output.
func ExtractSoft(text string) []string {
	low := strings.ToLower(text)
	var found []string
	for _, skill := range softSkillTable {
		if strings.Contains(low, skill) {
			found = append(found, skill)
		}
	}
	sort.Strings(found)
	return found
}

// Frequency counts whole-word occurrences of each skill in the text.
func Frequency(text string, skillList []string) map[string]int {
	low := strings.ToLower(text)
	freq := make(map[string]int, len(skillList))
	for _, skill := range skillList {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
		if err != nil {
			continue
		}
		freq[skill] = len(re.FindAllString(low, -1))
	}
	return freq
}

// stuffingBaseThreshold is the minimum repeat count that can ever be flagged.
const stuffingBaseThreshold = 6

// stuffingHardCeiling flags even the role's primary skills when exceeded.
const stuffingHardCeiling = 12

// DetectStuffing flags skills whose repeat count meets the adaptive threshold
// max(6, wordCount/120). The top-3 "central" skills (those most often
// substring-contained by the other skills in the list) are exempt unless their
// count exceeds the absolute ceiling of 12.
func DetectStuffing(resumeText string, skillList []string) []string {
	wordCount := len(strings.Fields(resumeText))
	threshold := stuffingBaseThreshold
	if adaptive := wordCount / 120; adaptive > threshold {
		threshold = adaptive
	}

	freq := Frequency(resumeText, skillList)
	primary := centralSkills(skillList, 3)

	var stuffed []string
	for _, skill := range skillList {
		count := freq[skill]
		if count < threshold {
			continue
		}
		if _, isPrimary := primary[skill]; !isPrimary {
			stuffed = append(stuffed, skill)
		} else if count > stuffingHardCeiling {
			stuffed = append(stuffed, skill)
		}
	}
	return stuffed
}

// centralSkills returns the top-n skills by how many skills in the list contain
// them as a substring (a skill always contains itself). Ties resolve to the
// earlier list position for determinism.
func centralSkills(skillList []string, n int) map[string]struct{} {
	type mention struct {
		skill string
		count int
		pos   int
	}
	mentions := make([]mention, 0, len(skillList))
	for i, skill := range skillList {
		low := strings.ToLower(skill)
		count := 0
		for _, other := range skillList {
			if strings.Contains(strings.ToLower(other), low) {
				count++
			}
		}
		mentions = append(mentions, mention{skill: skill, count: count, pos: i})
	}
	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].count != mentions[j].count {
			return mentions[i].count > mentions[j].count
		}
		return mentions[i].pos < mentions[j].pos
	})
	out := make(map[string]struct{}, n)
	for i := 0; i < len(mentions) && i < n; i++ {
		out[mentions[i].skill] = struct{}{}
	}
	return out
}
