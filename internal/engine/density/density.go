// Package density builds the keyword-density comparison behind the audit bar
// chart: the most frequent meaningful JD words against their resume counts.
package density

import (
	"sort"
	"strings"
	"unicode"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// TopN is how many JD keywords the chart compares.
const TopN = 5

const explanation = "High density in core keywords signals Subject Matter Expertise to the ATS. If your resume counts are low compared to the JD, the algorithm may rank you as a secondary match."

// Calculate returns the top JD keywords by frequency with their counts on
// both sides. The NLP service provides stopword and part-of-speech aware
// tokenization; when it is nil or fails, a lexical tokenizer with a fixed
// stopword list stands in.
func Calculate(ctx domain.Context, nlp domain.NLPService, resumeText, jdText string) domain.Density {
	jdWords := meaningfulWords(ctx, nlp, jdText)
	resumeWords := allWords(ctx, nlp, resumeText)

	type entry struct {
		word  string
		count int
		first int
	}
	counts := map[string]*entry{}
	for i, w := range jdWords {
		if e, ok := counts[w]; ok {
			e.count++
		} else {
			counts[w] = &entry{word: w, count: 1, first: i}
		}
	}
	entries := make([]*entry, 0, len(counts))
	for _, e := range counts {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].first < entries[j].first
	})
	if len(entries) > TopN {
		entries = entries[:TopN]
	}

	resumeCounts := map[string]int{}
	for _, w := range resumeWords {
		resumeCounts[w]++
	}

	d := domain.Density{
		Labels:       make([]string, 0, len(entries)),
		JDCounts:     make([]int, 0, len(entries)),
		ResumeCounts: make([]int, 0, len(entries)),
		Explanation:  explanation,
	}
	for _, e := range entries {
		d.Labels = append(d.Labels, e.word)
		d.JDCounts = append(d.JDCounts, e.count)
		d.ResumeCounts = append(d.ResumeCounts, resumeCounts[e.word])
	}
	return d
}

// meaningfulWords keeps lowercased alphabetic tokens longer than 3 runes
// that are not stopwords.
func meaningfulWords(ctx domain.Context, nlp domain.NLPService, text string) []string {
	if nlp != nil {
		if tokens, err := nlp.Tokenize(ctx, text); err == nil {
			var words []string
			for _, t := range tokens {
				if t.IsAlpha && !t.IsStop && len(t.Text) > 3 {
					words = append(words, strings.ToLower(t.Text))
				}
			}
			return words
		}
	}
	var words []string
	for _, w := range lexicalTokens(text) {
		if len(w) > 3 && !stopwords[w] {
			words = append(words, w)
		}
	}
	return words
}

// allWords keeps every lowercased alphabetic token.
func allWords(ctx domain.Context, nlp domain.NLPService, text string) []string {
	if nlp != nil {
		if tokens, err := nlp.Tokenize(ctx, text); err == nil {
			var words []string
			for _, t := range tokens {
				if t.IsAlpha {
					words = append(words, strings.ToLower(t.Text))
				}
			}
			return words
		}
	}
	return lexicalTokens(text)
}

func lexicalTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	return fields
}

var stopwords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "their": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "from": true, "further": true, "have": true,
	"having": true, "here": true, "into": true, "more": true, "most": true,
	"only": true, "other": true, "over": true, "same": true, "should": true,
	"some": true, "such": true, "than": true, "that": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "those": true,
	"through": true, "under": true, "until": true, "very": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "your": true, "yours": true, "must": true,
	"need": true, "able": true, "well": true, "work": true, "team": true,
	"years": true, "experience": true, "strong": true, "looking": true,
	"candidate": true, "role": true, "skills": true, "join": true,
}
