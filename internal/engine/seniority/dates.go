package seniority

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/pkg/textx"
)

// Non-standard period tokens resolve to a representative month.
var seasonMonths = map[string]time.Month{
	"spring": time.March,
	"summer": time.June,
	"fall":   time.September,
	"autumn": time.September,
	"winter": time.December,
}

var quarterMonths = map[string]time.Month{
	"q1": time.January,
	"q2": time.April,
	"q3": time.July,
	"q4": time.October,
}

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

const present = `Present|Current|Now`

// rangePatterns are ordered from most to least specific so that, for example,
// "15 March 2022 - Present" is consumed as a day-month-year range before the
// bare-year pattern can mis-read it.
var rangePatterns = []struct {
	re     *regexp.Regexp
	format string
}{
	{regexp.MustCompile(`(?i)(\d{1,2}\s+[A-Za-z]+\.?\s+\d{4})\s*[-–—]\s*(` + present + `)`), "day_month_year_present"},
	{regexp.MustCompile(`(?i)(\d{1,2}\s+[A-Za-z]+\.?\s+\d{4})\s*[-–—]\s*(\d{1,2}\s+[A-Za-z]+\.?\s+\d{4})`), "day_month_year"},
	{regexp.MustCompile(`(?i)([A-Za-z]+\.?\s+\d{4})\s*[-–—]\s*(` + present + `)`), "month_year_present"},
	{regexp.MustCompile(`(?i)([A-Za-z]+\.?\s+\d{4})\s*[-–—]\s*([A-Za-z]+\.?\s+\d{4})`), "month_year"},
	{regexp.MustCompile(`(?i)(\d{1,2}/\d{1,2}/\d{4})\s*[-–—]\s*(` + present + `)`), "european_present"},
	{regexp.MustCompile(`(?i)(\d{1,2}/\d{1,2}/\d{4})\s*[-–—]\s*(\d{1,2}/\d{1,2}/\d{4})`), "european"},
	{regexp.MustCompile(`(?i)(\d{2}/\d{4})\s*[-–—]\s*(` + present + `)`), "us_present"},
	{regexp.MustCompile(`(?i)(\d{2}/\d{4})\s*[-–—]\s*(\d{2}/\d{4})`), "us"},
	{regexp.MustCompile(`(?i)((?:Spring|Summer|Fall|Autumn|Winter|Q1|Q2|Q3|Q4)\s+\d{4})\s*[-–—]\s*(` + present + `)`), "season_present"},
	{regexp.MustCompile(`(?i)((?:Spring|Summer|Fall|Autumn|Winter|Q1|Q2|Q3|Q4)\s+\d{4})\s*[-–—]\s*((?:Spring|Summer|Fall|Autumn|Winter|Q1|Q2|Q3|Q4)\s+\d{4})`), "season"},
	{regexp.MustCompile(`(?i)\b(\d{4})\s*[-–—]\s*(` + present + `)\b`), "year_present"},
	{regexp.MustCompile(`(?i)\b(\d{4})\s*[-–—]\s*(\d{4})\b`), "year_only"},
}

var yearRE = regexp.MustCompile(`\d{4}`)

// Bounds on a believable employment period, in months. Anything outside is
// treated as a mis-parse and dropped.
const (
	minRangeMonths = 2
	maxRangeMonths = 600
)

// ParseDateRanges extracts employment periods from the experience section of
// the text (falling back to the whole document when no experience heading is
// found) and returns total whole years plus the individual ranges. Ranges are
// deduplicated by their literal start/end text, and unparseable tokens are
// skipped rather than aborting the scan.
func ParseDateRanges(text string) (int, []domain.DateRange) {
	section := experienceSection(text)
	now := time.Now()

	var ranges []domain.DateRange
	seen := map[string]struct{}{}
	totalMonths := 0

	for _, p := range rangePatterns {
		for _, m := range p.re.FindAllStringSubmatch(section, -1) {
			startStr, endStr := m[1], m[2]
			key := startStr + "-" + endStr
			if _, dup := seen[key]; dup {
				continue
			}

			start, ok := parseDateToken(startStr, p.format)
			if !ok {
				continue
			}
			var end time.Time
			if isPresent(endStr) {
				end = now
			} else if end, ok = parseDateToken(endStr, p.format); !ok {
				continue
			}

			// End month counts: Jan 2020 through Dec 2023 is 48 months.
			months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month()) + 1
			if months < minRangeMonths || months > maxRangeMonths {
				continue
			}
			seen[key] = struct{}{}
			totalMonths += months
			ranges = append(ranges, domain.DateRange{
				Start:  startStr,
				End:    endStr,
				Months: months,
				Format: p.format,
			})
		}
	}
	return totalMonths / 12, ranges
}

func isPresent(s string) bool {
	switch strings.ToLower(s) {
	case "present", "current", "now":
		return true
	}
	return false
}

// parseDateToken resolves a single date token to year and month granularity.
func parseDateToken(token, format string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	switch {
	case strings.HasPrefix(format, "european"):
		parts := strings.Split(token, "/")
		if len(parts) != 3 {
			return time.Time{}, false
		}
		month, err1 := strconv.Atoi(parts[1])
		year, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			return time.Time{}, false
		}
		return date(year, time.Month(month)), true

	case strings.HasPrefix(format, "us"):
		parts := strings.Split(token, "/")
		if len(parts) != 2 {
			return time.Time{}, false
		}
		month, err1 := strconv.Atoi(parts[0])
		year, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			return time.Time{}, false
		}
		return date(year, time.Month(month)), true

	case strings.HasPrefix(format, "season"):
		return parseSeasonOrQuarter(token)

	case strings.HasPrefix(format, "year"):
		year, err := strconv.Atoi(token)
		if err != nil {
			return time.Time{}, false
		}
		return date(year, time.January), true

	default:
		// "March 2022", "Mar. 2022", "15 March 2022".
		return parseMonthName(token)
	}
}

func parseSeasonOrQuarter(token string) (time.Time, bool) {
	low := strings.ToLower(token)
	ym := yearRE.FindString(token)
	if ym == "" {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(ym)
	for q, month := range quarterMonths {
		if strings.Contains(low, q) {
			return date(year, month), true
		}
	}
	for s, month := range seasonMonths {
		if strings.Contains(low, s) {
			return date(year, month), true
		}
	}
	return date(year, time.January), true
}

// parseMonthName handles month-name tokens, tolerating full names,
// three-letter abbreviations with an optional trailing period, and an
// optional leading day number.
func parseMonthName(token string) (time.Time, bool) {
	fields := strings.Fields(token)
	if len(fields) < 2 {
		return time.Time{}, false
	}
	yearStr := fields[len(fields)-1]
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	for _, f := range fields[:len(fields)-1] {
		name := strings.ToLower(strings.TrimSuffix(f, "."))
		if len(name) < 3 {
			continue
		}
		if month, ok := monthNames[name[:3]]; ok {
			return date(year, month), true
		}
	}
	return time.Time{}, false
}

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// experienceSection isolates the lines between the experience heading and the
// next section heading. Returns the whole text when no heading is found.
func experienceSection(text string) string {
	startKeys := []string{"professional experience", "work experience", "experience", "employment history"}
	endKeys := []string{"education", "certifications", "projects", "skills", "awards", "publications"}

	var b strings.Builder
	in := false
	for _, line := range textx.Lines(text) {
		low := strings.ToLower(strings.TrimSpace(line))
		if !in && containsAny(low, startKeys) {
			in = true
			continue
		}
		if in && containsAny(low, endKeys) {
			break
		}
		if in {
			fmt.Fprintln(&b, line)
		}
	}
	if b.Len() == 0 {
		return text
	}
	return b.String()
}

func containsAny(line string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(line, k) {
			return true
		}
	}
	return false
}
