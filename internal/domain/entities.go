// Package domain holds the core entities and ports of the ATS scoring engine.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrQuotaExceeded   = errors.New("quota exceeded")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrInternal        = errors.New("internal error")
)

// Level is a career seniority classification, ordered Entry < Mid < Senior < Management.
type Level string

const (
	LevelEntry      Level = "entry"
	LevelMid        Level = "mid"
	LevelSenior     Level = "senior"
	LevelManagement Level = "management"
)

// Rank returns the ordinal position of a level (Entry=1 .. Management=4).
// Unknown levels rank as Mid.
func (l Level) Rank() int {
	switch l {
	case LevelEntry:
		return 1
	case LevelMid:
		return 2
	case LevelSenior:
		return 3
	case LevelManagement:
		return 4
	}
	return 2
}

// Label returns the human-readable form used in audit messages.
func (l Level) Label() string {
	switch l {
	case LevelEntry:
		return "Entry/Graduate"
	case LevelMid:
		return "Mid-Level"
	case LevelSenior:
		return "Senior"
	case LevelManagement:
		return "Management/Architect"
	}
	return "Mid-Level"
}

// Degree is an education requirement classification.
type Degree string

const (
	DegreeNone      Degree = "none"
	DegreeAssociate Degree = "associate"
	DegreeBachelor  Degree = "bachelor"
	DegreeMaster    Degree = "master"
	DegreePhD       Degree = "phd"
)

// Required reports whether the degree acts as a hard gate.
func (d Degree) Required() bool {
	switch d {
	case DegreeAssociate, DegreeBachelor, DegreeMaster, DegreePhD:
		return true
	}
	return false
}

// ExtractionSource records the provenance of the matched/missing skill lists.
type ExtractionSource string

const (
	// SourceExtracted means the external skill-extraction collaborator succeeded.
	SourceExtracted ExtractionSource = "extracted"
	// SourceFallback means the deterministic synonym matcher produced the lists.
	SourceFallback ExtractionSource = "fallback"
)

// Extraction is the structured payload derived from comparing a job description
// and a resume. All slice fields are non-nil after NormalizeExtraction.
// Invariant: matched ∪ missing ⊆ jd required skills when Source == SourceExtracted.
type Extraction struct {
	JobTitle           string           `json:"job_title"`
	SeniorityLevel     Level            `json:"seniority_level"`
	RequiredYears      int              `json:"required_years"`
	EducationRequired  Degree           `json:"education_required"`
	EducationPreferred Degree           `json:"education_preferred"`
	JDRequiredSkills   []string         `json:"jd_required_skills"`
	JDPreferredSkills  []string         `json:"jd_preferred_skills"`
	JDResponsibilities []string         `json:"jd_responsibilities"`
	ResumeSkills       []string         `json:"resume_skills"`
	MatchedSkills      []string         `json:"matched_skills"`
	MissingSkills      []string         `json:"missing_skills"`
	BonusSkills        []string         `json:"bonus_skills"`
	ExtraSkills        []string         `json:"extra_skills"`
	Source             ExtractionSource `json:"source"`
}

// Empty reports whether the extraction carries no usable skill signal.
func (e Extraction) Empty() bool {
	return len(e.MatchedSkills) == 0 && len(e.MissingSkills) == 0
}

// NormalizeExtraction defaults enum fields and replaces nil slices with empty
// ones so downstream code never branches on absence.
func NormalizeExtraction(e Extraction) Extraction {
	if e.SeniorityLevel == "" {
		e.SeniorityLevel = LevelMid
	}
	if e.EducationRequired == "" {
		e.EducationRequired = DegreeNone
	}
	if e.EducationPreferred == "" {
		e.EducationPreferred = DegreeNone
	}
	for _, p := range []*[]string{
		&e.JDRequiredSkills, &e.JDPreferredSkills, &e.JDResponsibilities,
		&e.ResumeSkills, &e.MatchedSkills, &e.MissingSkills,
		&e.BonusSkills, &e.ExtraSkills,
	} {
		if *p == nil {
			*p = []string{}
		}
	}
	return e
}

// CheckStatus is the closed pass/fail status of a diagnostic check.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckFail CheckStatus = "fail"
)

// CheckResult is the outcome of a single diagnostic check. Message explains the
// finding in terms of the ATS vendor behavior it mimics.
type CheckResult struct {
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
}

// Passed is a small readability helper for audit assembly.
func (c CheckResult) Passed() bool { return c.Status == CheckPass }

// AuditGroup is one named section of the audit report.
type AuditGroup struct {
	Name  string        `json:"name"`
	Items []CheckResult `json:"items"`
}

// DateRange is one parsed employment period from the experience section.
type DateRange struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Months int    `json:"months"`
	Format string `json:"format"`
}

// ExperienceFact reconciles explicit "N years" statements with date-range math.
// Computed fresh per analysis; never persisted.
type ExperienceFact struct {
	YearsFromStatement int         `json:"years_from_statement"`
	YearsFromDates     int         `json:"years_from_dates"`
	TotalYears         int         `json:"total_years"`
	DateRanges         []DateRange `json:"date_ranges"`
	Mismatch           bool        `json:"mismatch"`
	MismatchMessage    string      `json:"mismatch_message,omitempty"`
}

// Priority orders suggestions from most to least urgent.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort position of a priority (critical first).
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	}
	return 3
}

// Suggestion is one concrete remediation with copy-paste-ready fix text.
type Suggestion struct {
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Area        string   `json:"area"`
	Issue       string   `json:"issue"`
	Fix         string   `json:"fix"`
	Rationale   string   `json:"rationale"`
	ScoreImpact string   `json:"score_impact"`
}

// Tier buckets the final score.
type Tier string

const (
	TierExcellent  Tier = "excellent"
	TierGood       Tier = "good"
	TierFair       Tier = "fair"
	TierBorderline Tier = "borderline"
	TierPoor       Tier = "poor"
	// TierError marks the documented zero-score fallback result.
	TierError Tier = "error"
)

// VendorEstimates are presentational approximations of how four real ATS
// products would rank the candidate, derived from component sub-combinations.
type VendorEstimates struct {
	Workday    string `json:"workday"`
	Greenhouse string `json:"greenhouse"`
	Taleo      string `json:"taleo"`
	ICIMS      string `json:"icims"`
}

// Density feeds the keyword-density chart: top JD tokens against resume counts.
type Density struct {
	Labels       []string `json:"labels"`
	JDCounts     []int    `json:"jd_counts"`
	ResumeCounts []int    `json:"resume_counts"`
	Explanation  string   `json:"explanation"`
}

// AnalysisResult is the full outcome of one analyze call.
type AnalysisResult struct {
	FinalScore      float64         `json:"final_score"`
	Tier            Tier            `json:"tier"`
	Outlook         string          `json:"outlook"`
	Breakdown       Breakdown       `json:"breakdown"`
	MatchedSkills   []string        `json:"matched_skills"`
	MissingSkills   []string        `json:"missing_skills"`
	SoftSkills      []string        `json:"soft_skills"`
	SeniorityMatch  string          `json:"seniority_match"`
	VendorEstimates VendorEstimates `json:"vendor_estimates"`
	Density         Density         `json:"density"`
	Audit           []AuditGroup    `json:"audit"`
	Suggestions     []Suggestion    `json:"suggestions"`
	Extraction      Extraction      `json:"jd_parsed"`
}

// Context aliases context.Context so ports read uniformly.
type Context = context.Context
