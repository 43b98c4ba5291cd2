package domain

// Component ceilings. They sum to exactly 100.
const (
	CeilKeywordMatch     = 30.0
	CeilKeywordPlacement = 20.0
	CeilExperience       = 15.0
	CeilEducation        = 10.0
	CeilFormatting       = 10.0
	CeilContactInfo      = 5.0
	CeilStructure        = 5.0
	CeilImpact           = 5.0
	CeilSeniority        = 5.0
)

// KeywordMatchScore carries the match-rate rationale for the 0-30 component.
type KeywordMatchScore struct {
	Score     float64 `json:"score"`
	MatchRate float64 `json:"match_rate"` // percent, one decimal
	Matched   int     `json:"matched"`
	Required  int     `json:"required"`
	Behavior  string  `json:"behavior"`
}

// PlacementScore carries section hit counts for the 0-20 component.
type PlacementScore struct {
	Score          float64 `json:"score"`
	SummaryHits    int     `json:"summary_hits"`
	ExperienceHits int     `json:"experience_hits"`
	SkillsHits     int     `json:"skills_hits"`
	Behavior       string  `json:"behavior"`
}

// ExperienceScore carries the years gap rationale for the 0-15 component.
type ExperienceScore struct {
	Score         float64 `json:"score"`
	YearsDetected int     `json:"years_detected"`
	YearsRequired int     `json:"years_required"`
	Gap           int     `json:"gap"`
	Behavior      string  `json:"behavior"`
}

// EducationScore is the binary 0-or-10 gate.
type EducationScore struct {
	Score     float64 `json:"score"`
	Required  Degree  `json:"required"`
	HasDegree bool    `json:"has_degree"`
	Behavior  string  `json:"behavior"`
}

// FormattingScore carries parsability findings for the 0-10 component.
type FormattingScore struct {
	Score        float64  `json:"score"`
	Issues       []string `json:"issues"`
	MetricsFound int      `json:"metrics_found"`
	Behavior     string   `json:"behavior"`
}

// ContactScore carries sub-signal flags for the 0-5 component.
type ContactScore struct {
	Score       float64 `json:"score"`
	HasEmail    bool    `json:"has_email"`
	HasPhone    bool    `json:"has_phone"`
	HasLocation bool    `json:"has_location"`
	HasLinkedIn bool    `json:"has_linkedin"`
	Behavior    string  `json:"behavior"`
}

// StructureScore carries section/date findings for the 0-5 component.
type StructureScore struct {
	Score         float64 `json:"score"`
	SectionsFound int     `json:"sections_found"`
	HasDates      bool    `json:"has_dates"`
	Behavior      string  `json:"behavior"`
}

// ImpactScore carries the metric count for the 0-5 component.
type ImpactScore struct {
	Score        float64 `json:"score"`
	MetricsCount int     `json:"metrics_count"`
	Behavior     string  `json:"behavior"`
}

// SeniorityScore carries the level comparison for the 0-5 component.
type SeniorityScore struct {
	Score       float64 `json:"score"`
	ResumeLevel Level   `json:"resume_level"`
	JDLevel     Level   `json:"jd_level"`
	Behavior    string  `json:"behavior"`
}

// Breakdown groups the nine component scores. The final score before clamping
// is always Sum().
type Breakdown struct {
	KeywordMatch     KeywordMatchScore `json:"keyword_match"`
	KeywordPlacement PlacementScore    `json:"keyword_placement"`
	Experience       ExperienceScore   `json:"experience"`
	Education        EducationScore    `json:"education"`
	Formatting       FormattingScore   `json:"formatting"`
	ContactInfo      ContactScore      `json:"contact_info"`
	Structure        StructureScore    `json:"document_structure"`
	Impact           ImpactScore       `json:"quantified_impact"`
	Seniority        SeniorityScore    `json:"seniority_match"`
}

// Sum returns the arithmetic total of the nine component scores.
func (b Breakdown) Sum() float64 {
	return b.KeywordMatch.Score + b.KeywordPlacement.Score + b.Experience.Score +
		b.Education.Score + b.Formatting.Score + b.ContactInfo.Score +
		b.Structure.Score + b.Impact.Score + b.Seniority.Score
}
