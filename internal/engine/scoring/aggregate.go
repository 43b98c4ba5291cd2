package scoring

import (
	"fmt"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// Facts carries everything the nine scorers need for one analysis.
type Facts struct {
	ResumeText string
	Extraction domain.Extraction
	// ResumeYears is the reconciled experience figure from the seniority
	// analyzer.
	ResumeYears int
	// HasDegree comes from the education diagnostic.
	HasDegree bool
}

// Result is the aggregate outcome: the clamped final score, its tier and
// outlook sentence, the per-component breakdown, and the vendor estimates.
type Result struct {
	FinalScore float64
	Tier       domain.Tier
	Outlook    string
	Breakdown  domain.Breakdown
	Vendors    domain.VendorEstimates
}

// Calculate runs all nine component scorers and combines them. When the
// extraction carries no skill signal at all (both matched and missing lists
// empty after every fallback) it short-circuits to the documented zero-score
// error result instead of scoring garbage.
func Calculate(f Facts) Result {
	ex := domain.NormalizeExtraction(f.Extraction)
	if len(ex.MatchedSkills) == 0 && len(ex.MissingSkills) == 0 {
		return errorResult()
	}

	var b domain.Breakdown
	b.KeywordMatch = ScoreKeywordMatch(ex.MatchedSkills, ex.JDRequiredSkills)
	b.KeywordPlacement = ScoreKeywordPlacement(f.ResumeText, ex.MatchedSkills)
	b.Experience = ScoreExperience(f.ResumeYears, ex.RequiredYears)
	b.Education = ScoreEducation(ex.EducationRequired, f.HasDegree)
	b.Formatting = ScoreFormatting(f.ResumeText)
	b.ContactInfo = ScoreContactInfo(f.ResumeText)
	b.Structure = ScoreDocumentStructure(f.ResumeText)
	b.Impact = ScoreQuantifiedImpact(f.ResumeText)
	b.Seniority = ScoreSeniorityMatch(f.ResumeText, ex.SeniorityLevel)

	final := b.Sum()
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	final = round1(final)

	tier, outlook := tierFor(final)
	return Result{
		FinalScore: final,
		Tier:       tier,
		Outlook:    outlook,
		Breakdown:  b,
		Vendors:    estimateVendors(b),
	}
}

func tierFor(score float64) (domain.Tier, string) {
	switch {
	case score >= 85:
		return domain.TierExcellent, "Top-tier candidate. Exceeds ATS thresholds across all systems."
	case score >= 70:
		return domain.TierGood, "Strong candidate. Should pass most ATS filters with minor optimization."
	case score >= 55:
		return domain.TierFair, "Qualified candidate. Some gaps present but passable with improvements."
	case score >= 40:
		return domain.TierBorderline, "Borderline candidate. Risk of auto-rejection in strict systems. Needs work."
	default:
		return domain.TierPoor, "High rejection risk. Critical gaps detected. Immediate optimization required."
	}
}

// errorResult is the documented fallback shape for catastrophic extraction
// failure: zero score, error tier, fully populated fields.
func errorResult() Result {
	return Result{
		FinalScore: 0,
		Tier:       domain.TierError,
		Outlook:    "Analysis could not distinguish any required or missing skills. Check that both documents contain substantive text and retry.",
		Vendors: domain.VendorEstimates{
			Workday:    "Not available",
			Greenhouse: "Not available",
			Taleo:      "Not available",
			ICIMS:      "Not available",
		},
	}
}

// estimateVendors derives presentational per-vendor scores from component
// sub-combinations: Workday from keyword+experience+education (55 possible),
// Greenhouse from keyword+placement (50), Taleo from the raw match rate, and
// iCIMS from education+structure+contact (20).
func estimateVendors(b domain.Breakdown) domain.VendorEstimates {
	return domain.VendorEstimates{
		Workday:    estimateWorkday(b),
		Greenhouse: estimateGreenhouse(b),
		Taleo:      estimateTaleo(b),
		ICIMS:      estimateICIMS(b),
	}
}

func estimateWorkday(b domain.Breakdown) string {
	score := round1(b.KeywordMatch.Score + b.Experience.Score + b.Education.Score)
	switch {
	case score >= 46:
		return fmt.Sprintf("%g/55 - Highly Qualified (Top 15%%)", score)
	case score >= 34:
		return fmt.Sprintf("%g/55 - Qualified (Top 35%%)", score)
	default:
		return fmt.Sprintf("%g/55 - Under-qualified (Bottom 50%%)", score)
	}
}

func estimateGreenhouse(b domain.Breakdown) string {
	combined := b.KeywordMatch.Score + b.KeywordPlacement.Score
	switch {
	case combined >= 38:
		return "Top 10% - Auto-advanced to recruiter"
	case combined >= 27:
		return "Top 25% - Strong candidate pool"
	case combined >= 15:
		return "Top 50% - Reviewed if quota not met"
	default:
		return "Bottom 50% - Likely not reviewed"
	}
}

func estimateTaleo(b domain.Breakdown) string {
	rate := b.KeywordMatch.MatchRate
	switch {
	case rate >= 80:
		return fmt.Sprintf("%g%% match - Excellent fit", rate)
	case rate >= 60:
		return fmt.Sprintf("%g%% match - Good fit", rate)
	case rate >= 40:
		return fmt.Sprintf("%g%% match - Moderate fit", rate)
	default:
		return fmt.Sprintf("%g%% match - Poor fit", rate)
	}
}

func estimateICIMS(b domain.Breakdown) string {
	combined := round1(b.Education.Score + b.Structure.Score + b.ContactInfo.Score)
	switch {
	case combined >= 18:
		return fmt.Sprintf("%g/20 - Excellent parsability", combined)
	case combined >= 12:
		return fmt.Sprintf("%g/20 - Good parsability", combined)
	default:
		return fmt.Sprintf("%g/20 - Poor parsability (data loss likely)", combined)
	}
}
