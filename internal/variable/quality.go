package variable

// Grade is a coarse definition-quality tier.
type Grade string

const (
	GradeGold   Grade = "Gold"
	GradeSilver Grade = "Silver"
	GradeBronze Grade = "Bronze"
)

// QualityScore evaluates how completely a variable is defined, on a
// 0-100 scale: 40 points technical, 30 semantic, 30 governance.
func QualityScore(v *Variable) int {
	score := 0

	if v.Name != "" {
		score += 10
	}
	if v.AnalyticalType != "" {
		score += 10
	}
	if v.DataType != "" {
		score += 10
	}
	if v.Role != "" {
		score += 10
	}

	if v.Alias != "" && v.Alias != v.Name {
		score += 10
	}
	switch {
	case len(v.Description) > 20:
		score += 20
	case len(v.Description) > 0:
		score += 10
	}

	if steward, _ := v.Governance["data_steward"].(string); steward != "" {
		score += 10
	}
	if _, ok := v.Governance["pii_flag"]; ok {
		score += 10
	}
	if sensitivity, _ := v.Governance["sensitivity"].(string); sensitivity != "" {
		score += 10
	}

	return score
}

// QualityGrade maps a score to its tier: Gold at 90+, Silver at 60+.
func QualityGrade(v *Variable) (Grade, int) {
	score := QualityScore(v)
	switch {
	case score >= 90:
		return GradeGold, score
	case score >= 60:
		return GradeSilver, score
	default:
		return GradeBronze, score
	}
}
