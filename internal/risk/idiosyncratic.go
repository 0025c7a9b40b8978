package risk

import (
	"strings"

	"aequitas/server/internal/models"
)

// IdiosyncraticResult scores property-specific risk from age, condition,
// tenant concentration, occupancy and unit diversification.
type IdiosyncraticResult struct {
	Condition            string  `json:"property_condition"`
	AgeScore             float64 `json:"age_risk_score"`
	ConditionScore       float64 `json:"condition_risk_score"`
	ConcentrationScore   float64 `json:"concentration_risk_score"`
	OccupancyScore       float64 `json:"occupancy_risk_score"`
	DiversificationScore float64 `json:"diversification_risk_score"`
	Score                float64 `json:"idiosyncratic_risk_score"`
	Interpretation       string  `json:"interpretation"`
}

// Idiosyncratic scores the property itself. Unknown age, condition or
// occupancy fall back to moderate defaults rather than zero so missing data
// never looks safer than bad data.
func (a *Assessor) Idiosyncratic(property models.PropertyCharacteristics) *IdiosyncraticResult {
	result := &IdiosyncraticResult{
		Condition:            property.Condition,
		AgeScore:             ageScore(property.Age()),
		ConditionScore:       conditionScore(property.Condition),
		ConcentrationScore:   concentrationScore(property),
		OccupancyScore:       occupancyScore(property.OccupancyRate),
		DiversificationScore: diversificationScore(property.Units()),
	}

	score := result.AgeScore + result.ConditionScore + result.ConcentrationScore +
		result.OccupancyScore + result.DiversificationScore
	if score > 100 {
		score = 100
	}
	result.Score = score

	result.Interpretation = "Very high property-specific risk - significant property concerns"
	switch {
	case score < 25:
		result.Interpretation = "Low property-specific risk - well-maintained, diversified"
	case score < 50:
		result.Interpretation = "Moderate property-specific risk - typical for asset class"
	case score < 75:
		result.Interpretation = "High property-specific risk - concentrated or aging asset"
	}

	return result
}

func ageScore(age *int) float64 {
	if age == nil {
		return 10.0
	}
	switch {
	case *age < 10:
		return 2.0
	case *age < 30:
		return 5.0
	case *age < 50:
		return 10.0
	case *age < 75:
		return 15.0
	}
	return 20.0
}

func conditionScore(condition string) float64 {
	switch strings.ToLower(condition) {
	case "excellent":
		return 0.0
	case "good":
		return 5.0
	case "fair":
		return 12.5
	case "poor":
		return 25.0
	}
	return 12.5
}

func concentrationScore(property models.PropertyCharacteristics) float64 {
	if property.TenantConcentrationPct != nil {
		return (*property.TenantConcentrationPct / 100) * 30
	}
	units := property.Units()
	switch {
	case units == 1:
		return 30.0
	case units < 5:
		return 20.0
	case units < 10:
		return 10.0
	}
	return 5.0
}

func occupancyScore(rate *float64) float64 {
	if rate == nil {
		return 5.0
	}
	switch {
	case *rate >= 95:
		return 0.0
	case *rate >= 90:
		return 3.0
	case *rate >= 85:
		return 7.5
	case *rate >= 75:
		return 12.0
	}
	return 15.0
}

func diversificationScore(units int) float64 {
	switch {
	case units >= 50:
		return 0.0
	case units >= 20:
		return 2.5
	case units >= 10:
		return 5.0
	case units >= 5:
		return 7.5
	}
	return 10.0
}
