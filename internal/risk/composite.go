package risk

import "fmt"

// CompositeResult is the weighted blend of the risk dimensions. Climate is
// the fourth dimension; when a property cannot be geocoded the weighting
// reverts to the three-dimension split.
type CompositeResult struct {
	Score                float64 `json:"composite_risk_score"`
	Level                string  `json:"composite_risk_level"`
	SystematicWeight     int     `json:"systematic_weight"`
	RegulatoryWeight     int     `json:"regulatory_weight"`
	IdiosyncraticWeight  int     `json:"idiosyncratic_weight"`
	ClimateWeight        int     `json:"climate_weight"`
	HasClimateRisk       bool    `json:"has_climate_risk"`
	Interpretation       string  `json:"interpretation"`
	ValidationVsResearch string  `json:"validation_vs_research"`
}

// Composite blends the dimension scores. climateScore is ignored when
// hasClimate is false. The validation field cross-checks the outcome against
// the cross-decile research expectation: low tiers should land under 45,
// high tiers above 50.
func (a *Assessor) Composite(systematic, regulatory, idiosyncratic float64, climateScore float64, hasClimate bool, decile int) *CompositeResult {
	result := &CompositeResult{HasClimateRisk: hasClimate}

	if hasClimate {
		result.Score = systematic*0.30 + regulatory*0.25 + idiosyncratic*0.25 + climateScore*0.20
		result.SystematicWeight = 30
		result.RegulatoryWeight = 25
		result.IdiosyncraticWeight = 25
		result.ClimateWeight = 20
	} else {
		result.Score = systematic*0.40 + regulatory*0.30 + idiosyncratic*0.30
		result.SystematicWeight = 40
		result.RegulatoryWeight = 30
		result.IdiosyncraticWeight = 30
	}

	result.Level = "Very High"
	switch {
	case result.Score < 35:
		result.Level = "Low"
	case result.Score < 55:
		result.Level = "Medium"
	case result.Score < 75:
		result.Level = "High"
	}

	switch {
	case decile <= 3:
		if result.Score < 45 {
			result.ValidationVsResearch = "Aligned with research (low-rent = lower risk)"
		} else {
			result.ValidationVsResearch = "Higher than expected for low-rent tier"
		}
		result.Interpretation = fmt.Sprintf(
			"Lower total risk than high-rent properties. D%d properties show reduced systematic risk despite regulatory concerns.",
			decile)
	case decile >= 8:
		if result.Score > 50 {
			result.ValidationVsResearch = "Aligned with research (high-rent = higher risk)"
		} else {
			result.ValidationVsResearch = "Lower than expected for high-rent tier"
		}
		result.Interpretation = fmt.Sprintf(
			"Higher total risk typical of premium tiers. D%d properties track economic cycles closely.",
			decile)
	default:
		result.ValidationVsResearch = "Within expected range for mid-tier property"
		result.Interpretation = fmt.Sprintf(
			"Moderate total risk consistent with mid-tier rentals. D%d balances yield stability and market exposure.",
			decile)
	}

	return result
}
