package risk

import "fmt"

// RegulatoryResult scores the policy environment of a jurisdiction across
// rent control, renter protection strength, political control, policy
// uncertainty and AMI proximity.
type RegulatoryResult struct {
	RentControl       bool    `json:"has_rent_control"`
	RPSScore          float64 `json:"rps_score"`
	PoliticalRisk     string  `json:"political_risk"`
	PolicyUncertainty string  `json:"policy_uncertainty"`
	AMIRisk           string  `json:"ami_risk"`
	Score             float64 `json:"regulatory_risk_score"`
	Interpretation    string  `json:"interpretation"`

	RentControlScore float64 `json:"rent_control_score"`
	RPSRiskScore     float64 `json:"rps_risk_score"`
	PoliticalScore   float64 `json:"political_risk_score"`
	UncertaintyScore float64 `json:"uncertainty_score"`
	AMIRiskScore     float64 `json:"ami_risk_score"`
}

// Regulatory scores the state and city policy environment. City rent control
// ordinances override the statewide score; the AMI test only applies when
// the caller supplies rent as a share of area median income.
func (a *Assessor) Regulatory(state, city string, amiPercentage *float64) *RegulatoryResult {
	data := a.data

	rentControl := false
	rentControlScore := 0.0
	if data.HasRentControlState(state) {
		rentControl = true
		rentControlScore = 20.0
	}
	if city != "" && data.HasRentControlCity(fmt.Sprintf("%s, %s", city, state)) {
		rentControl = true
		rentControlScore = 25.0
	}

	rps := data.RPSScore(state)
	rpsRiskScore := (rps / 5.0) * 30

	politicalRisk := "Low"
	politicalScore := 0.0
	switch data.PoliticalCategory(state) {
	case "democratic_trifecta":
		politicalRisk = "High"
		politicalScore = 20.0
	case "divided":
		politicalRisk = "Moderate"
		politicalScore = 10.0
	}

	uncertainty := data.UncertaintyLevel(state)
	uncertaintyScore := 0.0
	switch uncertainty {
	case "High":
		uncertaintyScore = 15.0
	case "Moderate":
		uncertaintyScore = 7.5
	}

	amiRisk := "Low"
	amiScore := 0.0
	if amiPercentage != nil {
		switch {
		case *amiPercentage <= 50:
			amiRisk = "High"
			amiScore = 15.0
		case *amiPercentage <= 80:
			amiRisk = "Moderate"
			amiScore = 7.5
		}
	}

	score := rentControlScore + rpsRiskScore + politicalScore + uncertaintyScore + amiScore
	if score > 100 {
		score = 100
	}

	interpretation := "Very high regulatory risk - extensive tenant-friendly laws"
	switch {
	case score < 25:
		interpretation = "Low regulatory risk - landlord-friendly environment"
	case score < 50:
		interpretation = "Moderate regulatory risk - balanced regulations"
	case score < 75:
		interpretation = "High regulatory risk - strong tenant protections"
	}

	return &RegulatoryResult{
		RentControl:       rentControl,
		RPSScore:          rps,
		PoliticalRisk:     politicalRisk,
		PolicyUncertainty: uncertainty,
		AMIRisk:           amiRisk,
		Score:             score,
		Interpretation:    interpretation,
		RentControlScore:  rentControlScore,
		RPSRiskScore:      rpsRiskScore,
		PoliticalScore:    politicalScore,
		UncertaintyScore:  uncertaintyScore,
		AMIRiskScore:      amiScore,
	}
}
