package risk

import (
	"fmt"
	"sort"
)

// KeyRisk is one identified risk factor with its severity.
type KeyRisk struct {
	Category string `json:"category"`
	Concern  string `json:"concern"`
	Severity string `json:"severity"`
}

var severityRank = map[string]int{"High": 3, "Moderate": 2, "Low": 1}

// KeyRisks identifies the top three risk factors across the dimensions.
func KeyRisks(systematic *SystematicResult, regulatory *RegulatoryResult, idiosyncratic *IdiosyncraticResult) []KeyRisk {
	risks := []KeyRisk{}

	if systematic.Score > 60 {
		risks = append(risks, KeyRisk{
			Category: "Systematic",
			Concern:  fmt.Sprintf("High market correlation (β=%.2f)", systematic.BetaGDP),
			Severity: "High",
		})
	}

	if regulatory.RentControl {
		severity := "Moderate"
		if regulatory.RPSScore > 3.0 {
			severity = "High"
		}
		risks = append(risks, KeyRisk{
			Category: "Regulatory",
			Concern:  "Rent control jurisdiction",
			Severity: severity,
		})
	} else if regulatory.Score > 60 {
		risks = append(risks, KeyRisk{
			Category: "Regulatory",
			Concern:  fmt.Sprintf("High regulatory environment (RPS=%.1f)", regulatory.RPSScore),
			Severity: "Moderate",
		})
	}

	if idiosyncratic.ConcentrationScore > 20 {
		risks = append(risks, KeyRisk{
			Category: "Idiosyncratic",
			Concern:  "High tenant concentration",
			Severity: "Moderate",
		})
	}

	if idiosyncratic.ConditionScore > 15 {
		condition := idiosyncratic.Condition
		if condition == "" {
			condition = "Unknown"
		}
		risks = append(risks, KeyRisk{
			Category: "Idiosyncratic",
			Concern:  fmt.Sprintf("Property condition: %s", condition),
			Severity: "Moderate",
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return severityRank[risks[i].Severity] > severityRank[risks[j].Severity]
	})
	if len(risks) > 3 {
		risks = risks[:3]
	}
	return risks
}

// Mitigations suggests up to five mitigation strategies for the identified
// risk profile.
func Mitigations(systematic *SystematicResult, regulatory *RegulatoryResult, idiosyncratic *IdiosyncraticResult, decile int) []string {
	suggestions := []string{}

	if systematic.Score > 50 {
		suggestions = append(suggestions,
			"Consider longer-term fixed-rate debt to hedge interest rate risk",
			"Maintain higher cash reserves for economic downturns")
	}

	if regulatory.RentControl {
		suggestions = append(suggestions,
			"Budget for below-market rent increases (typically 3-5% caps)",
			"Focus on property improvements that qualify for rent increase exemptions")
	}
	if regulatory.PoliticalRisk == "High" {
		suggestions = append(suggestions,
			"Monitor legislative changes and tenant protection proposals")
	}

	if idiosyncratic.ConcentrationScore > 20 {
		suggestions = append(suggestions,
			"Prioritize tenant retention and lease renewals",
			"Build contingency reserves for turnover costs")
	}
	if idiosyncratic.AgeScore > 15 {
		suggestions = append(suggestions,
			"Schedule preventive maintenance to avoid major CapEx surprises",
			"Consider a property condition assessment (PCA) report")
	}

	if decile <= 3 {
		suggestions = append(suggestions,
			"Leverage lower systematic risk for favorable financing terms",
			"Highlight lower volatility to institutional investors")
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}
