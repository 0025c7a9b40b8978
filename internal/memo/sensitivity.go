package memo

import "fmt"

// Scenario is one sensitivity case. Only the total return step reruns; every
// upstream figure is held fixed.
type Scenario struct {
	Name                 string  `json:"name"`
	NetYield             float64 `json:"net_yield"`
	CapitalGain          float64 `json:"capital_gain"`
	CostOfDebt           float64 `json:"cost_of_debt"`
	LoanToValue          float64 `json:"ltv"`
	TotalReturnUnlevered float64 `json:"total_return_unlevered"`
	TotalReturnLevered   float64 `json:"total_return_levered"`
}

// Sensitivity is the scenario table with its interpretation.
type Sensitivity struct {
	Scenarios      map[string]Scenario `json:"scenarios"`
	Interpretation string              `json:"interpretation"`
}

// buildSensitivity reruns the return calculation under the five named
// scenarios: base, optimistic, pessimistic, high rates and low leverage.
func (e *Engine) buildSensitivity(c *computation) Sensitivity {
	baseYield := c.yields.NetYield
	baseAppreciation := c.appreciation.AnnualRate

	scenarios := map[string]Scenario{
		"base": e.scenario("Base Case",
			baseYield, baseAppreciation, c.costOfDebt, c.downPaymentPct),
		"optimistic": e.scenario("Optimistic",
			baseYield+0.5, baseAppreciation+1.0, c.costOfDebt, c.downPaymentPct),
		"pessimistic": e.scenario("Pessimistic",
			baseYield-0.5, baseAppreciation-1.0, c.costOfDebt, c.downPaymentPct),
		"high_rates": e.scenario("High Interest Rates",
			baseYield, baseAppreciation, c.costOfDebt+2.0, c.downPaymentPct),
		"low_leverage": e.scenario("Low Leverage (50% LTV)",
			baseYield, baseAppreciation, c.costOfDebt, 50.0),
	}

	return Sensitivity{
		Scenarios:      scenarios,
		Interpretation: interpretSensitivity(scenarios),
	}
}

func (e *Engine) scenario(name string, netYield, appreciation, costOfDebt, downPaymentPct float64) Scenario {
	totals, err := e.deps.Returns.Total(netYield, appreciation, costOfDebt, downPaymentPct)
	if err != nil {
		// The base inputs already passed validation; scenario deltas cannot
		// invalidate them.
		e.logger.WithError(err).WithField("scenario", name).Warn("Scenario computation failed")
		return Scenario{Name: name, NetYield: netYield, CapitalGain: appreciation}
	}

	return Scenario{
		Name:                 name,
		NetYield:             netYield,
		CapitalGain:          appreciation,
		CostOfDebt:           totals.CostOfDebt,
		LoanToValue:          totals.LoanToValue,
		TotalReturnUnlevered: totals.Unlevered,
		TotalReturnLevered:   totals.Levered,
	}
}

func interpretSensitivity(scenarios map[string]Scenario) string {
	base := scenarios["base"].TotalReturnLevered
	optimistic := scenarios["optimistic"].TotalReturnLevered
	pessimistic := scenarios["pessimistic"].TotalReturnLevered

	upside := optimistic - base
	downside := base - pessimistic

	if downside < upside {
		return fmt.Sprintf(
			"Asymmetric return profile with %.1f%% upside vs %.1f%% downside. Positive risk-reward skew.",
			upside, downside)
	}
	return fmt.Sprintf(
		"Returns range from %.1f%% (pessimistic) to %.1f%% (optimistic). Downside of %.1f%% exceeds upside of %.1f%%.",
		pessimistic, optimistic, downside, upside)
}
