package returns

import (
	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

// ReturnCalculator combines income and appreciation into total return and
// applies financing leverage.
type ReturnCalculator struct {
	leverageCap float64
	logger      *logrus.Logger
}

// NewReturnCalculator builds a calculator with a ceiling on the leverage
// multiplier LTV/(1-LTV). The cap keeps extreme financing terms from
// producing runaway levered figures.
func NewReturnCalculator(leverageCap float64, logger *logrus.Logger) *ReturnCalculator {
	return &ReturnCalculator{leverageCap: leverageCap, logger: logger}
}

// TotalReturn reports unlevered and levered annual returns in percent.
type TotalReturn struct {
	Unlevered          float64 `json:"unlevered"`
	Levered            float64 `json:"levered"`
	LeverageEffect     float64 `json:"leverage_effect"`
	CostOfDebt         float64 `json:"cost_of_debt"`
	LoanToValue        float64 `json:"loan_to_value"`
	LeverageMultiplier float64 `json:"leverage_multiplier"`
	MultiplierCapped   bool    `json:"multiplier_capped"`
}

// Total computes unlevered return as net yield plus appreciation and levers
// it with the classic identity: levered = unlevered + (unlevered - debt
// cost) * LTV/(1-LTV). When unlevered return equals the cost of debt,
// leverage has no effect.
func (c *ReturnCalculator) Total(netYield, appreciationRate, costOfDebt, downPaymentPct float64) (*TotalReturn, error) {
	if downPaymentPct <= 0 || downPaymentPct > 100 {
		return nil, &models.ValidationError{Field: "down_payment_percent", Detail: "must be in (0, 100]"}
	}
	if costOfDebt < 0 {
		return nil, &models.ValidationError{Field: "cost_of_debt", Detail: "must not be negative"}
	}

	unlevered := netYield + appreciationRate
	ltv := 1 - downPaymentPct/100

	multiplier := 0.0
	capped := false
	if ltv > 0 && ltv < 1 {
		multiplier = ltv / (1 - ltv)
		if multiplier > c.leverageCap {
			multiplier = c.leverageCap
			capped = true
			c.logger.WithFields(logrus.Fields{
				"ltv": ltv,
				"cap": c.leverageCap,
			}).Warn("Leverage multiplier capped")
		}
	}

	levered := unlevered + (unlevered-costOfDebt)*multiplier

	return &TotalReturn{
		Unlevered:          unlevered,
		Levered:            levered,
		LeverageEffect:     levered - unlevered,
		CostOfDebt:         costOfDebt,
		LoanToValue:        ltv,
		LeverageMultiplier: multiplier,
		MultiplierCapped:   capped,
	}, nil
}
