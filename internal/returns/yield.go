package returns

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

// BenchmarkSource resolves the research benchmark row for a (decile,
// geography) cell. A nil result with a nil error means no row exists.
type BenchmarkSource interface {
	Benchmark(decile int, geography string) (*models.RiskBenchmark, error)
}

// YieldCalculator derives net rental yield from gross rent and the decile
// cost structure.
type YieldCalculator struct {
	source BenchmarkSource
	logger *logrus.Logger
}

func NewYieldCalculator(source BenchmarkSource, logger *logrus.Logger) *YieldCalculator {
	return &YieldCalculator{source: source, logger: logger}
}

// YieldBreakdown reports gross yield, each operating cost as a percentage of
// gross rent, and the resulting net yield. NetYield never exceeds GrossYield.
type YieldBreakdown struct {
	GrossYield         float64 `json:"gross_yield"`
	MaintenanceCostPct float64 `json:"maintenance_cost_pct"`
	PropertyTaxPct     float64 `json:"property_tax_pct"`
	TurnoverCostPct    float64 `json:"turnover_cost_pct"`
	DefaultCostPct     float64 `json:"default_cost_pct"`
	ManagementCostPct  float64 `json:"management_cost_pct"`
	TotalCostPct       float64 `json:"total_cost_pct"`
	NetYield           float64 `json:"net_yield"`
}

// Calculate computes the yield breakdown for an annual rent and property
// value. Cost percentages come from the decile benchmark when available;
// otherwise the cross-decile gradients apply. Lower deciles carry heavier
// maintenance, turnover and default loads while management costs rise with
// the tier.
func (c *YieldCalculator) Calculate(annualRent, propertyValue float64, decile int, geography string) (*YieldBreakdown, error) {
	if annualRent <= 0 {
		return nil, &models.ValidationError{Field: "annual_rent", Detail: "must be positive"}
	}
	if propertyValue <= 0 {
		return nil, &models.ValidationError{Field: "property_value", Detail: "must be positive"}
	}
	if decile < 1 || decile > 10 {
		return nil, &models.ValidationError{Field: "decile", Detail: fmt.Sprintf("must be 1-10, got %d", decile)}
	}

	benchmark, err := c.source.Benchmark(decile, geography)
	if err != nil {
		return nil, err
	}
	if benchmark == nil && geography != "US" {
		benchmark, err = c.source.Benchmark(decile, "US")
		if err != nil {
			return nil, err
		}
	}

	step := float64(decile - 1)

	maintenance := 15.0 - step*0.5
	turnover := 6.0 - step*0.4
	defaultCost := 5.0 - step*0.45
	if benchmark != nil {
		if benchmark.MaintenanceCostPct != nil {
			maintenance = *benchmark.MaintenanceCostPct
		}
		if benchmark.TurnoverCostPct != nil {
			turnover = *benchmark.TurnoverCostPct
		}
		if benchmark.DefaultCostPct != nil {
			defaultCost = *benchmark.DefaultCostPct
		}
	}

	management := 6.0 + step*0.35
	propertyTax := (0.011 * propertyValue) / annualRent * 100

	breakdown := &YieldBreakdown{
		GrossYield:         annualRent / propertyValue * 100,
		MaintenanceCostPct: maintenance,
		PropertyTaxPct:     propertyTax,
		TurnoverCostPct:    turnover,
		DefaultCostPct:     defaultCost,
		ManagementCostPct:  management,
	}
	breakdown.TotalCostPct = maintenance + propertyTax + turnover + defaultCost + management
	breakdown.NetYield = breakdown.GrossYield * (1 - breakdown.TotalCostPct/100)

	return breakdown, nil
}
