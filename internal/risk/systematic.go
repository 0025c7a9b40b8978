package risk

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"aequitas/server/config"
	"aequitas/server/internal/models"
)

// BenchmarkSource resolves the research benchmark row for a (decile,
// geography) cell. A nil result with a nil error means no row exists.
type BenchmarkSource interface {
	Benchmark(decile int, geography string) (*models.RiskBenchmark, error)
}

// Assessor scores the risk dimensions of a property and combines them into
// the composite. The reference tables are a read-only snapshot taken at
// construction.
type Assessor struct {
	benchmarks BenchmarkSource
	data       *config.EngineData
	logger     *logrus.Logger
}

func NewAssessor(benchmarks BenchmarkSource, data *config.EngineData, logger *logrus.Logger) *Assessor {
	return &Assessor{benchmarks: benchmarks, data: data, logger: logger}
}

// SystematicResult quantifies market correlation for a rent tier. Lower
// deciles carry lower betas: budget rentals track economic cycles less than
// premium ones.
type SystematicResult struct {
	BetaGDP             float64 `json:"beta_gdp"`
	BetaStocks          float64 `json:"beta_stocks"`
	CashFlowVolatility  float64 `json:"cash_flow_volatility"`
	Cyclicality         string  `json:"cash_flow_cyclicality"`
	Score               float64 `json:"systematic_risk_score"`
	Interpretation      string  `json:"interpretation"`
	BetaComponent       float64 `json:"beta_component"`
	VolatilityComponent float64 `json:"volatility_component"`
}

// Systematic scores market correlation for a decile. Benchmark betas win
// when present; otherwise the decile gradient estimates them.
func (a *Assessor) Systematic(decile int, geography string) (*SystematicResult, error) {
	if decile < 1 || decile > 10 {
		return nil, &models.ValidationError{Field: "decile", Detail: fmt.Sprintf("must be 1-10, got %d", decile)}
	}

	benchmark, err := a.benchmarks.Benchmark(decile, geography)
	if err != nil {
		return nil, err
	}
	if benchmark == nil && geography != "US" {
		benchmark, err = a.benchmarks.Benchmark(decile, "US")
		if err != nil {
			return nil, err
		}
	}

	step := float64(decile - 1)

	betaGDP := 0.20 + step*0.044
	if benchmark != nil && benchmark.SystematicRiskBeta != nil {
		betaGDP = *benchmark.SystematicRiskBeta
	}
	betaStocks := betaGDP * 1.4

	volatility := 8.0 + step*1.3
	if benchmark != nil && benchmark.CashFlowVolatility != nil {
		volatility = *benchmark.CashFlowVolatility
	}

	cyclicality := "High"
	switch {
	case betaGDP < 0.30:
		cyclicality = "Low"
	case betaGDP < 0.45:
		cyclicality = "Moderate"
	}

	betaComponent := (betaGDP / 0.70) * 50
	volatilityComponent := (volatility / 20) * 50
	score := betaComponent + volatilityComponent

	interpretation := "Higher than average systematic risk - highly correlated with economic cycles"
	switch {
	case score < 35:
		interpretation = "Lower than average systematic risk - less correlated with economic cycles"
	case score < 55:
		interpretation = "Average systematic risk - moderate correlation with market conditions"
	}

	return &SystematicResult{
		BetaGDP:             betaGDP,
		BetaStocks:          betaStocks,
		CashFlowVolatility:  volatility,
		Cyclicality:         cyclicality,
		Score:               score,
		Interpretation:      interpretation,
		BetaComponent:       betaComponent,
		VolatilityComponent: volatilityComponent,
	}, nil
}
