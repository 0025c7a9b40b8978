package returns

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aequitas/server/internal/models"
)

type stubBenchmarks struct {
	rows map[int]*models.RiskBenchmark
}

func (s *stubBenchmarks) Benchmark(decile int, geography string) (*models.RiskBenchmark, error) {
	if geography != "US" {
		return nil, nil
	}
	return s.rows[decile], nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestYieldNetNeverExceedsGross(t *testing.T) {
	calc := NewYieldCalculator(&stubBenchmarks{}, quietLogger())

	for decile := 1; decile <= 10; decile++ {
		breakdown, err := calc.Calculate(24000, 300000, decile, "US")
		require.NoError(t, err)
		assert.LessOrEqual(t, breakdown.NetYield, breakdown.GrossYield,
			"net yield must not exceed gross for decile %d", decile)
	}
}

func TestYieldUsesBenchmarkCosts(t *testing.T) {
	maintenance := 12.0
	turnover := 4.0
	defaultCost := 3.0
	calc := NewYieldCalculator(&stubBenchmarks{rows: map[int]*models.RiskBenchmark{
		3: {
			RentDecile:         3,
			Geography:          "US",
			MaintenanceCostPct: &maintenance,
			TurnoverCostPct:    &turnover,
			DefaultCostPct:     &defaultCost,
		},
	}}, quietLogger())

	breakdown, err := calc.Calculate(24000, 300000, 3, "US")
	require.NoError(t, err)

	assert.Equal(t, 12.0, breakdown.MaintenanceCostPct)
	assert.Equal(t, 4.0, breakdown.TurnoverCostPct)
	assert.Equal(t, 3.0, breakdown.DefaultCostPct)
}

func TestYieldCostGradients(t *testing.T) {
	calc := NewYieldCalculator(&stubBenchmarks{}, quietLogger())

	low, err := calc.Calculate(24000, 300000, 1, "US")
	require.NoError(t, err)
	high, err := calc.Calculate(24000, 300000, 10, "US")
	require.NoError(t, err)

	assert.Greater(t, low.MaintenanceCostPct, high.MaintenanceCostPct)
	assert.Greater(t, low.DefaultCostPct, high.DefaultCostPct)
	assert.Less(t, low.ManagementCostPct, high.ManagementCostPct)
}

func TestYieldRejectsBadInputs(t *testing.T) {
	calc := NewYieldCalculator(&stubBenchmarks{}, quietLogger())

	_, err := calc.Calculate(0, 300000, 5, "US")
	assert.Error(t, err)

	_, err = calc.Calculate(24000, 0, 5, "US")
	assert.Error(t, err)

	_, err = calc.Calculate(24000, 300000, 11, "US")
	assert.Error(t, err)
}

func TestAppreciationCompoundsMonotonically(t *testing.T) {
	calc := NewAppreciationCalculator(&stubBenchmarks{}, quietLogger())

	proj, err := calc.Project(200000, 5, "US", 7)
	require.NoError(t, err)

	assert.Greater(t, proj.PriceYr1, 200000.0)
	assert.Greater(t, proj.PriceYr5, proj.PriceYr1)
	assert.Greater(t, proj.PriceYr10, proj.PriceYr5)
	assert.Equal(t, "synthetic", proj.RateSource)
}

func TestAppreciationUsesBenchmarkMidpoint(t *testing.T) {
	gainMin := 2.0
	gainMax := 4.0
	calc := NewAppreciationCalculator(&stubBenchmarks{rows: map[int]*models.RiskBenchmark{
		6: {RentDecile: 6, Geography: "US", CapitalGainMin: &gainMin, CapitalGainMax: &gainMax},
	}}, quietLogger())

	proj, err := calc.Project(200000, 6, "US", 5)
	require.NoError(t, err)

	assert.Equal(t, 3.0, proj.AnnualRate)
	assert.Equal(t, "benchmark", proj.RateSource)
}

func TestTotalReturnLeverageIdentity(t *testing.T) {
	calc := NewReturnCalculator(9.0, quietLogger())

	// $2M property yielding 6% net with 3% appreciation, 75% LTV at 6.5%.
	total, err := calc.Total(6.0, 3.0, 6.5, 25.0)
	require.NoError(t, err)

	assert.InDelta(t, 9.0, total.Unlevered, 1e-9)
	assert.InDelta(t, 16.5, total.Levered, 1e-9)
	assert.InDelta(t, 0.75, total.LoanToValue, 1e-9)
	assert.False(t, total.MultiplierCapped)
}

func TestTotalReturnBreakevenLeverageIsNeutral(t *testing.T) {
	calc := NewReturnCalculator(9.0, quietLogger())

	total, err := calc.Total(4.0, 2.5, 6.5, 25.0)
	require.NoError(t, err)

	assert.InDelta(t, total.Unlevered, total.Levered, 1e-9)
	assert.InDelta(t, 0.0, total.LeverageEffect, 1e-9)
}

func TestTotalReturnCapsMultiplier(t *testing.T) {
	calc := NewReturnCalculator(9.0, quietLogger())

	// 5% down implies a 19x multiplier before the cap.
	total, err := calc.Total(6.0, 3.0, 6.5, 5.0)
	require.NoError(t, err)

	assert.True(t, total.MultiplierCapped)
	assert.InDelta(t, 9.0, total.LeverageMultiplier, 1e-9)
	assert.InDelta(t, 9.0+(9.0-6.5)*9.0, total.Levered, 1e-9)
}

func TestTotalReturnAllCashHasNoLeverage(t *testing.T) {
	calc := NewReturnCalculator(9.0, quietLogger())

	total, err := calc.Total(6.0, 3.0, 6.5, 100.0)
	require.NoError(t, err)

	assert.Zero(t, total.LeverageMultiplier)
	assert.Equal(t, total.Unlevered, total.Levered)
}

func TestTotalReturnRejectsBadFinancing(t *testing.T) {
	calc := NewReturnCalculator(9.0, quietLogger())

	_, err := calc.Total(6.0, 3.0, 6.5, 0)
	assert.Error(t, err)

	_, err = calc.Total(6.0, 3.0, -1, 25.0)
	assert.Error(t, err)
}
