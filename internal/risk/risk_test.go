package risk

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aequitas/server/config"
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

func newTestAssessor(rows map[int]*models.RiskBenchmark) *Assessor {
	return newTestAssessorWithData(rows, config.DefaultEngineData())
}

func newTestAssessorWithData(rows map[int]*models.RiskBenchmark, data *config.EngineData) *Assessor {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewAssessor(&stubBenchmarks{rows: rows}, data, logger)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestSystematicBetaRisesWithDecile(t *testing.T) {
	assessor := newTestAssessor(nil)

	low, err := assessor.Systematic(1, "US")
	require.NoError(t, err)
	high, err := assessor.Systematic(10, "US")
	require.NoError(t, err)

	assert.Less(t, low.BetaGDP, high.BetaGDP)
	assert.Less(t, low.Score, high.Score)
	assert.Equal(t, "Low", low.Cyclicality)
	assert.Equal(t, "High", high.Cyclicality)
}

func TestSystematicPrefersBenchmarkBeta(t *testing.T) {
	assessor := newTestAssessor(map[int]*models.RiskBenchmark{
		5: {RentDecile: 5, Geography: "US", SystematicRiskBeta: floatPtr(0.50), CashFlowVolatility: floatPtr(14.0)},
	})

	result, err := assessor.Systematic(5, "US")
	require.NoError(t, err)

	assert.InDelta(t, 0.50, result.BetaGDP, 1e-9)
	assert.InDelta(t, 0.70, result.BetaStocks, 1e-9)
	assert.InDelta(t, 14.0, result.CashFlowVolatility, 1e-9)
}

func TestSystematicRejectsBadDecile(t *testing.T) {
	assessor := newTestAssessor(nil)

	_, err := assessor.Systematic(0, "US")
	assert.Error(t, err)

	_, err = assessor.Systematic(11, "US")
	assert.Error(t, err)
}

func TestRegulatoryRentControlCityOverridesState(t *testing.T) {
	assessor := newTestAssessor(nil)

	stateOnly := assessor.Regulatory("CA", "Fresno", nil)
	cityMatch := assessor.Regulatory("CA", "San Francisco", nil)

	assert.True(t, stateOnly.RentControl)
	assert.Equal(t, 20.0, stateOnly.RentControlScore)
	assert.True(t, cityMatch.RentControl)
	assert.Equal(t, 25.0, cityMatch.RentControlScore)
}

func TestRegulatoryLandlordFriendlyState(t *testing.T) {
	assessor := newTestAssessor(nil)

	result := assessor.Regulatory("TX", "Houston", nil)

	assert.False(t, result.RentControl)
	assert.Equal(t, "Low", result.PoliticalRisk)
	assert.Less(t, result.Score, 25.0)
}

func TestRegulatoryAMIProximity(t *testing.T) {
	assessor := newTestAssessor(nil)

	deep := assessor.Regulatory("TX", "", floatPtr(45))
	moderate := assessor.Regulatory("TX", "", floatPtr(70))
	market := assessor.Regulatory("TX", "", floatPtr(120))

	assert.Equal(t, "High", deep.AMIRisk)
	assert.Equal(t, 15.0, deep.AMIRiskScore)
	assert.Equal(t, "Moderate", moderate.AMIRisk)
	assert.Equal(t, "Low", market.AMIRisk)
}

func TestRegulatoryReadsInjectedReferenceData(t *testing.T) {
	data := &config.EngineData{}
	data.RentControl.States = []string{"ZZ"}
	data.RenterProtection.StateScores = map[string]float64{"ZZ": 5.0}
	data.RenterProtection.DefaultScore = 1.0
	data.PoliticalControl.DemocraticTrifecta = []string{"ZZ"}
	data.PolicyUncertainty.HighStates = []string{"ZZ"}

	assessor := newTestAssessorWithData(nil, data)

	result := assessor.Regulatory("ZZ", "", nil)

	assert.True(t, result.RentControl)
	assert.InDelta(t, 5.0, result.RPSScore, 1e-9)
	assert.Equal(t, "High", result.PoliticalRisk)
	assert.Equal(t, "High", result.PolicyUncertainty)

	neutral := assessor.Regulatory("CA", "", nil)
	assert.False(t, neutral.RentControl, "only the injected tables apply")
	assert.InDelta(t, 1.0, neutral.RPSScore, 1e-9)
}

func TestRegulatoryScoreCappedAtHundred(t *testing.T) {
	assessor := newTestAssessor(nil)

	result := assessor.Regulatory("CA", "San Francisco", floatPtr(40))

	assert.LessOrEqual(t, result.Score, 100.0)
}

func TestIdiosyncraticDefaultsForUnknownFields(t *testing.T) {
	assessor := newTestAssessor(nil)

	result := assessor.Idiosyncratic(models.PropertyCharacteristics{NumberOfUnits: 1})

	assert.Equal(t, 10.0, result.AgeScore)
	assert.Equal(t, 12.5, result.ConditionScore)
	assert.Equal(t, 30.0, result.ConcentrationScore)
	assert.Equal(t, 5.0, result.OccupancyScore)
	assert.Equal(t, 10.0, result.DiversificationScore)
}

func TestIdiosyncraticLargeWellRunPortfolio(t *testing.T) {
	assessor := newTestAssessor(nil)

	yearBuilt := 2020
	occupancy := 97.0
	result := assessor.Idiosyncratic(models.PropertyCharacteristics{
		YearBuilt:     &yearBuilt,
		Condition:     "excellent",
		NumberOfUnits: 120,
		OccupancyRate: &occupancy,
	})

	assert.Less(t, result.Score, 25.0)
	assert.Equal(t, "Low property-specific risk - well-maintained, diversified", result.Interpretation)
}

func TestIdiosyncraticExplicitConcentration(t *testing.T) {
	assessor := newTestAssessor(nil)

	result := assessor.Idiosyncratic(models.PropertyCharacteristics{
		NumberOfUnits:          40,
		TenantConcentrationPct: floatPtr(50),
	})

	assert.Equal(t, 15.0, result.ConcentrationScore)
}

func TestCompositeWeightsSumToHundred(t *testing.T) {
	assessor := newTestAssessor(nil)

	withClimate := assessor.Composite(40, 40, 40, 40, true, 5)
	assert.Equal(t, 100, withClimate.SystematicWeight+withClimate.RegulatoryWeight+
		withClimate.IdiosyncraticWeight+withClimate.ClimateWeight)
	assert.InDelta(t, 40.0, withClimate.Score, 1e-9)

	withoutClimate := assessor.Composite(40, 40, 40, 0, false, 5)
	assert.Equal(t, 100, withoutClimate.SystematicWeight+withoutClimate.RegulatoryWeight+
		withoutClimate.IdiosyncraticWeight)
	assert.Zero(t, withoutClimate.ClimateWeight)
	assert.InDelta(t, 40.0, withoutClimate.Score, 1e-9)
}

func TestCompositeLevels(t *testing.T) {
	assessor := newTestAssessor(nil)

	assert.Equal(t, "Low", assessor.Composite(20, 20, 20, 20, true, 2).Level)
	assert.Equal(t, "Medium", assessor.Composite(45, 45, 45, 45, true, 5).Level)
	assert.Equal(t, "High", assessor.Composite(60, 60, 60, 60, true, 8).Level)
	assert.Equal(t, "Very High", assessor.Composite(90, 90, 90, 90, true, 10).Level)
}

func TestCompositeValidationAgainstResearch(t *testing.T) {
	assessor := newTestAssessor(nil)

	lowTier := assessor.Composite(30, 30, 30, 30, true, 2)
	assert.Contains(t, lowTier.ValidationVsResearch, "Aligned")

	highTier := assessor.Composite(60, 60, 60, 60, true, 9)
	assert.Contains(t, highTier.ValidationVsResearch, "Aligned")

	surprising := assessor.Composite(70, 70, 70, 70, true, 2)
	assert.Contains(t, surprising.ValidationVsResearch, "Higher than expected")
}

func TestIdiosyncraticAgeBands(t *testing.T) {
	cases := []struct {
		age   int
		score float64
	}{
		{5, 2.0},
		{20, 5.0},
		{40, 10.0},
		{60, 15.0},
		{90, 20.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.score, ageScore(intPtr(tc.age)), "age %d", tc.age)
	}
}
