package arbitrage

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aequitas/server/internal/models"
)

func newTestScorer() *Scorer {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewScorer(logger)
}

func floatPtr(v float64) *float64 { return &v }

func TestScoreLowTierSmallMultifamilyIsHighOpportunity(t *testing.T) {
	scorer := newTestScorer()

	result, err := scorer.Score(2, 800_000, 900, models.PropertyCharacteristics{NumberOfUnits: 8})
	require.NoError(t, err)

	assert.Equal(t, "High", result.OpportunityLevel)
	assert.Greater(t, result.RenterConstraintScore, 80.0)
	assert.Less(t, result.InstitutionalConstraintScore, 40.0)
	assert.Equal(t, "Medium Landlord Portfolio", result.RecommendedInvestorType)
}

func TestScorePremiumTowerIsInstitutionalTerritory(t *testing.T) {
	scorer := newTestScorer()

	result, err := scorer.Score(10, 50_000_000, 4500, models.PropertyCharacteristics{NumberOfUnits: 200})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.InstitutionalConstraintScore, 65.0)
	assert.Equal(t, "Institutional Fund", result.RecommendedInvestorType)
	assert.Less(t, result.OpportunityScore, 50.0)
}

func TestScoreOpportunityFallsWithDecile(t *testing.T) {
	scorer := newTestScorer()

	low, err := scorer.Score(2, 500_000, 900, models.PropertyCharacteristics{NumberOfUnits: 6})
	require.NoError(t, err)
	high, err := scorer.Score(9, 500_000, 3000, models.PropertyCharacteristics{NumberOfUnits: 6})
	require.NoError(t, err)

	assert.Greater(t, low.OpportunityScore, high.OpportunityScore)
}

func TestScoreRentBurdenRaisesRenterConstraint(t *testing.T) {
	scorer := newTestScorer()

	base := models.PropertyCharacteristics{NumberOfUnits: 6}
	burdened := models.PropertyCharacteristics{NumberOfUnits: 6, MedianIncome: floatPtr(30000)}

	plain, err := scorer.Score(5, 500_000, 1200, base)
	require.NoError(t, err)
	heavy, err := scorer.Score(5, 500_000, 1200, burdened)
	require.NoError(t, err)

	// $14,400 annual rent on $30,000 income is far above the burden line.
	assert.Greater(t, heavy.RenterConstraintScore, plain.RenterConstraintScore)
}

func TestScoreClampsToHundred(t *testing.T) {
	scorer := newTestScorer()

	result, err := scorer.Score(1, 400_000, 700, models.PropertyCharacteristics{
		NumberOfUnits:    10,
		MedianIncome:     floatPtr(20000),
		PriceToRentRatio: floatPtr(30),
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, result.OpportunityScore, 100.0)
	assert.LessOrEqual(t, result.RenterConstraintScore, 100.0)
}

func TestScoreRejectsBadInputs(t *testing.T) {
	scorer := newTestScorer()

	_, err := scorer.Score(0, 500_000, 1200, models.PropertyCharacteristics{})
	assert.Error(t, err)

	_, err = scorer.Score(5, 0, 1200, models.PropertyCharacteristics{})
	assert.Error(t, err)

	_, err = scorer.Score(5, 500_000, 0, models.PropertyCharacteristics{})
	assert.Error(t, err)
}
