package hedonic

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aequitas/server/internal/models"
)

type stubSource struct {
	byRegion map[string]*models.RegressionCoefficients
}

func (s *stubSource) Coefficients(region string) (*models.RegressionCoefficients, error) {
	return s.byRegion[region], nil
}

func testCoefficients(region string) *models.RegressionCoefficients {
	return &models.RegressionCoefficients{
		ModelVersion:        "v1.0",
		Region:              region,
		CoefSqft:            0.00045,
		CoefBedrooms:        0.07,
		CoefBathrooms:       0.10,
		CoefAge:             -0.0025,
		CoefTypeMulti:       -0.05,
		CoefTypeCondo:       -0.03,
		Intercept:           6.0,
		NeighborhoodEffects: `{"Austin": 0.12}`,
		TimeEffects:         `{"2024": 0.03}`,
	}
}

func newTestModel(source CoefficientSource) *Model {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewModel(source, logger)
}

func TestPredictRentExponentiatesContributions(t *testing.T) {
	model := newTestModel(&stubSource{byRegion: map[string]*models.RegressionCoefficients{
		"US": testCoefficients("US"),
	}})

	property := models.PropertyCharacteristics{
		SquareFootage: 1000,
		Bedrooms:      2,
		Bathrooms:     1,
		City:          "Austin",
	}

	pred, err := model.PredictRent(property, "US", 2024)
	require.NoError(t, err)

	expectedLog := 6.0 + 1000*0.00045 + 2*0.07 + 1*0.10 + 0.12 + 0.03
	assert.InDelta(t, math.Exp(expectedLog), pred.MonthlyRent, 0.01)
	assert.Equal(t, "v1.0", pred.ModelVersion)
	assert.InDelta(t, 0.12, pred.Contributions["neighborhood"], 1e-9)
}

func TestPredictRentMissingOptionalFeaturesContributeZero(t *testing.T) {
	model := newTestModel(&stubSource{byRegion: map[string]*models.RegressionCoefficients{
		"US": testCoefficients("US"),
	}})

	property := models.PropertyCharacteristics{
		SquareFootage: 800,
		Bedrooms:      1,
	}

	pred, err := model.PredictRent(property, "US", 2030)
	require.NoError(t, err)

	_, hasAge := pred.Contributions["age"]
	assert.False(t, hasAge)
	assert.Zero(t, pred.Contributions["neighborhood"])
	assert.Zero(t, pred.Contributions["time"])
	assert.Greater(t, pred.MonthlyRent, 0.0)
}

func TestPredictRentFallsBackToNationalModel(t *testing.T) {
	national := testCoefficients("US")
	model := newTestModel(&stubSource{byRegion: map[string]*models.RegressionCoefficients{
		"US": national,
	}})

	pred, err := model.PredictRent(models.PropertyCharacteristics{
		SquareFootage: 900,
		Bedrooms:      2,
		Bathrooms:     1,
	}, "TX", 2024)
	require.NoError(t, err)
	assert.Equal(t, "US", pred.Region)
}

func TestPredictRentNoModelAnywhere(t *testing.T) {
	model := newTestModel(&stubSource{byRegion: map[string]*models.RegressionCoefficients{}})

	_, err := model.PredictRent(models.PropertyCharacteristics{
		SquareFootage: 900,
	}, "TX", 2024)
	require.Error(t, err)

	var cfgErr *models.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestPredictRentRejectsNegativeInputs(t *testing.T) {
	model := newTestModel(&stubSource{byRegion: map[string]*models.RegressionCoefficients{
		"US": testCoefficients("US"),
	}})

	_, err := model.PredictRent(models.PropertyCharacteristics{
		SquareFootage: -10,
	}, "US", 2024)

	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "square_footage", valErr.Field)
}

func TestPredictRentPropertyTypeEffects(t *testing.T) {
	model := newTestModel(&stubSource{byRegion: map[string]*models.RegressionCoefficients{
		"US": testCoefficients("US"),
	}})

	base := models.PropertyCharacteristics{SquareFootage: 1000, Bedrooms: 2, Bathrooms: 1}

	single, err := model.PredictRent(base, "US", 2024)
	require.NoError(t, err)

	multi := base
	multi.PropertyType = "multi_family"
	multiPred, err := model.PredictRent(multi, "US", 2024)
	require.NoError(t, err)

	assert.Less(t, multiPred.MonthlyRent, single.MonthlyRent)
}
