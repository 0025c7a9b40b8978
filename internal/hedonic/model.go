package hedonic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

// CoefficientSource resolves the newest fitted coefficient set for a region.
// A nil result with a nil error means no model exists for that region.
type CoefficientSource interface {
	Coefficients(region string) (*models.RegressionCoefficients, error)
}

// Model predicts fundamental rent from property characteristics using a
// log-linear hedonic regression.
type Model struct {
	source CoefficientSource
	logger *logrus.Logger
}

func NewModel(source CoefficientSource, logger *logrus.Logger) *Model {
	return &Model{source: source, logger: logger}
}

// Prediction is the exponentiated model output plus the per-feature
// log-space contributions that produced it.
type Prediction struct {
	MonthlyRent   float64            `json:"monthly_rent"`
	ModelVersion  string             `json:"model_version"`
	Region        string             `json:"region"`
	Contributions map[string]float64 `json:"contributions"`
}

// PredictRent evaluates the hedonic model for a property. Regions without a
// fitted model fall back to the national coefficient set; when neither
// exists the caller gets a ConfigurationError. Optional features that are
// absent contribute zero.
func (m *Model) PredictRent(property models.PropertyCharacteristics, region string, year int) (*Prediction, error) {
	if property.SquareFootage < 0 {
		return nil, &models.ValidationError{Field: "square_footage", Detail: "must not be negative"}
	}
	if property.Bedrooms < 0 {
		return nil, &models.ValidationError{Field: "bedrooms", Detail: "must not be negative"}
	}
	if property.Bathrooms < 0 {
		return nil, &models.ValidationError{Field: "bathrooms", Detail: "must not be negative"}
	}

	coef, err := m.resolveCoefficients(region)
	if err != nil {
		return nil, err
	}

	contributions := map[string]float64{
		"intercept":    coef.Intercept,
		"square_feet":  float64(property.SquareFootage) * coef.CoefSqft,
		"bedrooms":     float64(property.Bedrooms) * coef.CoefBedrooms,
		"bathrooms":    property.Bathrooms * coef.CoefBathrooms,
		"neighborhood": coef.NeighborhoodEffect(property.City),
		"time":         coef.TimeEffect(strconv.Itoa(year)),
	}

	if age := property.Age(); age != nil {
		contributions["age"] = float64(*age) * coef.CoefAge
	}
	if property.EPCScore != nil {
		contributions["epc"] = *property.EPCScore * coef.CoefEPC
	}
	contributions["property_type"] = typeEffect(coef, property.PropertyType)

	logRent := 0.0
	for _, v := range contributions {
		logRent += v
	}

	rent := math.Exp(logRent)
	if math.IsInf(rent, 0) || math.IsNaN(rent) {
		return nil, &models.ConfigurationError{
			Subject: "hedonic coefficients",
			Detail:  fmt.Sprintf("model %s produced a non-finite rent", coef.ModelVersion),
		}
	}

	m.logger.WithFields(logrus.Fields{
		"region":        coef.Region,
		"model_version": coef.ModelVersion,
		"rent":          rent,
	}).Debug("Predicted fundamental rent")

	return &Prediction{
		MonthlyRent:   rent,
		ModelVersion:  coef.ModelVersion,
		Region:        coef.Region,
		Contributions: contributions,
	}, nil
}

func (m *Model) resolveCoefficients(region string) (*models.RegressionCoefficients, error) {
	coef, err := m.source.Coefficients(region)
	if err != nil {
		return nil, err
	}
	if coef == nil && region != "US" {
		m.logger.WithField("region", region).Debug("No regional model, using national coefficients")
		coef, err = m.source.Coefficients("US")
		if err != nil {
			return nil, err
		}
	}
	if coef == nil {
		return nil, &models.ConfigurationError{
			Subject: "hedonic coefficients",
			Detail:  fmt.Sprintf("no fitted model for region %q or US", region),
		}
	}
	return coef, nil
}

func typeEffect(coef *models.RegressionCoefficients, propertyType string) float64 {
	switch strings.ToLower(propertyType) {
	case "multi_family", "multifamily", "multi-family":
		return coef.CoefTypeMulti
	case "condo", "condominium":
		return coef.CoefTypeCondo
	}
	return 0
}
