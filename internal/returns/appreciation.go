package returns

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

// AppreciationCalculator projects property value growth from the decile's
// capital gain expectation.
type AppreciationCalculator struct {
	source BenchmarkSource
	logger *logrus.Logger
}

func NewAppreciationCalculator(source BenchmarkSource, logger *logrus.Logger) *AppreciationCalculator {
	return &AppreciationCalculator{source: source, logger: logger}
}

// Projection holds the annual appreciation rate and compounded price points.
type Projection struct {
	AnnualRate   float64 `json:"annual_rate"`
	RateSource   string  `json:"rate_source"`
	PriceYr1     float64 `json:"price_yr1"`
	PriceYr5     float64 `json:"price_yr5"`
	PriceYr10    float64 `json:"price_yr10"`
	PriceHorizon float64 `json:"price_horizon"`
}

// Project compounds the property value over the holding horizon. The rate is
// the midpoint of the benchmark's capital gain range when one exists; the
// synthetic gradient applies otherwise, rising with the decile.
func (c *AppreciationCalculator) Project(propertyValue float64, decile int, geography string, horizonYears int) (*Projection, error) {
	if propertyValue <= 0 {
		return nil, &models.ValidationError{Field: "property_value", Detail: "must be positive"}
	}
	if decile < 1 || decile > 10 {
		return nil, &models.ValidationError{Field: "decile", Detail: fmt.Sprintf("must be 1-10, got %d", decile)}
	}
	if horizonYears < 1 {
		return nil, &models.ValidationError{Field: "holding_period", Detail: "must be at least 1 year"}
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

	rate := 1.5 + float64(decile-1)*0.28
	source := "synthetic"
	if benchmark != nil && benchmark.CapitalGainMin != nil && benchmark.CapitalGainMax != nil {
		rate = (*benchmark.CapitalGainMin + *benchmark.CapitalGainMax) / 2
		source = "benchmark"
	}

	compound := func(years int) float64 {
		return propertyValue * math.Pow(1+rate/100, float64(years))
	}

	return &Projection{
		AnnualRate:   rate,
		RateSource:   source,
		PriceYr1:     compound(1),
		PriceYr5:     compound(5),
		PriceYr10:    compound(10),
		PriceHorizon: compound(horizonYears),
	}, nil
}
