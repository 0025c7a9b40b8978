package benchmark

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

// Source resolves the research benchmark row for a (decile, geography) cell.
type Source interface {
	Benchmark(decile int, geography string) (*models.RiskBenchmark, error)
}

// Comparator positions computed metrics against the research ranges for the
// property's decile.
type Comparator struct {
	source Source
	logger *logrus.Logger
}

func NewComparator(source Source, logger *logrus.Logger) *Comparator {
	return &Comparator{source: source, logger: logger}
}

// Benchmark range positions.
const (
	PositionAbove   = "Above"
	PositionWithin  = "Within"
	PositionBelow   = "Below"
	PositionUnknown = "Unknown"
)

// Comparison places net yield and total return against the decile ranges.
type Comparison struct {
	YieldPosition  string   `json:"vs_benchmark_yield"`
	ReturnPosition string   `json:"vs_benchmark_return"`
	NetYieldMin    *float64 `json:"net_yield_min"`
	NetYieldMax    *float64 `json:"net_yield_max"`
	TotalReturnMin *float64 `json:"total_return_min"`
	TotalReturnMax *float64 `json:"total_return_max"`
}

// Compare looks up the decile benchmark and positions the computed figures
// against it. Missing ranges yield Unknown positions rather than errors.
func (c *Comparator) Compare(netYield, totalReturn float64, decile int, geography string) (*Comparison, error) {
	if decile < 1 || decile > 10 {
		return nil, &models.ValidationError{Field: "decile", Detail: fmt.Sprintf("must be 1-10, got %d", decile)}
	}

	row, err := c.source.Benchmark(decile, geography)
	if err != nil {
		return nil, err
	}
	if row == nil && geography != "US" {
		row, err = c.source.Benchmark(decile, "US")
		if err != nil {
			return nil, err
		}
	}

	comparison := &Comparison{
		YieldPosition:  PositionUnknown,
		ReturnPosition: PositionUnknown,
	}
	if row == nil {
		c.logger.WithFields(logrus.Fields{
			"decile":    decile,
			"geography": geography,
		}).Debug("No benchmark row for comparison")
		return comparison, nil
	}

	comparison.NetYieldMin = row.NetYieldMin
	comparison.NetYieldMax = row.NetYieldMax
	comparison.TotalReturnMin = row.TotalReturnMin
	comparison.TotalReturnMax = row.TotalReturnMax
	comparison.YieldPosition = position(netYield, row.NetYieldMin, row.NetYieldMax)
	comparison.ReturnPosition = position(totalReturn, row.TotalReturnMin, row.TotalReturnMax)

	return comparison, nil
}

func position(value float64, min, max *float64) string {
	if min == nil || max == nil {
		return PositionUnknown
	}
	switch {
	case value > *max:
		return PositionAbove
	case value < *min:
		return PositionBelow
	}
	return PositionWithin
}
