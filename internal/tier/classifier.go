package tier

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"aequitas/server/config"
	"aequitas/server/internal/models"
)

// ThresholdSource resolves the latest decile table for a market slice. A nil
// result with a nil error means no table exists for that slice.
type ThresholdSource interface {
	Thresholds(geography string, bedrooms *int) (*models.DecileThresholds, error)
}

// Classifier places a monthly rent into its market decile. The reference
// tables are a read-only snapshot taken at construction.
type Classifier struct {
	source ThresholdSource
	data   *config.EngineData
	logger *logrus.Logger
}

func NewClassifier(source ThresholdSource, data *config.EngineData, logger *logrus.Logger) *Classifier {
	return &Classifier{source: source, data: data, logger: logger}
}

// Classification is the decile placement for one rent observation.
type Classification struct {
	Decile              int     `json:"decile"`
	TierLabel           string  `json:"tier_label"`
	Percentile          float64 `json:"percentile"`
	Category            string  `json:"category"`
	ExpectedReturnRange string  `json:"expected_return_range"`
	Geography           string  `json:"geography"`
	UsedDefaultTable    bool    `json:"used_default_table"`
}

// Classify places a rent into a decile using the most specific threshold
// table available. The fallback chain widens the slice step by step and ends
// at the compiled default table, flagged so callers can surface the reduced
// confidence. Classification is idempotent for a fixed table.
func (c *Classifier) Classify(rent float64, geography string, bedrooms *int) (*Classification, error) {
	if rent <= 0 {
		return nil, &models.ValidationError{Field: "rent", Detail: "must be positive"}
	}

	row, usedGeo, err := c.lookupTable(geography, bedrooms)
	if err != nil {
		return nil, err
	}

	var cutoffs [10]float64
	usedDefault := false
	if row != nil {
		cutoffs = row.Cutoffs()
	} else {
		defaults := c.data.DefaultDecileCutoffs
		if len(defaults) != 10 {
			return nil, &models.ConfigurationError{
				Subject: "decile cutoffs",
				Detail:  "default table must have exactly 10 thresholds",
			}
		}
		copy(cutoffs[:], defaults)
		usedGeo = "US"
		usedDefault = true
		c.logger.WithField("geography", geography).Warn("No decile table found, using compiled defaults")
	}

	decile := placeDecile(rent, cutoffs)

	return &Classification{
		Decile:              decile,
		TierLabel:           Label(decile),
		Percentile:          percentile(rent, decile, cutoffs),
		Category:            category(decile),
		ExpectedReturnRange: ExpectedReturnRange(decile),
		Geography:           usedGeo,
		UsedDefaultTable:    usedDefault,
	}, nil
}

func (c *Classifier) lookupTable(geography string, bedrooms *int) (*models.DecileThresholds, string, error) {
	type slice struct {
		geography string
		bedrooms  *int
	}

	chain := []slice{{geography, bedrooms}}
	if bedrooms != nil {
		chain = append(chain, slice{geography, nil})
	}
	if geography != "US" {
		chain = append(chain, slice{"US", bedrooms})
		if bedrooms != nil {
			chain = append(chain, slice{"US", nil})
		}
	}

	for _, s := range chain {
		row, err := c.source.Thresholds(s.geography, s.bedrooms)
		if err != nil {
			return nil, "", err
		}
		if row != nil {
			return row, s.geography, nil
		}
	}
	return nil, "", nil
}

// placeDecile returns the smallest decile whose cutoff covers the rent,
// capping at 10 for rents above every threshold.
func placeDecile(rent float64, cutoffs [10]float64) int {
	for i, cutoff := range cutoffs {
		if rent <= cutoff {
			return i + 1
		}
	}
	return 10
}

// percentile interpolates linearly within the decile band.
func percentile(rent float64, decile int, cutoffs [10]float64) float64 {
	lower := 0.0
	if decile > 1 {
		lower = cutoffs[decile-2]
	}
	upper := cutoffs[decile-1]

	if rent > upper {
		return 100
	}
	if upper <= lower {
		return float64(decile-1) * 10
	}

	within := (rent - lower) / (upper - lower)
	p := float64(decile-1)*10 + within*10
	if p > 100 {
		p = 100
	}
	return p
}

func category(decile int) string {
	switch {
	case decile <= 3:
		return "value-tier"
	case decile <= 7:
		return "mid-tier"
	}
	return "premium-tier"
}

// Label is the display label for a decile.
func Label(decile int) string {
	return fmt.Sprintf("D%d", decile)
}

// ExpectedReturnRange is the research range of unlevered total returns for
// the decile bucket.
func ExpectedReturnRange(decile int) string {
	switch {
	case decile <= 3:
		return "9-13% unlevered total return"
	case decile <= 7:
		return "7-10% unlevered total return"
	}
	return "5-8% unlevered total return"
}
