package memo

import (
	"fmt"
	"sort"
	"time"

	"aequitas/server/internal/models"
)

// ComparisonEntry is one deal's slot in a comparison: either a memo or the
// error that kept it out of the rankings.
type ComparisonEntry struct {
	DealID int64  `json:"deal_id"`
	Memo   *Memo  `json:"memo,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RankedDeal is one position in a ranking with the metric that placed it.
type RankedDeal struct {
	DealID int64   `json:"deal_id"`
	Value  float64 `json:"value"`
}

// Rankings orders the valid deals by the four comparison criteria.
type Rankings struct {
	ByTotalReturn          []RankedDeal `json:"by_total_return"`
	ByRiskAdjustedReturn   []RankedDeal `json:"by_risk_adjusted_return"`
	ByArbitrageOpportunity []RankedDeal `json:"by_arbitrage_opportunity"`
	ByOverallRating        []RankedDeal `json:"by_overall_rating"`
}

// ComparisonResult is the side-by-side analysis of multiple deals.
type ComparisonResult struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	HoldingPeriod int               `json:"holding_period"`
	Deals         []ComparisonEntry `json:"deals"`
	Rankings      Rankings          `json:"rankings"`
}

// CompareDeals generates a memo per deal and ranks the set. A failed deal
// never aborts the batch; it becomes an error entry and is excluded from the
// rankings.
func (e *Engine) CompareDeals(dealIDs []int64, holdingPeriod int, geography string) (*ComparisonResult, error) {
	if len(dealIDs) < e.cfg.Comparison.MinDeals {
		return nil, &models.ValidationError{
			Field:  "deal_ids",
			Detail: fmt.Sprintf("need at least %d deals to compare", e.cfg.Comparison.MinDeals),
		}
	}
	if len(dealIDs) > e.cfg.Comparison.MaxDeals {
		return nil, &models.ValidationError{
			Field:  "deal_ids",
			Detail: fmt.Sprintf("maximum %d deals for comparison", e.cfg.Comparison.MaxDeals),
		}
	}

	result := &ComparisonResult{
		GeneratedAt:   time.Now().UTC(),
		HoldingPeriod: holdingPeriod,
		Deals:         make([]ComparisonEntry, 0, len(dealIDs)),
	}

	for _, dealID := range dealIDs {
		entry := ComparisonEntry{DealID: dealID}
		memo, err := e.GenerateMemo(dealID, holdingPeriod, geography)
		if err != nil {
			e.logger.WithError(err).WithField("deal_id", dealID).Warn("Deal excluded from comparison")
			entry.Error = err.Error()
		} else {
			entry.Memo = memo
		}
		result.Deals = append(result.Deals, entry)
	}

	result.Rankings = rankDeals(result.Deals)
	return result, nil
}

func rankDeals(entries []ComparisonEntry) Rankings {
	valid := make([]ComparisonEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Memo != nil {
			valid = append(valid, entry)
		}
	}

	return Rankings{
		ByTotalReturn: rankBy(valid, func(m *Memo) float64 {
			return m.TotalReturn.Totals.Levered
		}),
		ByRiskAdjustedReturn: rankBy(valid, func(m *Memo) float64 {
			riskScore := m.RiskAssessment.Composite.Score
			if riskScore < 1 {
				riskScore = 1
			}
			return m.TotalReturn.Totals.Unlevered / riskScore
		}),
		ByArbitrageOpportunity: rankBy(valid, func(m *Memo) float64 {
			return m.ArbitrageOpportunity.OpportunityScore
		}),
		ByOverallRating: rankBy(valid, func(m *Memo) float64 {
			return float64(m.InvestmentRecommendation.RatingScore)
		}),
	}
}

func rankBy(entries []ComparisonEntry, metric func(*Memo) float64) []RankedDeal {
	ranked := make([]RankedDeal, 0, len(entries))
	for _, entry := range entries {
		ranked = append(ranked, RankedDeal{DealID: entry.DealID, Value: metric(entry.Memo)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	return ranked
}
