package arbitrage

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

// Scorer quantifies the ownership arbitrage thesis: tiers where renters are
// structurally constrained from buying and institutions are structurally
// uninterested leave excess returns for medium landlords.
type Scorer struct {
	logger *logrus.Logger
}

func NewScorer(logger *logrus.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Result holds the three constraint scores and the blended opportunity.
type Result struct {
	RenterConstraintScore        float64 `json:"renter_constraint_score"`
	InstitutionalConstraintScore float64 `json:"institutional_constraint_score"`
	MediumLandlordFitScore       float64 `json:"medium_landlord_fit_score"`
	OpportunityScore             float64 `json:"arbitrage_opportunity_score"`
	OpportunityLevel             string  `json:"arbitrage_opportunity_level"`
	RecommendedInvestorType      string  `json:"recommended_investor_type"`
	Interpretation               string  `json:"interpretation"`
}

// Score computes the arbitrage opportunity for a property in a rent decile.
// propertyValue and monthlyRent are resolved values, never zero.
func (s *Scorer) Score(decile int, propertyValue, monthlyRent float64, property models.PropertyCharacteristics) (*Result, error) {
	if decile < 1 || decile > 10 {
		return nil, &models.ValidationError{Field: "decile", Detail: fmt.Sprintf("must be 1-10, got %d", decile)}
	}
	if propertyValue <= 0 {
		return nil, &models.ValidationError{Field: "property_value", Detail: "must be positive"}
	}
	if monthlyRent <= 0 {
		return nil, &models.ValidationError{Field: "monthly_rent", Detail: "must be positive"}
	}

	renter := renterConstraint(decile, monthlyRent, property)
	institutional := institutionalPresence(decile, propertyValue, property.Units())
	fit := mediumLandlordFit(decile, propertyValue, property.Units())

	opportunity := 0.35*renter + 0.35*(100-institutional) + 0.30*fit
	switch {
	case decile <= 3:
		opportunity += 10
	case decile == 4:
		opportunity += 5
	}
	opportunity = clamp(opportunity)

	level := "Low"
	switch {
	case opportunity > 70:
		level = "High"
	case opportunity > 40:
		level = "Moderate"
	}

	investor := "Individual Investor"
	switch {
	case institutional >= 65:
		investor = "Institutional Fund"
	case fit >= 55:
		investor = "Medium Landlord Portfolio"
	}

	interpretation := fmt.Sprintf(
		"%s arbitrage opportunity - renters constrained at %.0f/100, institutional presence at %.0f/100",
		level, renter, institutional)

	return &Result{
		RenterConstraintScore:        renter,
		InstitutionalConstraintScore: institutional,
		MediumLandlordFitScore:       fit,
		OpportunityScore:             opportunity,
		OpportunityLevel:             level,
		RecommendedInvestorType:      investor,
		Interpretation:               interpretation,
	}, nil
}

// renterConstraint estimates how blocked the tenant base is from buying.
// Lower deciles mean lower incomes and weaker mortgage access.
func renterConstraint(decile int, monthlyRent float64, property models.PropertyCharacteristics) float64 {
	score := 95.0 - float64(decile-1)*8.5

	if property.MedianIncome != nil && *property.MedianIncome > 0 {
		rentBurden := (monthlyRent * 12) / *property.MedianIncome
		if rentBurden > 0.35 {
			score += 5
		} else if rentBurden < 0.20 {
			score -= 5
		}
	}

	if property.PriceToRentRatio != nil {
		if *property.PriceToRentRatio > 20 {
			score += 5
		} else if *property.PriceToRentRatio < 12 {
			score -= 5
		}
	}

	return clamp(score)
}

// institutionalPresence estimates how much institutional capital competes in
// the segment. Funds chase large, high-tier, high-value assets.
func institutionalPresence(decile int, propertyValue float64, units int) float64 {
	score := float64(decile-1) / 9.0 * 50

	switch {
	case propertyValue >= 10_000_000:
		score += 30
	case propertyValue >= 5_000_000:
		score += 25
	case propertyValue >= 1_000_000:
		score += 15
	case propertyValue >= 500_000:
		score += 8
	default:
		score += 3
	}

	switch {
	case units >= 100:
		score += 20
	case units >= 50:
		score += 15
	case units >= 20:
		score += 10
	case units >= 5:
		score += 5
	default:
		score += 2
	}

	return clamp(score)
}

// mediumLandlordFit scores how well the asset matches a medium landlord
// portfolio: value tiers, small multifamily, modest ticket sizes.
func mediumLandlordFit(decile int, propertyValue float64, units int) float64 {
	constraint := 0.0

	if dist := math.Abs(float64(decile - 3)); dist > 4 {
		constraint += (dist - 4) * 10
	}

	switch {
	case units == 1:
		constraint += 15
	case units <= 20:
		// Sweet spot.
	case units <= 50:
		constraint += 10
	default:
		constraint += 25
	}

	switch {
	case propertyValue <= 2_000_000:
		// Within reach of a medium landlord balance sheet.
	case propertyValue <= 5_000_000:
		constraint += 10
	default:
		constraint += 25
	}

	return clamp(100 - constraint)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
