package memo

import (
	"fmt"
	"strings"
)

// buildRecommendation derives the investment rating from thresholded
// combinations of unlevered return, composite risk and arbitrage score.
func buildRecommendation(c *computation) Recommendation {
	unlevered := c.totals.Unlevered
	levered := c.totals.Levered
	riskScore := c.composite.Score
	arbitrageScore := c.arbitrage.OpportunityScore
	decile := c.national.Decile
	tierLabel := c.national.TierLabel

	rating := "Pass"
	ratingScore := 30
	switch {
	case unlevered > 8.0 && riskScore < 45 && arbitrageScore > 70:
		rating = "Strong Buy"
		ratingScore = 90
	case unlevered > 6.0 && riskScore < 55 && arbitrageScore > 55:
		rating = "Buy"
		ratingScore = 75
	case unlevered > 4.0 && riskScore < 65:
		rating = "Hold"
		ratingScore = 60
	case unlevered > 2.0:
		rating = "Consider"
		ratingScore = 45
	}

	strengths := []string{}
	if decile <= 3 {
		strengths = append(strengths, fmt.Sprintf(
			"%s tier delivers research-validated return premium (2-4%%/year vs high-rent)", tierLabel))
	}
	if riskScore < 40 {
		strengths = append(strengths, fmt.Sprintf(
			"Low total risk (%s) - below market average", c.composite.Level))
	}
	if arbitrageScore > 70 {
		strengths = append(strengths, "High arbitrage opportunity - limited institutional competition")
	}
	if levered > 10 {
		strengths = append(strengths, fmt.Sprintf(
			"Strong levered returns (%.1f%%) with moderate leverage", levered))
	}

	concerns := []string{}
	if riskScore > 60 {
		concerns = append(concerns, fmt.Sprintf("Elevated risk profile (%s)", c.composite.Level))
	}
	if unlevered < 5 {
		concerns = append(concerns, fmt.Sprintf("Below-market unlevered returns (%.1f%%)", unlevered))
	}
	if arbitrageScore < 40 {
		concerns = append(concerns, "Limited arbitrage opportunity - competitive market")
	}
	if decile >= 8 {
		concerns = append(concerns, fmt.Sprintf(
			"%s tier shows higher systematic risk and lower returns", tierLabel))
	}

	return Recommendation{
		OverallRating:  rating,
		RatingScore:    ratingScore,
		TargetInvestor: c.arbitrage.RecommendedInvestorType,
		KeyStrengths:   strengths,
		KeyConcerns:    concerns,
		Summary: recommendationSummary(rating, tierLabel, unlevered,
			c.composite.Level, c.arbitrage.OpportunityLevel),
	}
}

func recommendationSummary(rating, tierLabel string, unlevered float64, riskLevel, arbitrageLevel string) string {
	switch rating {
	case "Strong Buy":
		return fmt.Sprintf(
			"%s property with exceptional risk-adjusted returns. "+
				"%.1f%% unlevered return with %s risk profile and %s arbitrage opportunity. "+
				"Strongly recommended for acquisition.",
			tierLabel, unlevered, strings.ToLower(riskLevel), strings.ToLower(arbitrageLevel))
	case "Buy":
		return fmt.Sprintf(
			"%s property with attractive returns. "+
				"%.1f%% unlevered return and %s risk. "+
				"Recommended for acquisition with standard due diligence.",
			tierLabel, unlevered, strings.ToLower(riskLevel))
	case "Hold":
		return fmt.Sprintf(
			"%s property with market-rate returns. "+
				"%.1f%% unlevered return. Acceptable investment but not exceptional.",
			tierLabel, unlevered)
	case "Consider":
		return fmt.Sprintf(
			"%s property with modest returns. "+
				"%.1f%% unlevered return. Proceed with caution and detailed analysis.",
			tierLabel, unlevered)
	}
	return fmt.Sprintf(
		"%s property with below-market returns. "+
			"%.1f%% unlevered return. Not recommended unless strategic rationale exists.",
		tierLabel, unlevered)
}
