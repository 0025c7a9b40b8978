package memo

import (
	"time"

	"aequitas/server/internal/arbitrage"
	"aequitas/server/internal/climate"
	"aequitas/server/internal/returns"
	"aequitas/server/internal/risk"
)

// Memo is the full investment analysis for one deal.
type Memo struct {
	DealID        int64     `json:"deal_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	HoldingPeriod int       `json:"holding_period"`
	Geography     string    `json:"geography"`

	PropertySummary          PropertySummary     `json:"property_summary"`
	RentPrediction           RentPrediction      `json:"rent_prediction"`
	TierClassification       TierSection         `json:"tier_classification"`
	YieldAnalysis            YieldSection        `json:"yield_analysis"`
	AppreciationProjection   *returns.Projection `json:"appreciation_projection"`
	TotalReturn              ReturnSection       `json:"total_return"`
	RiskAssessment           RiskSection         `json:"risk_assessment"`
	ArbitrageOpportunity     *arbitrage.Result   `json:"arbitrage_opportunity"`
	InvestmentRecommendation Recommendation      `json:"investment_recommendation"`
	SensitivityAnalysis      Sensitivity         `json:"sensitivity_analysis"`
	ExecutiveSummary         ExecutiveSummary    `json:"executive_summary"`
}

// PropertySummary restates the deal's physical and financial facts.
type PropertySummary struct {
	Address           string   `json:"address"`
	PurchasePrice     *float64 `json:"purchase_price"`
	Bedrooms          int      `json:"bedrooms"`
	Bathrooms         float64  `json:"bathrooms"`
	SquareFootage     int      `json:"square_footage"`
	YearBuilt         *int     `json:"year_built"`
	PropertyAge       *int     `json:"property_age"`
	PropertyCondition string   `json:"property_condition"`
	NumberOfUnits     int      `json:"number_of_units"`
	PropertyType      string   `json:"property_type"`
}

// RentPrediction reports the fundamental rent estimate and its provenance.
// Method is "hedonic_model" unless the model failed and the observed rent was
// substituted.
type RentPrediction struct {
	PredictedRent float64            `json:"predicted_rent"`
	Method        string             `json:"method"`
	ModelVersion  string             `json:"model_version,omitempty"`
	Contributions map[string]float64 `json:"contributions,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// TierSection is the decile placement plus its interpretation.
type TierSection struct {
	NationalDecile      int     `json:"national_decile"`
	RegionalDecile      int     `json:"regional_decile"`
	TierLabel           string  `json:"tier_label"`
	Percentile          float64 `json:"percentile"`
	Category            string  `json:"category"`
	ExpectedReturnRange string  `json:"expected_return_range"`
	UsedDefaultTable    bool    `json:"used_default_table"`
}

// YieldSection is the yield breakdown with its inputs and benchmark position.
type YieldSection struct {
	AnnualRent        float64                 `json:"annual_rent"`
	PropertyValue     float64                 `json:"property_value"`
	Breakdown         *returns.YieldBreakdown `json:"breakdown"`
	BenchmarkPosition string                  `json:"vs_benchmark"`
}

// ReturnSection combines income and appreciation into the return figures.
type ReturnSection struct {
	NetYield          float64              `json:"net_yield"`
	CapitalGainYield  float64              `json:"capital_gain_yield"`
	Totals            *returns.TotalReturn `json:"totals"`
	BenchmarkPosition string               `json:"vs_benchmark"`
}

// RiskSection holds every risk dimension, the composite and the advisory
// lists.
type RiskSection struct {
	Systematic    *risk.SystematicResult    `json:"systematic_risk"`
	Regulatory    *risk.RegulatoryResult    `json:"regulatory_risk"`
	Idiosyncratic *risk.IdiosyncraticResult `json:"idiosyncratic_risk"`
	Climate       *climate.Assessment       `json:"climate_risk"`
	Composite     *risk.CompositeResult     `json:"composite_risk"`
	KeyRisks      []risk.KeyRisk            `json:"key_risks"`
	Mitigations   []string                  `json:"risk_mitigation_suggestions"`
}

// Recommendation is the thresholded investment rating with its rationale.
type Recommendation struct {
	OverallRating  string   `json:"overall_rating"`
	RatingScore    int      `json:"rating_score"`
	TargetInvestor string   `json:"target_investor"`
	KeyStrengths   []string `json:"key_strengths"`
	KeyConcerns    []string `json:"key_concerns"`
	Summary        string   `json:"summary"`
}

// ExecutiveSummary is the one-screen digest of the memo.
type ExecutiveSummary struct {
	Property            string   `json:"property"`
	Address             string   `json:"address"`
	PurchasePrice       *float64 `json:"purchase_price"`
	RentTier            string   `json:"rent_tier"`
	TierCategory        string   `json:"tier_category"`
	ExpectedReturnRange string   `json:"expected_return_range"`
	ReturnUnlevered     float64  `json:"calculated_return_unlevered"`
	ReturnLevered       float64  `json:"calculated_return_levered"`
	RiskLevel           string   `json:"risk_level"`
	RiskScore           float64  `json:"risk_score"`
	ArbitrageLevel      string   `json:"arbitrage_opportunity_level"`
	ArbitrageScore      float64  `json:"arbitrage_score"`
	OverallRating       string   `json:"overall_rating"`
	RatingScore         int      `json:"rating_score"`
	TargetInvestor      string   `json:"target_investor"`
	KeyTakeaway         string   `json:"key_takeaway"`
}
