package models

import "time"

// RiskAssessmentResult is the aggregate engine output for one
// (property, holding period, geography) computation. One row is kept per
// deal; recomputation overwrites it.
type RiskAssessmentResult struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DealID    int64     `json:"deal_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	HoldingPeriod int    `json:"holding_period"`
	Geography     string `json:"geography"`

	// Rent prediction and tier classification
	PredictedFundamentalRent float64 `json:"predicted_fundamental_rent"`
	RentPredictionMethod     string  `json:"rent_prediction_method"`
	RentDecileNational       int     `json:"rent_decile_national"`
	RentDecileRegional       int     `json:"rent_decile_regional"`
	RentTierLabel            string  `json:"rent_tier_label"`
	RentPercentile           float64 `json:"rent_percentile"`

	// Yields
	GrossYield         float64 `json:"gross_yield"`
	MaintenanceCostPct float64 `json:"maintenance_cost_pct"`
	PropertyTaxPct     float64 `json:"property_tax_pct"`
	TurnoverCostPct    float64 `json:"turnover_cost_pct"`
	DefaultCostPct     float64 `json:"default_cost_pct"`
	ManagementCostPct  float64 `json:"management_cost_pct"`
	TotalCostPct       float64 `json:"total_cost_pct"`
	NetYield           float64 `json:"net_yield"`

	// Appreciation
	ProjectedPriceYr1       float64 `json:"projected_price_yr1"`
	ProjectedPriceYr5       float64 `json:"projected_price_yr5"`
	ProjectedPriceYr10      float64 `json:"projected_price_yr10"`
	ProjectedPriceHorizon   float64 `json:"projected_price_horizon"`
	CapitalGainYieldAnnual  float64 `json:"capital_gain_yield_annual"`
	AppreciationRateSource  string  `json:"appreciation_rate_source"`

	// Total return
	TotalReturnUnlevered float64 `json:"total_return_unlevered"`
	TotalReturnLevered   float64 `json:"total_return_levered"`
	LeverageEffect       float64 `json:"leverage_effect"`
	CostOfDebt           float64 `json:"cost_of_debt"`
	LoanToValue          float64 `json:"loan_to_value"`

	// Risk dimensions
	SystematicRiskScore    float64 `json:"systematic_risk_score"`
	BetaGDP                float64 `json:"beta_gdp"`
	BetaStocks             float64 `json:"beta_stocks"`
	CashFlowVolatility     float64 `json:"cash_flow_volatility"`
	CashFlowCyclicality    string  `json:"cash_flow_cyclicality"`
	RegulatoryRiskScore    float64 `json:"regulatory_risk_score"`
	HasRentControl         bool    `json:"has_rent_control"`
	RPSScore               float64 `json:"rps_score"`
	IdiosyncraticRiskScore float64 `json:"idiosyncratic_risk_score"`
	CompositeRiskScore     float64 `json:"composite_risk_score"`
	CompositeRiskLevel     string  `json:"composite_risk_level"`
	RiskValidation         string  `json:"risk_validation"`

	// Climate dimension
	ClimateRiskScore     *float64 `json:"climate_risk_score"`
	ClimateRiskLevel     string   `json:"climate_risk_level"`
	FloodRiskScore       *float64 `json:"flood_risk_score"`
	WildfireRiskScore    *float64 `json:"wildfire_risk_score"`
	HurricaneRiskScore   *float64 `json:"hurricane_risk_score"`
	EarthquakeRiskScore  *float64 `json:"earthquake_risk_score"`
	TornadoRiskScore     *float64 `json:"tornado_risk_score"`
	ExtremeHeatRiskScore *float64 `json:"extreme_heat_risk_score"`
	SeaLevelRiskScore    *float64 `json:"sea_level_rise_risk_score"`
	DroughtRiskScore     *float64 `json:"drought_risk_score"`
	PropertyLatitude     *float64 `json:"property_latitude"`
	PropertyLongitude    *float64 `json:"property_longitude"`

	// Arbitrage
	RenterConstraintScore        float64 `json:"renter_constraint_score"`
	InstitutionalConstraintScore float64 `json:"institutional_constraint_score"`
	MediumLandlordFitScore       float64 `json:"medium_landlord_fit_score"`
	ArbitrageOpportunityScore    float64 `json:"arbitrage_opportunity_score"`
	ArbitrageOpportunityLevel    string  `json:"arbitrage_opportunity_level"`
	RecommendedInvestorType      string  `json:"recommended_investor_type"`

	// Benchmark positioning
	VsBenchmarkYield  string `json:"vs_benchmark_yield"`
	VsBenchmarkReturn string `json:"vs_benchmark_return"`

	HedonicModelVersion string    `json:"hedonic_model_version"`
	LastCalculated      time.Time `json:"last_calculated"`
}
