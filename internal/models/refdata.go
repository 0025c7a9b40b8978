package models

import (
	"encoding/json"
	"time"
)

// RegressionCoefficients holds one versioned set of hedonic model parameters
// for a region. Rows are never updated in place; a new model version
// supersedes the old one.
type RegressionCoefficients struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ModelVersion string    `json:"model_version" gorm:"not null;index:idx_model_region"`
	Region       string    `json:"region" gorm:"not null;index:idx_model_region"`
	CreatedAt    time.Time `json:"created_at"`

	CoefSqft      float64 `json:"coef_sqft"`
	CoefBedrooms  float64 `json:"coef_bedrooms"`
	CoefBathrooms float64 `json:"coef_bathrooms"`
	CoefAge       float64 `json:"coef_age"`
	CoefTypeMulti float64 `json:"coef_type_multi"`
	CoefTypeCondo float64 `json:"coef_type_condo"`
	CoefEPC       float64 `json:"coef_epc"`
	Intercept     float64 `json:"intercept"`

	// Fixed effects stored as JSON maps: locality -> effect, year -> effect.
	NeighborhoodEffects string `json:"neighborhood_effects"`
	TimeEffects         string `json:"time_effects"`

	RSquared   float64 `json:"r_squared"`
	RMSE       float64 `json:"rmse"`
	SampleSize int     `json:"sample_size"`
}

// NeighborhoodEffect returns the fixed effect for a locality key, zero when
// the key is absent or the JSON is empty.
func (c *RegressionCoefficients) NeighborhoodEffect(locality string) float64 {
	return jsonEffect(c.NeighborhoodEffects, locality)
}

// TimeEffect returns the fixed effect for a year key, zero when absent.
func (c *RegressionCoefficients) TimeEffect(year string) float64 {
	return jsonEffect(c.TimeEffects, year)
}

func jsonEffect(raw, key string) float64 {
	if raw == "" || key == "" {
		return 0
	}
	var effects map[string]float64
	if err := json.Unmarshal([]byte(raw), &effects); err != nil {
		return 0
	}
	return effects[key]
}

// DecileThresholds defines the ten rent cut points for one market slice.
// Thresholds are monotonically non-decreasing from D1 to D10.
type DecileThresholds struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Geography string    `json:"geography" gorm:"not null;index:idx_geo_bed_year"`
	Bedrooms  *int      `json:"bedrooms" gorm:"index:idx_geo_bed_year"`
	DataYear  int       `json:"data_year" gorm:"not null;index:idx_geo_bed_year"`
	CreatedAt time.Time `json:"created_at"`

	D1  float64 `json:"d1_threshold"`
	D2  float64 `json:"d2_threshold"`
	D3  float64 `json:"d3_threshold"`
	D4  float64 `json:"d4_threshold"`
	D5  float64 `json:"d5_threshold"`
	D6  float64 `json:"d6_threshold"`
	D7  float64 `json:"d7_threshold"`
	D8  float64 `json:"d8_threshold"`
	D9  float64 `json:"d9_threshold"`
	D10 float64 `json:"d10_threshold"`
}

// Cutoffs returns the thresholds in decile order for indexed access.
func (t *DecileThresholds) Cutoffs() [10]float64 {
	return [10]float64{t.D1, t.D2, t.D3, t.D4, t.D5, t.D6, t.D7, t.D8, t.D9, t.D10}
}

// RiskBenchmark holds research-derived ranges for one (decile, geography)
// cell: return ranges, cost structure and systematic risk parameters.
type RiskBenchmark struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RentDecile int       `json:"rent_decile" gorm:"not null;index:idx_decile_geo"`
	Geography  string    `json:"geography" gorm:"not null;index:idx_decile_geo"`
	CreatedAt  time.Time `json:"created_at"`

	NetYieldMin    *float64 `json:"net_yield_min"`
	NetYieldMax    *float64 `json:"net_yield_max"`
	CapitalGainMin *float64 `json:"capital_gain_min"`
	CapitalGainMax *float64 `json:"capital_gain_max"`
	TotalReturnMin *float64 `json:"total_return_min"`
	TotalReturnMax *float64 `json:"total_return_max"`

	MaintenanceCostPct *float64 `json:"maintenance_cost_pct"`
	TurnoverCostPct    *float64 `json:"turnover_cost_pct"`
	DefaultCostPct     *float64 `json:"default_cost_pct"`

	SystematicRiskBeta *float64 `json:"systematic_risk_beta"`
	CashFlowVolatility *float64 `json:"cash_flow_volatility"`
}

// ClimateHazardSample is one cached hazard score keyed by rounded
// coordinates and hazard type. Expired samples must not be served.
type ClimateHazardSample struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Latitude   float64   `json:"latitude" gorm:"not null;index:idx_location_hazard"`
	Longitude  float64   `json:"longitude" gorm:"not null;index:idx_location_hazard"`
	HazardType string    `json:"hazard_type" gorm:"not null;index:idx_location_hazard"`
	Score      float64   `json:"score"`
	Details    string    `json:"details"`
	DataSource string    `json:"data_source"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the sample has passed its TTL.
func (s *ClimateHazardSample) Expired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().UTC().After(s.ExpiresAt)
}
