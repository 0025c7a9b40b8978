package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EngineData holds the reference tables the assessment engine reads at
// runtime: regulatory environment by state, hazard weighting and cache TTLs,
// flood zone score ranges and the fallback rent decile table. A JSON file can
// override any section; absent sections keep their compiled defaults.
type EngineData struct {
	RentControl struct {
		States []string `json:"states_with_rent_control"`
		Cities []string `json:"cities_with_rent_control"`
	} `json:"rent_control"`

	RenterProtection struct {
		StateScores  map[string]float64 `json:"state_scores"`
		DefaultScore float64            `json:"default_score"`
	} `json:"renter_protection_score"`

	PoliticalControl struct {
		DemocraticTrifecta []string `json:"democratic_trifecta"`
		DividedGovernment  []string `json:"divided_government"`
		RepublicanTrifecta []string `json:"republican_trifecta"`
	} `json:"political_control"`

	PolicyUncertainty struct {
		HighStates     []string `json:"high_uncertainty_states"`
		ModerateStates []string `json:"moderate_uncertainty_states"`
	} `json:"policy_uncertainty"`

	HazardWeights map[string]float64 `json:"hazard_weights"`
	HazardTTLDays map[string]int     `json:"hazard_ttl_days"`

	// Flood zone -> [min, max] score range; the midpoint is used.
	FloodZoneScores map[string][2]float64 `json:"flood_zone_scores"`

	DefaultDecileCutoffs []float64 `json:"default_decile_cutoffs"`
}

const enginePath = "config/engine_data.json"

// LoadEngineData builds the engine reference tables, starting from compiled
// defaults and overlaying the JSON file when present. A missing file is not
// an error; a malformed one is. The returned snapshot is owned by the caller
// and never mutated afterwards, so every component handed it sees the same
// tables for the life of the process.
func LoadEngineData() (*EngineData, error) {
	data := DefaultEngineData()

	absPath, err := filepath.Abs(enginePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("failed to read engine data file: %v", err)
	}

	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse engine data: %v", err)
	}

	return data, nil
}

// RPSScore returns the renter protection score for a two-letter state code.
func (d *EngineData) RPSScore(state string) float64 {
	if score, ok := d.RenterProtection.StateScores[state]; ok {
		return score
	}
	return d.RenterProtection.DefaultScore
}

// HasRentControlState reports whether the state has statewide rent control.
func (d *EngineData) HasRentControlState(state string) bool {
	return containsString(d.RentControl.States, state)
}

// HasRentControlCity reports whether the "City, ST" key has local rent
// control ordinances.
func (d *EngineData) HasRentControlCity(cityState string) bool {
	return containsString(d.RentControl.Cities, cityState)
}

// PoliticalCategory classifies a state as democratic_trifecta, divided,
// republican_trifecta or unknown.
func (d *EngineData) PoliticalCategory(state string) string {
	switch {
	case containsString(d.PoliticalControl.DemocraticTrifecta, state):
		return "democratic_trifecta"
	case containsString(d.PoliticalControl.DividedGovernment, state):
		return "divided"
	case containsString(d.PoliticalControl.RepublicanTrifecta, state):
		return "republican_trifecta"
	}
	return "unknown"
}

// UncertaintyLevel classifies a state's policy uncertainty as High, Moderate
// or Low.
func (d *EngineData) UncertaintyLevel(state string) string {
	switch {
	case containsString(d.PolicyUncertainty.HighStates, state):
		return "High"
	case containsString(d.PolicyUncertainty.ModerateStates, state):
		return "Moderate"
	}
	return "Low"
}

// FloodZoneScore returns the midpoint score for a FEMA zone designation.
func (d *EngineData) FloodZoneScore(zone string) (float64, bool) {
	r, ok := d.FloodZoneScores[zone]
	if !ok {
		return 0, false
	}
	return (r[0] + r[1]) / 2, true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultEngineData returns the compiled reference tables.
func DefaultEngineData() *EngineData {
	d := &EngineData{}

	d.RentControl.States = []string{"CA", "OR", "NY", "NJ", "MD", "MN", "DC"}
	d.RentControl.Cities = []string{
		"San Francisco, CA", "Los Angeles, CA", "Oakland, CA", "Berkeley, CA",
		"Santa Monica, CA", "San Jose, CA", "New York, NY", "Newark, NJ",
		"Jersey City, NJ", "Hoboken, NJ", "Washington, DC", "Portland, OR",
		"St. Paul, MN", "Takoma Park, MD",
	}

	d.RenterProtection.DefaultScore = 1.5
	d.RenterProtection.StateScores = map[string]float64{
		"CA": 4.5, "NY": 4.8, "OR": 4.2, "NJ": 4.0, "WA": 3.8, "DC": 4.6,
		"MA": 3.6, "MD": 3.5, "MN": 3.3, "IL": 3.2, "CT": 3.1, "HI": 3.3,
		"VT": 3.4, "CO": 3.0, "RI": 2.9, "MI": 2.4, "PA": 2.2, "VA": 2.0,
		"NV": 1.9, "NM": 2.1, "DE": 2.3, "ME": 2.5,
		"TX": 0.8, "FL": 1.0, "GA": 0.9, "AZ": 1.1, "TN": 0.7, "AL": 0.6,
		"ID": 0.5, "OK": 0.6, "AR": 0.7, "MS": 0.5, "SC": 0.8, "NC": 1.2,
		"IN": 0.9, "OH": 1.3, "MO": 1.0, "KY": 1.1, "LA": 1.0, "UT": 0.9,
		"WY": 0.5, "MT": 1.2, "SD": 0.6, "ND": 0.7, "NE": 0.9, "KS": 0.9,
		"IA": 1.1, "WV": 0.8, "AK": 1.4, "NH": 1.6, "WI": 1.4,
	}

	d.PoliticalControl.DemocraticTrifecta = []string{
		"CA", "CO", "CT", "DE", "HI", "IL", "MA", "MD", "ME", "MI", "MN",
		"NJ", "NM", "NY", "OR", "RI", "WA", "DC",
	}
	d.PoliticalControl.DividedGovernment = []string{
		"AK", "AZ", "KS", "KY", "NC", "NV", "PA", "VA", "VT", "WI",
	}
	d.PoliticalControl.RepublicanTrifecta = []string{
		"AL", "AR", "FL", "GA", "IA", "ID", "IN", "LA", "MO", "MS", "MT",
		"ND", "NE", "NH", "OH", "OK", "SC", "SD", "TN", "TX", "UT", "WV", "WY",
	}

	d.PolicyUncertainty.HighStates = []string{"CA", "NY", "WA", "OR", "CO"}
	d.PolicyUncertainty.ModerateStates = []string{
		"NJ", "MA", "MD", "MN", "IL", "CT", "HI", "MI", "VT",
	}

	d.HazardWeights = map[string]float64{
		"flood":          0.20,
		"wildfire":       0.18,
		"hurricane":      0.15,
		"earthquake":     0.12,
		"tornado":        0.10,
		"extreme_heat":   0.10,
		"sea_level_rise": 0.08,
		"drought":        0.07,
	}

	d.HazardTTLDays = map[string]int{
		"flood":          365,
		"wildfire":       90,
		"hurricane":      365,
		"earthquake":     365,
		"tornado":        180,
		"extreme_heat":   30,
		"sea_level_rise": 365,
		"drought":        7,
	}

	d.FloodZoneScores = map[string][2]float64{
		"VE":   {90, 100},
		"V":    {85, 95},
		"AE":   {70, 80},
		"A":    {70, 80},
		"AO":   {55, 65},
		"AH":   {55, 65},
		"X500": {40, 50},
		"X":    {5, 15},
	}

	d.DefaultDecileCutoffs = []float64{
		700, 850, 1000, 1150, 1300, 1500, 1750, 2050, 2500, 3500,
	}

	return d
}
