package climate


// HazardResult is one hazard dimension score for a location.
type HazardResult struct {
	Hazard               string   `json:"hazard"`
	Score                float64  `json:"score"`
	Level                string   `json:"level"`
	Interpretation       string   `json:"interpretation"`
	DataSource           string   `json:"data_source"`
	FloodZone            string   `json:"flood_zone,omitempty"`
	DistanceToCoastMiles *float64 `json:"distance_to_coast_miles,omitempty"`
	Cached               bool     `json:"cached"`
}

// HazardLabels maps hazard keys to display names.
var HazardLabels = map[string]string{
	"flood":          "Flood",
	"wildfire":       "Wildfire",
	"hurricane":      "Hurricane",
	"earthquake":     "Earthquake",
	"tornado":        "Tornado",
	"extreme_heat":   "Extreme Heat",
	"sea_level_rise": "Sea Level Rise",
	"drought":        "Drought",
}

// HazardOrder lists the hazards in assessment order.
var HazardOrder = []string{
	"flood", "wildfire", "hurricane", "earthquake",
	"tornado", "extreme_heat", "sea_level_rise", "drought",
}

func scoreWildfire(lat, lon float64) HazardResult {
	score := 20.0
	switch {
	case inBound(lat, lon, californiaBound):
		score = 85
	case inBound(lat, lon, pacificNWBound):
		score = 70
	case inBound(lat, lon, southwestBound):
		score = 75
	case inBound(lat, lon, mountainWest):
		score = 65
	case inBound(lat, lon, westernLonBound):
		score = 55
	}

	level, interpretation := "Very Low", "Very Low wildfire risk"
	switch {
	case score >= 90:
		level, interpretation = "Very High", "Very High wildfire risk - frequent large fires"
	case score >= 70:
		level, interpretation = "High", "High wildfire risk - regular fire activity"
	case score >= 40:
		level, interpretation = "Moderate", "Moderate wildfire risk"
	case score >= 20:
		level, interpretation = "Low", "Low wildfire risk"
	}

	return HazardResult{
		Hazard:         "wildfire",
		Score:          score,
		Level:          level,
		Interpretation: interpretation,
		DataSource:     "Geographic heuristics",
	}
}

func scoreHurricane(lat, lon float64) HazardResult {
	distance := distanceToNearestMiles(lat, lon, hurricaneCoast)

	var score float64
	var proximity, interpretation string
	switch {
	case distance < 25:
		score = 95
		proximity = "Within 25 miles of coast"
		interpretation = "Very High Risk - Direct coastal exposure to hurricanes"
	case distance < 50:
		score = 75
		proximity = "Within 50 miles of coast"
		interpretation = "High Risk - Near coastal, significant hurricane exposure"
	case distance < 100:
		score = 50
		proximity = "Within 100 miles of coast"
		interpretation = "Moderate Risk - Inland but within hurricane range"
	case distance < 200:
		score = 25
		proximity = "Within 200 miles of coast"
		interpretation = "Low Risk - Far enough inland to reduce risk"
	default:
		score = 5
		proximity = "More than 200 miles from coast"
		interpretation = "Very Low Risk - Well inland from coastal areas"
	}

	// Northern latitudes see fewer landfalls.
	if lat > 40 {
		score *= 0.6
	} else if lat > 35 {
		score *= 0.8
	}

	return HazardResult{
		Hazard:               "hurricane",
		Score:                score,
		Level:                proximity,
		Interpretation:       interpretation,
		DataSource:           "Geographic model",
		DistanceToCoastMiles: &distance,
	}
}

func scoreEarthquake(lat, lon float64) HazardResult {
	score, zone, interpretation := 10.0, "Low", "Low Risk - Stable continental region"
	switch {
	case inBound(lat, lon, caCoastBound):
		score, zone, interpretation = 85, "Very High", "Very High Risk - Major active fault zones"
	case inBound(lat, lon, pacificNWBound):
		score, zone, interpretation = 75, "High", "High Risk - Cascadia subduction zone"
	case inBound(lat, lon, caInlandBound):
		score, zone, interpretation = 65, "Moderate-High", "Moderate-High Risk - Active seismic area"
	case inBound(lat, lon, nevadaUtahBound):
		score, zone, interpretation = 45, "Moderate", "Moderate Risk - Basin and Range province"
	case inBound(lat, lon, newMadridBound):
		score, zone, interpretation = 35, "Low-Moderate", "Low-Moderate Risk - New Madrid seismic zone"
	}

	return HazardResult{
		Hazard:         "earthquake",
		Score:          score,
		Level:          zone,
		Interpretation: interpretation,
		DataSource:     "Geographic seismic model",
	}
}

func scoreTornado(lat, lon float64) HazardResult {
	score, zone, interpretation := 20.0, "Low-Moderate", "Low-Moderate Risk"
	switch {
	case inBound(lat, lon, tornadoAlley):
		score, zone, interpretation = 85, "Very High", "Very High Risk - Tornado Alley (highest frequency in US)"
	case inBound(lat, lon, dixieAlley):
		score, zone, interpretation = 75, "High", "High Risk - Dixie Alley (frequent strong tornadoes)"
	case inBound(lat, lon, midwestHigh):
		score, zone, interpretation = 60, "Moderate-High", "Moderate-High Risk - Midwest tornado activity"
	case inBound(lat, lon, easternTornado):
		score, zone, interpretation = 35, "Moderate", "Moderate Risk - Occasional tornado activity"
	case lon < -103 || (lat > 42 && lon > -80):
		score, zone, interpretation = 10, "Low", "Low Risk - Rare tornado occurrence"
	}

	return HazardResult{
		Hazard:         "tornado",
		Score:          score,
		Level:          zone,
		Interpretation: interpretation,
		DataSource:     "Geographic tornado model",
	}
}

func scoreExtremeHeat(lat, lon float64) HazardResult {
	score, zone, interpretation := 30.0, "Low-Moderate", "Low-Moderate Risk"
	switch {
	case inBound(lat, lon, swDesertHeat):
		score, zone, interpretation = 90, "Very High", "Very High Risk - Desert climate, 30+ days >100F annually"
	case inBound(lat, lon, deepSouthHeat):
		score, zone, interpretation = 70, "High", "High Risk - Hot, humid summers with frequent heat waves"
	case inBound(lat, lon, southernPlains):
		score, zone, interpretation = 60, "Moderate-High", "Moderate-High Risk - Hot summers, 15-30 days >100F"
	case lat >= 37 && lat <= 42:
		score, zone, interpretation = 35, "Moderate", "Moderate Risk - Warm summers, occasional heat waves"
	case lat > 42:
		score, zone, interpretation = 15, "Low", "Low Risk - Cool to moderate summers"
	}

	// Marine influence moderates coastal heat.
	if inBound(lat, lon, westCoastMarine) {
		score *= 0.8
	} else if inBound(lat, lon, northeastCoast) {
		score *= 0.9
	}

	return HazardResult{
		Hazard:         "extreme_heat",
		Score:          score,
		Level:          zone,
		Interpretation: interpretation,
		DataSource:     "Geographic climate model",
	}
}

func scoreSeaLevelRise(lat, lon float64) HazardResult {
	distance := distanceToNearestMiles(lat, lon, seaLevelCoast)

	var score float64
	var vulnerability, interpretation string
	switch {
	case distance < 2:
		score = 95
		vulnerability = "Very High"
		interpretation = "Very High Risk - Direct coastal exposure to sea level rise"
	case distance < 5:
		score = 75
		vulnerability = "High"
		interpretation = "High Risk - Low-lying coastal area vulnerable to sea level rise"
	case distance < 10:
		score = 50
		vulnerability = "Moderate"
		interpretation = "Moderate Risk - Within coastal zone, potential long-term impacts"
	case distance < 25:
		score = 20
		vulnerability = "Low"
		interpretation = "Low Risk - Outside immediate sea level rise impact zone"
	default:
		score = 0
		vulnerability = "N/A"
		interpretation = "Not Applicable - Inland property not affected by sea level rise"
	}

	return HazardResult{
		Hazard:               "sea_level_rise",
		Score:                score,
		Level:                vulnerability,
		Interpretation:       interpretation,
		DataSource:           "Geographic coastal model",
		DistanceToCoastMiles: &distance,
	}
}

func scoreDrought(lat, lon float64) HazardResult {
	score, zone, interpretation := 30.0, "Low-Moderate", "Low-Moderate Risk"
	switch {
	case inBound(lat, lon, swDesertDrought):
		score, zone, interpretation = 85, "Very High", "Very High Risk - Arid climate, frequent severe droughts"
	case inBound(lat, lon, californiaBound):
		score, zone, interpretation = 70, "High", "High Risk - Mediterranean climate, recurring drought cycles"
	case inBound(lat, lon, greatPlains):
		score, zone, interpretation = 55, "Moderate-High", "Moderate-High Risk - Variable precipitation, periodic droughts"
	case inBound(lat, lon, southeastDrought):
		score, zone, interpretation = 35, "Moderate", "Moderate Risk - Generally humid, occasional drought conditions"
	case inBound(lat, lon, pacificNWBound), inBound(lat, lon, northeastHumid):
		score, zone, interpretation = 15, "Low", "Low Risk - High precipitation region, rare droughts"
	}

	return HazardResult{
		Hazard:         "drought",
		Score:          score,
		Level:          zone,
		Interpretation: interpretation,
		DataSource:     "Geographic climate model",
	}
}

func floodInterpretation(score float64) string {
	switch {
	case score >= 85:
		return "Very High Risk - High velocity flood zone or 1% annual chance"
	case score >= 70:
		return "High Risk - 1% annual flood chance (100-year floodplain)"
	case score >= 50:
		return "Moderate Risk - 0.2% annual flood chance (500-year floodplain)"
	case score >= 20:
		return "Low Risk - Minimal flood hazard"
	}
	return "Very Low Risk - Area of minimal flood hazard"
}

func floodLevel(score float64) string {
	switch {
	case score >= 85:
		return "Very High"
	case score >= 70:
		return "High"
	case score >= 50:
		return "Moderate"
	case score >= 20:
		return "Low"
	}
	return "Very Low"
}

func hazardLabel(hazard string) string {
	if label, ok := HazardLabels[hazard]; ok {
		return label
	}
	return hazard
}
