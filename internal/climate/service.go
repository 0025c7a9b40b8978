package climate

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"aequitas/server/config"
	"aequitas/server/internal/models"
)

// SampleCache persists hazard samples keyed by rounded coordinates and
// hazard type. Implementations must treat expired samples as misses.
type SampleCache interface {
	GetSample(lat, lon float64, hazardType string) (*models.ClimateHazardSample, error)
	PutSample(sample *models.ClimateHazardSample) error
}

// Service scores the eight climate hazard dimensions for a coordinate and
// blends them into the weighted composite. Hazard weights, cache TTLs and
// flood zone scores come from the reference-data snapshot taken at
// construction.
type Service struct {
	cache  SampleCache
	flood  FloodZoneClient
	data   *config.EngineData
	logger *logrus.Logger
}

func NewService(cache SampleCache, flood FloodZoneClient, data *config.EngineData, logger *logrus.Logger) *Service {
	return &Service{cache: cache, flood: flood, data: data, logger: logger}
}

// TopHazard is one entry of the ranked hazard list.
type TopHazard struct {
	Hazard string  `json:"hazard"`
	Score  float64 `json:"score"`
	Label  string  `json:"label"`
}

// Assessment is the composite climate risk for a location.
type Assessment struct {
	Score          float64                 `json:"climate_risk_score"`
	Level          string                  `json:"climate_risk_level"`
	Latitude       float64                 `json:"latitude"`
	Longitude      float64                 `json:"longitude"`
	Hazards        map[string]HazardResult `json:"hazards"`
	TopHazards     []TopHazard             `json:"top_hazards"`
	Interpretation string                  `json:"interpretation"`
	CalculatedAt   time.Time               `json:"calculated_at"`
}

// Known reports whether the assessment carries real hazard data.
func (a *Assessment) Known() bool {
	return a.Level != "Unknown"
}

// UnknownAssessment is the degraded result for properties that cannot be
// geocoded or scored. Composite risk weighting ignores it.
func UnknownAssessment(lat, lon float64) *Assessment {
	return &Assessment{
		Score:          25.0,
		Level:          "Unknown",
		Latitude:       lat,
		Longitude:      lon,
		Hazards:        map[string]HazardResult{},
		TopHazards:     []TopHazard{},
		Interpretation: "Unable to calculate climate risk",
		CalculatedAt:   time.Now().UTC(),
	}
}

// Assess scores every hazard and blends them with the configured weights.
// Individual hazard failures degrade to their documented defaults; the
// assessment itself always succeeds.
func (s *Service) Assess(lat, lon float64) *Assessment {
	s.logger.WithFields(logrus.Fields{
		"latitude":  lat,
		"longitude": lon,
	}).Info("Calculating climate risk")

	weights := s.data.HazardWeights

	hazards := make(map[string]HazardResult, len(HazardOrder))
	composite := 0.0
	for _, hazard := range HazardOrder {
		result := s.Hazard(lat, lon, hazard)
		hazards[hazard] = result
		composite += result.Score * weights[hazard]
	}

	level := "Very High"
	switch {
	case composite < 25:
		level = "Low"
	case composite < 50:
		level = "Medium"
	case composite < 75:
		level = "High"
	}

	top := rankHazards(hazards)

	interpretation := fmt.Sprintf("%s climate risk", level)
	if len(top) > 0 {
		interpretation = fmt.Sprintf("%s climate risk primarily driven by %s exposure",
			level, strings.ToLower(top[0].Label))
	}

	return &Assessment{
		Score:          composite,
		Level:          level,
		Latitude:       lat,
		Longitude:      lon,
		Hazards:        hazards,
		TopHazards:     top,
		Interpretation: interpretation,
		CalculatedAt:   time.Now().UTC(),
	}
}

// Hazard scores one hazard dimension, serving from cache when a fresh sample
// exists for the rounded coordinates.
func (s *Service) Hazard(lat, lon float64, hazard string) HazardResult {
	keyLat, keyLon := round4(lat), round4(lon)

	if cached := s.readCache(keyLat, keyLon, hazard); cached != nil {
		return *cached
	}

	var result HazardResult
	cacheable := true
	switch hazard {
	case "flood":
		result, cacheable = s.scoreFlood(lat, lon)
	case "wildfire":
		result = scoreWildfire(lat, lon)
	case "hurricane":
		result = scoreHurricane(lat, lon)
	case "earthquake":
		result = scoreEarthquake(lat, lon)
	case "tornado":
		result = scoreTornado(lat, lon)
	case "extreme_heat":
		result = scoreExtremeHeat(lat, lon)
	case "sea_level_rise":
		result = scoreSeaLevelRise(lat, lon)
	case "drought":
		result = scoreDrought(lat, lon)
	default:
		return HazardResult{Hazard: hazard, Score: 0, Level: "Unknown", DataSource: "N/A"}
	}

	if cacheable {
		s.writeCache(keyLat, keyLon, hazard, result)
	}
	return result
}

// scoreFlood queries the NFHL for the zone designation. A service failure
// returns the degraded default and is never cached.
func (s *Service) scoreFlood(lat, lon float64) (HazardResult, bool) {
	zone, err := s.flood.FloodZone(lat, lon)
	if err != nil {
		s.logger.WithError(err).Warn("Flood zone lookup failed")
		return HazardResult{
			Hazard:         "flood",
			Score:          25.0,
			Level:          "Unknown",
			FloodZone:      "Unknown",
			Interpretation: "Unable to determine flood risk",
			DataSource:     "FEMA NFHL (unavailable)",
		}, false
	}

	var score float64
	if zone == "" {
		// Outside mapped hazard areas.
		zone = "X"
		score = 10.0
	} else if mapped, ok := s.data.FloodZoneScore(zone); ok {
		score = mapped
	} else {
		score = 37.5
	}

	return HazardResult{
		Hazard:         "flood",
		Score:          score,
		Level:          floodLevel(score),
		FloodZone:      zone,
		Interpretation: floodInterpretation(score),
		DataSource:     "FEMA NFHL",
	}, true
}

func (s *Service) readCache(lat, lon float64, hazard string) *HazardResult {
	sample, err := s.cache.GetSample(lat, lon, hazard)
	if err != nil {
		s.logger.WithError(err).Warn("Hazard cache read failed")
		return nil
	}
	if sample == nil {
		return nil
	}

	var result HazardResult
	if err := json.Unmarshal([]byte(sample.Details), &result); err != nil {
		s.logger.WithError(err).WithField("hazard", hazard).Warn("Discarding unreadable cache entry")
		return nil
	}
	result.Score = sample.Score
	result.Cached = true
	return &result
}

func (s *Service) writeCache(lat, lon float64, hazard string, result HazardResult) {
	details, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode hazard sample")
		return
	}

	ttlDays := s.data.HazardTTLDays[hazard]
	now := time.Now().UTC()

	sample := &models.ClimateHazardSample{
		Latitude:   lat,
		Longitude:  lon,
		HazardType: hazard,
		Score:      result.Score,
		Details:    string(details),
		DataSource: result.DataSource,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlDays) * 24 * time.Hour),
	}

	if err := s.cache.PutSample(sample); err != nil {
		s.logger.WithError(err).WithField("hazard", hazard).Warn("Hazard cache write failed")
	}
}

func rankHazards(hazards map[string]HazardResult) []TopHazard {
	ranked := make([]TopHazard, 0, len(hazards))
	for key, result := range hazards {
		ranked = append(ranked, TopHazard{Hazard: key, Score: result.Score, Label: hazardLabel(key)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Hazard < ranked[j].Hazard
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
