package climate

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aequitas/server/config"
	"aequitas/server/internal/models"
)

type memoryCache struct {
	samples map[string]*models.ClimateHazardSample
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{samples: make(map[string]*models.ClimateHazardSample)}
}

func cacheKey(lat, lon float64, hazard string) string {
	return fmt.Sprintf("%.4f|%.4f|%s", lat, lon, hazard)
}

func (c *memoryCache) GetSample(lat, lon float64, hazard string) (*models.ClimateHazardSample, error) {
	sample, ok := c.samples[cacheKey(lat, lon, hazard)]
	if !ok {
		return nil, nil
	}
	if sample.Expired() {
		delete(c.samples, cacheKey(lat, lon, hazard))
		return nil, nil
	}
	return sample, nil
}

func (c *memoryCache) PutSample(sample *models.ClimateHazardSample) error {
	c.puts++
	c.samples[cacheKey(sample.Latitude, sample.Longitude, sample.HazardType)] = sample
	return nil
}

type stubFlood struct {
	zone string
	err  error
}

func (f *stubFlood) FloodZone(lat, lon float64) (string, error) {
	return f.zone, f.err
}

func newTestService(cache SampleCache, flood FloodZoneClient) *Service {
	return newTestServiceWithData(cache, flood, config.DefaultEngineData())
}

func newTestServiceWithData(cache SampleCache, flood FloodZoneClient, data *config.EngineData) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(cache, flood, data, logger)
}

// Denver: well inland, outside every coastal band.
const denverLat, denverLon = 39.74, -104.99

// San Francisco: CA coast, seismic and drought exposure.
const sfLat, sfLon = 37.77, -122.42

func TestDistanceToNearestIsSymmetricAndZeroAtPoint(t *testing.T) {
	miami := []orb.Point{point(25.8, -80.2)}

	assert.InDelta(t, 0.0, distanceToNearestMiles(25.8, -80.2, miami), 1e-6)

	ab := distanceToNearestMiles(denverLat, denverLon, miami)
	ba := distanceToNearestMiles(25.8, -80.2, []orb.Point{point(denverLat, denverLon)})
	assert.InDelta(t, ab, ba, 1e-6)
}

func TestInlandPropertyCoastalHazards(t *testing.T) {
	svc := newTestService(newMemoryCache(), &stubFlood{zone: "X"})

	hurricane := svc.Hazard(denverLat, denverLon, "hurricane")
	assert.LessOrEqual(t, hurricane.Score, 5.0)

	slr := svc.Hazard(denverLat, denverLon, "sea_level_rise")
	assert.Zero(t, slr.Score)
	assert.Equal(t, "N/A", slr.Level)
}

func TestCoastalPropertyHurricaneLatitudeAdjustment(t *testing.T) {
	svc := newTestService(newMemoryCache(), &stubFlood{zone: "X"})

	// Boston sits on the coast but north of the main hurricane belt.
	boston := svc.Hazard(42.36, -71.06, "hurricane")
	miami := svc.Hazard(25.77, -80.19, "hurricane")

	assert.Less(t, boston.Score, miami.Score)
	assert.InDelta(t, 95.0, miami.Score, 1e-9)
	assert.InDelta(t, 95.0*0.6, boston.Score, 1e-9)
}

func TestRegionalHazardScores(t *testing.T) {
	svc := newTestService(newMemoryCache(), &stubFlood{zone: "X"})

	assert.Equal(t, 85.0, svc.Hazard(sfLat, sfLon, "wildfire").Score)
	assert.Equal(t, 85.0, svc.Hazard(sfLat, sfLon, "earthquake").Score)
	assert.Equal(t, 70.0, svc.Hazard(sfLat, sfLon, "drought").Score)

	// Oklahoma City is the canonical Tornado Alley reference.
	assert.Equal(t, 85.0, svc.Hazard(35.47, -97.52, "tornado").Score)

	// Phoenix desert heat.
	assert.Equal(t, 90.0, svc.Hazard(33.45, -112.07, "extreme_heat").Score)
}

func TestFloodZoneScoring(t *testing.T) {
	cases := []struct {
		zone  string
		score float64
	}{
		{"VE", 95.0},
		{"AE", 75.0},
		{"X", 10.0},
		{"", 10.0},
		{"D", 37.5},
	}

	for _, tc := range cases {
		svc := newTestService(newMemoryCache(), &stubFlood{zone: tc.zone})
		result := svc.Hazard(sfLat, sfLon, "flood")
		assert.Equal(t, tc.score, result.Score, "zone %q", tc.zone)
	}
}

func TestFloodZoneReadsInjectedScoreTable(t *testing.T) {
	data := config.DefaultEngineData()
	data.FloodZoneScores = map[string][2]float64{"AE": {60, 60}}

	svc := newTestServiceWithData(newMemoryCache(), &stubFlood{zone: "AE"}, data)
	result := svc.Hazard(sfLat, sfLon, "flood")

	assert.Equal(t, 60.0, result.Score)
}

func TestFloodFailureDefaultsAndSkipsCache(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(cache, &stubFlood{err: errors.New("timeout")})

	result := svc.Hazard(sfLat, sfLon, "flood")

	assert.Equal(t, 25.0, result.Score)
	assert.Equal(t, "Unknown", result.FloodZone)
	assert.Equal(t, "FEMA NFHL (unavailable)", result.DataSource)
	assert.Zero(t, cache.puts)
}

func TestHazardCacheHitSetsFlag(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(cache, &stubFlood{zone: "AE"})

	first := svc.Hazard(sfLat, sfLon, "wildfire")
	assert.False(t, first.Cached)

	second := svc.Hazard(sfLat, sfLon, "wildfire")
	assert.True(t, second.Cached)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, 1, cache.puts)
}

func TestHazardCacheExpiryForcesRecompute(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(cache, &stubFlood{zone: "AE"})

	svc.Hazard(sfLat, sfLon, "drought")

	key := cacheKey(round4(sfLat), round4(sfLon), "drought")
	require.Contains(t, cache.samples, key)
	cache.samples[key].ExpiresAt = time.Now().UTC().Add(-time.Hour)

	again := svc.Hazard(sfLat, sfLon, "drought")
	assert.False(t, again.Cached)
	assert.Equal(t, 2, cache.puts)
}

func TestAssessBlendsAllHazards(t *testing.T) {
	svc := newTestService(newMemoryCache(), &stubFlood{zone: "X"})

	assessment := svc.Assess(sfLat, sfLon)

	assert.Len(t, assessment.Hazards, 8)
	assert.Len(t, assessment.TopHazards, 3)
	assert.True(t, assessment.Known())
	assert.Greater(t, assessment.Score, 0.0)
	assert.LessOrEqual(t, assessment.Score, 100.0)
	assert.Contains(t, assessment.Interpretation, "climate risk primarily driven by")

	// Ranked descending.
	assert.GreaterOrEqual(t, assessment.TopHazards[0].Score, assessment.TopHazards[1].Score)
	assert.GreaterOrEqual(t, assessment.TopHazards[1].Score, assessment.TopHazards[2].Score)
}

func TestUnknownAssessment(t *testing.T) {
	assessment := UnknownAssessment(0, 0)

	assert.Equal(t, 25.0, assessment.Score)
	assert.Equal(t, "Unknown", assessment.Level)
	assert.False(t, assessment.Known())
}
