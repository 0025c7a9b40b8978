package geocoding

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

const censusGeocoderURL = "https://geocoding.geo.census.gov/geocoder/locations/address"

// Geocoder resolves US street addresses to coordinates with the Census
// Bureau geocoder. Results are memoized for the life of the process.
type Geocoder struct {
	logger    *logrus.Logger
	baseURL   string
	cache     map[string][]float64
	cacheLock sync.RWMutex
	client    *http.Client
}

func NewGeocoder(logger *logrus.Logger, timeout time.Duration) *Geocoder {
	return &Geocoder{
		logger:  logger,
		baseURL: censusGeocoderURL,
		cache:   make(map[string][]float64),
		client:  &http.Client{Timeout: timeout},
	}
}

// SetBaseURL points the geocoder at a different endpoint. Used by tests.
func (g *Geocoder) SetBaseURL(baseURL string) {
	g.baseURL = baseURL
}

type censusResponse struct {
	Result struct {
		AddressMatches []struct {
			Coordinates struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			} `json:"coordinates"`
			MatchedAddress string `json:"matchedAddress"`
		} `json:"addressMatches"`
	} `json:"result"`
}

// GeocodeAddress resolves a street address to (lat, lon). When the full
// address has no match it retries with the ZIP code alone before giving up.
func (g *Geocoder) GeocodeAddress(street, city, state, zipcode string) (float64, float64, error) {
	cacheKey := fmt.Sprintf("%s|%s|%s|%s", street, city, state, zipcode)

	g.cacheLock.RLock()
	if coords, ok := g.cache[cacheKey]; ok {
		g.cacheLock.RUnlock()
		if len(coords) == 2 {
			return coords[0], coords[1], nil
		}
		return 0, 0, fmt.Errorf("invalid cached coordinates")
	}
	g.cacheLock.RUnlock()

	params := url.Values{
		"street":    []string{street},
		"city":      []string{city},
		"state":     []string{state},
		"zip":       []string{zipcode},
		"benchmark": []string{"Public_AR_Current"},
		"format":    []string{"json"},
	}

	lat, lon, err := g.query(params)
	if err != nil && zipcode != "" {
		g.logger.WithFields(logrus.Fields{
			"street": street,
			"zip":    zipcode,
		}).Warn("Full address geocoding failed, retrying with ZIP only")

		params = url.Values{
			"zip":       []string{zipcode},
			"benchmark": []string{"Public_AR_Current"},
			"format":    []string{"json"},
		}
		lat, lon, err = g.query(params)
	}
	if err != nil {
		g.logger.WithError(err).WithFields(logrus.Fields{
			"city":  city,
			"state": state,
		}).Warn("Geocoding failed")
		return 0, 0, &models.LookupFailure{Service: "census geocoder", Err: err}
	}

	g.cacheLock.Lock()
	g.cache[cacheKey] = []float64{lat, lon}
	g.cacheLock.Unlock()

	return lat, lon, nil
}

func (g *Geocoder) query(params url.Values) (float64, float64, error) {
	req, err := http.NewRequest("GET", g.baseURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %v", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read response: %v", err)
	}

	var result censusResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %v", err)
	}

	if len(result.Result.AddressMatches) == 0 {
		return 0, 0, fmt.Errorf("no geocoder matches")
	}

	match := result.Result.AddressMatches[0]
	return match.Coordinates.Y, match.Coordinates.X, nil
}
