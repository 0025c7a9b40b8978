package climate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"aequitas/server/internal/models"
)

const femaNFHLBaseURL = "https://hazards.fema.gov/gis/nfhl/rest/services/public/NFHL/MapServer"

// FloodZoneClient resolves the FEMA flood zone designation at a coordinate.
// An empty zone with a nil error means the point is outside mapped hazard
// areas.
type FloodZoneClient interface {
	FloodZone(lat, lon float64) (string, error)
}

// FEMAClient queries the National Flood Hazard Layer identify endpoint.
type FEMAClient struct {
	logger  *logrus.Logger
	baseURL string
	client  *http.Client
}

func NewFEMAClient(logger *logrus.Logger, timeout time.Duration) *FEMAClient {
	return &FEMAClient{
		logger:  logger,
		baseURL: femaNFHLBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SetBaseURL points the client at a different map server. Used by tests.
func (c *FEMAClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

type nfhlResponse struct {
	Results []struct {
		Attributes map[string]interface{} `json:"attributes"`
	} `json:"results"`
}

// FloodZone identifies the flood zone polygon containing the point.
func (c *FEMAClient) FloodZone(lat, lon float64) (string, error) {
	params := url.Values{
		"geometry":       []string{fmt.Sprintf("%f,%f", lon, lat)},
		"geometryType":   []string{"esriGeometryPoint"},
		"sr":             []string{"4326"},
		"layers":         []string{"all"},
		"tolerance":      []string{"2"},
		"mapExtent":      []string{fmt.Sprintf("%f,%f,%f,%f", lon-0.01, lat-0.01, lon+0.01, lat+0.01)},
		"imageDisplay":   []string{"400,400,96"},
		"returnGeometry": []string{"false"},
		"f":              []string{"json"},
	}

	req, err := http.NewRequest("GET", c.baseURL+"/identify", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &models.LookupFailure{Service: "fema nfhl", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &models.LookupFailure{Service: "fema nfhl", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}

	var result nfhlResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %v", err)
	}

	for _, r := range result.Results {
		if zone, ok := r.Attributes["FLD_ZONE"].(string); ok && zone != "" {
			return zone, nil
		}
		if zone, ok := r.Attributes["ZONE"].(string); ok && zone != "" {
			return zone, nil
		}
	}

	return "", nil
}
