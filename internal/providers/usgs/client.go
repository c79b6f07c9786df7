package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// South America bounding box used for the bulk feed query.
const (
	minLatitude  = "-56.0"
	maxLatitude  = "13.0"
	minLongitude = "-81.0"
	maxLongitude = "-34.0"
)

const defaultBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1"

// Feature is a single event from the USGS GeoJSON feed.
type Feature struct {
	ID         string            `json:"id"`
	Properties FeatureProperties `json:"properties"`
	Geometry   FeatureGeometry   `json:"geometry"`
}

type FeatureProperties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
	Time  int64    `json:"time"` // epoch milliseconds
	URL   string   `json:"url"`
}

type FeatureGeometry struct {
	// Coordinates arrive as [longitude, latitude, depth].
	Coordinates []float64 `json:"coordinates"`
}

type featureCollection struct {
	Features []Feature `json:"features"`
}

// Options configures the USGS client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// Client queries the USGS earthquake catalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a USGS catalog client.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, httpClient: client, logger: opts.Logger}
}

// FetchRecent queries the South America bounding box for events at or above
// minMagnitude within the trailing daysBack window. Upstream failures are
// logged and surfaced as an empty slice so a periodic sync never crashes on a
// catalog outage.
func (c *Client) FetchRecent(ctx context.Context, minMagnitude float64, daysBack int) []Feature {
	params := c.baseParams(minMagnitude, daysBack)
	params.Set("minlatitude", minLatitude)
	params.Set("maxlatitude", maxLatitude)
	params.Set("minlongitude", minLongitude)
	params.Set("maxlongitude", maxLongitude)

	features, err := c.query(ctx, params)
	if err != nil {
		c.logger.Error().Err(err).Msg("usgs: recent earthquakes fetch failed")
		return nil
	}
	c.logger.Info().Int("count", len(features)).Msg("usgs: fetched earthquakes")
	return features
}

// FetchNearLocation queries events within radiusKm of a point. Unlike
// FetchRecent this path propagates upstream failures: a targeted search is
// synchronous and failure-visible.
func (c *Client) FetchNearLocation(ctx context.Context, latitude, longitude, radiusKm, minMagnitude float64, daysBack int) ([]Feature, error) {
	params := c.baseParams(minMagnitude, daysBack)
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("maxradiuskm", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	return c.query(ctx, params)
}

func (c *Client) baseParams(minMagnitude float64, daysBack int) url.Values {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -daysBack)
	params := url.Values{}
	params.Set("format", "geojson")
	params.Set("starttime", start.Format("2006-01-02"))
	params.Set("endtime", end.Format("2006-01-02"))
	params.Set("minmagnitude", strconv.FormatFloat(minMagnitude, 'f', -1, 64))
	params.Set("orderby", "time")
	return params
}

func (c *Client) query(ctx context.Context, params url.Values) ([]Feature, error) {
	endpoint := c.baseURL + "/query?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var collection featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return collection.Features, nil
}
