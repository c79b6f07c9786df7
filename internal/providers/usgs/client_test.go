package usgs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "features": [
    {
      "id": "us001",
      "properties": {"mag": 4.5, "place": "50 km W of Valparaiso, Chile", "time": 1700000000000, "url": "https://example.org/us001"},
      "geometry": {"coordinates": [-71.9, -33.0, 35.2]}
    },
    {
      "id": "us002",
      "properties": {"mag": 6.3, "place": "Near Lima, Peru", "time": 1700000100000, "url": "https://example.org/us002"},
      "geometry": {"coordinates": [-77.0, -12.0, 10.0]}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, Logger: zerolog.Nop()})
}

func TestFetchRecent_UsesSouthAmericaBoundingBox(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(sampleCollection))
	})

	features := client.FetchRecent(context.Background(), 2.5, 7)
	require.Len(t, features, 2)
	assert.Equal(t, "us001", features[0].ID)

	values := parseQuery(t, query)
	assert.Equal(t, "geojson", values.Get("format"))
	assert.Equal(t, "-56.0", values.Get("minlatitude"))
	assert.Equal(t, "13.0", values.Get("maxlatitude"))
	assert.Equal(t, "-81.0", values.Get("minlongitude"))
	assert.Equal(t, "-34.0", values.Get("maxlongitude"))
	assert.Equal(t, "2.5", values.Get("minmagnitude"))
	assert.Equal(t, "time", values.Get("orderby"))
}

func TestFetchRecent_SwallowsUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	features := client.FetchRecent(context.Background(), 0, 30)
	assert.Empty(t, features)
}

func TestFetchNearLocation_PropagatesUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	_, err := client.FetchNearLocation(context.Background(), -33.0, -71.6, 500, 0, 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestFetchNearLocation_SendsRadiusParams(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"features": []}`))
	})

	features, err := client.FetchNearLocation(context.Background(), -33.45, -70.66, 250, 3, 14)
	require.NoError(t, err)
	assert.Empty(t, features)

	values := parseQuery(t, query)
	assert.Equal(t, "-33.45", values.Get("latitude"))
	assert.Equal(t, "-70.66", values.Get("longitude"))
	assert.Equal(t, "250", values.Get("maxradiuskm"))
}
