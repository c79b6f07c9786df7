package usgs

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return values
}

func TestConvertFeature_ReordersCoordinateTriplet(t *testing.T) {
	var collection featureCollection
	require.NoError(t, json.Unmarshal([]byte(sampleCollection), &collection))
	require.Len(t, collection.Features, 2)

	e := ConvertFeature(collection.Features[0])

	assert.Equal(t, "us001", e.ID)
	assert.Equal(t, "4.5", e.Magnitude)
	// Wire order is [lon, lat, depth]; canonical order is lat, lon, depth.
	assert.Equal(t, "-33", e.Latitude)
	assert.Equal(t, "-71.9", e.Longitude)
	assert.Equal(t, "35.2", e.Depth)
	assert.Equal(t, "50 km W of Valparaiso, Chile", e.Location)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), e.Time)
	assert.Equal(t, "https://example.org/us001", e.URL)
}

func TestConvertFeature_MissingPlaceFallsBackToUnknown(t *testing.T) {
	mag := 5.1
	e := ConvertFeature(Feature{
		ID:         "us003",
		Properties: FeatureProperties{Mag: &mag, Time: 1700000200000},
		Geometry:   FeatureGeometry{Coordinates: []float64{-70.0, -30.0, 12.0}},
	})

	assert.Equal(t, "Unknown", e.Location)
	assert.Empty(t, e.Place)
}

func TestConvertFeature_NullMagnitudeBecomesEmptyString(t *testing.T) {
	e := ConvertFeature(Feature{
		ID:       "us004",
		Geometry: FeatureGeometry{Coordinates: []float64{-70.0, -30.0, 12.0}},
	})

	assert.Empty(t, e.Magnitude)
	_, ok := e.MagnitudeValue()
	assert.False(t, ok)
}
