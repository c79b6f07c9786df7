package domain

import (
	"strconv"
	"time"
)

// Magnitude thresholds used for classifying stored events.
const (
	SignificantMagnitude = 5.0
	StrongMagnitude      = 6.1
)

// Earthquake is the canonical seismic event shape, independent of the USGS
// wire format. The ID is assigned upstream and acts as the natural key;
// magnitude, coordinates, and depth are kept as text to avoid locale and
// precision drift between store backends.
type Earthquake struct {
	ID        string
	Magnitude string
	Location  string
	Latitude  string
	Longitude string
	Depth     string
	Time      time.Time
	URL       string
	Place     string
	CreatedAt time.Time
}

// MagnitudeValue parses the stored magnitude. The second return is false when
// the stored text is not numeric.
func (e Earthquake) MagnitudeValue() (float64, bool) {
	v, err := strconv.ParseFloat(e.Magnitude, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// EarthquakeStats aggregates magnitude classes over a set of events.
type EarthquakeStats struct {
	Total       int `json:"total"`
	Significant int `json:"significant"`
	Strong      int `json:"strong"`
}

// ComputeEarthquakeStats counts events by magnitude class. Events whose stored
// magnitude does not parse are counted in Total only.
func ComputeEarthquakeStats(events []Earthquake) EarthquakeStats {
	stats := EarthquakeStats{Total: len(events)}
	for _, e := range events {
		mag, ok := e.MagnitudeValue()
		if !ok {
			continue
		}
		if mag >= SignificantMagnitude {
			stats.Significant++
		}
		if mag >= StrongMagnitude {
			stats.Strong++
		}
	}
	return stats
}
