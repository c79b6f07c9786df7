package usgs

import (
	"strconv"
	"time"

	"sismo/internal/domain"
)

// ConvertFeature maps a USGS feature into the canonical event shape. The wire
// coordinate triplet is [longitude, latitude, depth] and is reordered here;
// magnitude and depth become text for storage-type uniformity.
func ConvertFeature(f Feature) domain.Earthquake {
	var longitude, latitude, depth float64
	if len(f.Geometry.Coordinates) >= 3 {
		longitude = f.Geometry.Coordinates[0]
		latitude = f.Geometry.Coordinates[1]
		depth = f.Geometry.Coordinates[2]
	}

	magnitude := ""
	if f.Properties.Mag != nil {
		magnitude = strconv.FormatFloat(*f.Properties.Mag, 'f', -1, 64)
	}

	location := f.Properties.Place
	if location == "" {
		location = "Unknown"
	}

	return domain.Earthquake{
		ID:        f.ID,
		Magnitude: magnitude,
		Location:  location,
		Latitude:  strconv.FormatFloat(latitude, 'f', -1, 64),
		Longitude: strconv.FormatFloat(longitude, 'f', -1, 64),
		Depth:     strconv.FormatFloat(depth, 'f', -1, 64),
		Time:      time.UnixMilli(f.Properties.Time).UTC(),
		URL:       f.Properties.URL,
		Place:     f.Properties.Place,
	}
}
