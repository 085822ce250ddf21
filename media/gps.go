package media

import (
	"bytes"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/camden-git/inspectsysbackend/models"
)

// ExtractGPS reads EXIF GPS coordinates from raw image bytes. Used as a
// fallback position source when the device geolocation lookup fails but the
// camera embedded a fix in the capture
func ExtractGPS(raw []byte) (*models.GPSLocation, error) {
	exifData, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("gps: no EXIF data: %w", err)
	}

	lat, lon, err := exifData.LatLong()
	if err != nil {
		return nil, fmt.Errorf("gps: no position tags: %w", err)
	}

	loc := &models.GPSLocation{Latitude: lat, Longitude: lon}

	// altitude is optional; stored as a rational metres-above-reference value
	if tag, tagErr := exifData.Get(exif.GPSAltitude); tagErr == nil && tag != nil {
		if num, den, ratErr := tag.Rat2(0); ratErr == nil && den != 0 {
			alt := float64(num) / float64(den)
			loc.Altitude = &alt
		}
	}

	return loc, nil
}
