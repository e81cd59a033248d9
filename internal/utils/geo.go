package utils

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/antar/internal/pkg/models"
)

// Earth's mean radius in kilometers
const earthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned for latitudes outside [-90,90] or longitudes outside [-180,180]
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ValidateLocation checks that a location is within valid degree ranges
func ValidateLocation(location models.Location) error {
	lat, lng := location.Latitude, location.Longitude
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, lng)
	}
	return nil
}

// Distance returns the great-circle distance between two points in kilometers using the Haversine formula
func Distance(a, b models.Location) (float64, error) {
	if err := ValidateLocation(a); err != nil {
		return 0, err
	}
	if err := ValidateLocation(b); err != nil {
		return 0, err
	}
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0, nil
	}

	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	// sin² terms are even, so swapping a and b yields the same value
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1
	}
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h)), nil
}

// EncodeLocation converts a location to a geohash string
func EncodeLocation(location models.Location, precision uint) string {
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, precision)
}

// DecodeGeohash converts a geohash string to the center of its cell
func DecodeGeohash(hash string) models.Location {
	lat, lng := geohash.Decode(hash)
	return models.Location{Latitude: lat, Longitude: lng}
}

// GetNeighbors returns the neighboring geohashes of a given geohash
func GetNeighbors(hash string) []string {
	return geohash.Neighbors(hash)
}
