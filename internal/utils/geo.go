package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// CalculateDistance calculates the distance between two points in kilometers using the Haversine formula
func CalculateDistance(p1, p2 models.Point) float64 {
	// Earth's radius in kilometers
	const earthRadius = 6371.0

	lat1 := p1.Latitude() * math.Pi / 180.0
	lon1 := p1.Longitude() * math.Pi / 180.0
	lat2 := p2.Latitude() * math.Pi / 180.0
	lon2 := p2.Longitude() * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// RoundKm rounds a distance to one decimal place for API responses
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// EncodeLocation converts a point to a geohash string
func EncodeLocation(p models.Point, precision uint) string {
	return geohash.EncodeWithPrecision(p.Latitude(), p.Longitude(), precision)
}

// DecodeGeohash converts a geohash string back to latitude and longitude
func DecodeGeohash(hash string) (latitude, longitude float64) {
	return geohash.Decode(hash)
}
