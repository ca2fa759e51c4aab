package models

// Point is a geographic coordinate pair in WGS84.
// The wire shape follows postgres point semantics: x is longitude, y is latitude.
type Point struct {
	X float64 `json:"x"` // longitude
	Y float64 `json:"y"` // latitude
}

// NewPoint builds a Point from latitude/longitude query parameters
func NewPoint(lat, lng float64) Point {
	return Point{X: lng, Y: lat}
}

// Latitude returns the y coordinate
func (p Point) Latitude() float64 { return p.Y }

// Longitude returns the x coordinate
func (p Point) Longitude() float64 { return p.X }

// GeoMember is one result of a radius query against the geo index
type GeoMember struct {
	ID         string
	Location   Point
	DistanceKm float64
}
