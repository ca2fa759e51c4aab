package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

func TestCalculateDistance_ZeroForSamePoint(t *testing.T) {
	p := models.NewPoint(50.4501, 30.5234)
	assert.Equal(t, 0.0, CalculateDistance(p, p))
}

func TestCalculateDistance_OneDegreeLatitude(t *testing.T) {
	// one degree of latitude is about 111.2 km
	p1 := models.NewPoint(50.0, 30.0)
	p2 := models.NewPoint(51.0, 30.0)

	dist := CalculateDistance(p1, p2)
	assert.InDelta(t, 111.2, dist, 1.2)
}

func TestCalculateDistance_Symmetric(t *testing.T) {
	kyiv := models.NewPoint(50.4501, 30.5234)
	lviv := models.NewPoint(49.8397, 24.0297)

	assert.InDelta(t, CalculateDistance(kyiv, lviv), CalculateDistance(lviv, kyiv), 0.0001)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 1.2, RoundKm(1.24))
	assert.Equal(t, 1.3, RoundKm(1.25))
	assert.Equal(t, 0.0, RoundKm(0.04))
	assert.Equal(t, 10.0, RoundKm(10.0))
}

func TestEncodeLocation(t *testing.T) {
	p := models.NewPoint(50.4501, 30.5234)
	hash := EncodeLocation(p, 9)
	assert.Len(t, hash, 9)

	lat, lng := DecodeGeohash(hash)
	assert.InDelta(t, p.Latitude(), lat, 0.001)
	assert.InDelta(t, p.Longitude(), lng, 0.001)
}
