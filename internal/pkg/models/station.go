package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceStation represents a mechanic's registered repair business
type ServiceStation struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	Phone       string    `json:"phone"`
	Location    Point     `json:"location"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// StationDTO is the flattened database row for a station.
// The point column is split into coordinates in the SELECT.
type StationDTO struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Address     string    `db:"address"`
	Description string    `db:"description"`
	Phone       string    `db:"phone"`
	Longitude   float64   `db:"longitude"`
	Latitude    float64   `db:"latitude"`
	Rating      float64   `db:"rating"`
	CreatedAt   time.Time `db:"created_at"`
}

// ToStation converts a row to the domain model
func (d *StationDTO) ToStation() *ServiceStation {
	return &ServiceStation{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Address:     d.Address,
		Description: d.Description,
		Phone:       d.Phone,
		Location:    Point{X: d.Longitude, Y: d.Latitude},
		Rating:      d.Rating,
		CreatedAt:   d.CreatedAt,
	}
}

// StationUpsertRequest is the payload for creating/updating the caller's station
type StationUpsertRequest struct {
	Name        string  `json:"name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Description string  `json:"description,omitempty"`
	Phone       string  `json:"phone" validate:"required"`
	Lat         float64 `json:"lat" validate:"required,latitude"`
	Lng         float64 `json:"lng" validate:"required,longitude"`
}

// StationView is the public projection of a station
type StationView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Location    Point     `json:"location"`
	Rating      float64   `json:"rating"`
	DistanceKm  *float64  `json:"distance_km,omitempty"`
}

// StationDetailView is a station with its photos and the owner's reviews
type StationDetailView struct {
	StationView
	Photos  []Attachment `json:"photos"`
	Reviews []ReviewView `json:"reviews"`
}

// ToStationView maps a station to its public projection
func ToStationView(s *ServiceStation) StationView {
	return StationView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		Phone:       s.Phone,
		Location:    s.Location,
		Rating:      s.Rating,
	}
}
