package models

import (
	"time"

	"github.com/google/uuid"
)

// Request lifecycle statuses
const (
	RequestStatusNew      = "new"
	RequestStatusActive   = "active"
	RequestStatusDone     = "done"
	RequestStatusCanceled = "canceled"
)

// Request represents a client's posted repair job
type Request struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	CategoryID  *int64     `json:"category_id,omitempty"`
	CarID       *uuid.UUID `json:"car_id,omitempty"`
	CarModel    string     `json:"car_model"`
	Description string     `json:"description"`
	Location    Point      `json:"location"`
	Address     string     `json:"address,omitempty"`
	IsSOS       bool       `json:"is_sos"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RequestDTO is the flattened database row for a request
type RequestDTO struct {
	ID          uuid.UUID  `db:"id"`
	ClientID    uuid.UUID  `db:"client_id"`
	CategoryID  *int64     `db:"category_id"`
	CarID       *uuid.UUID `db:"car_id"`
	CarModel    string     `db:"car_model"`
	Description string     `db:"description"`
	Longitude   float64    `db:"longitude"`
	Latitude    float64    `db:"latitude"`
	Address     string     `db:"address"`
	IsSOS       bool       `db:"is_sos"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
}

// ToRequest converts a row to the domain model
func (d *RequestDTO) ToRequest() *Request {
	return &Request{
		ID:          d.ID,
		ClientID:    d.ClientID,
		CategoryID:  d.CategoryID,
		CarID:       d.CarID,
		CarModel:    d.CarModel,
		Description: d.Description,
		Location:    Point{X: d.Longitude, Y: d.Latitude},
		Address:     d.Address,
		IsSOS:       d.IsSOS,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}

// CreateRequestInput is the payload for posting a repair request
type CreateRequestInput struct {
	CategoryID  *int64     `json:"category_id,omitempty"`
	CarID       *uuid.UUID `json:"car_id,omitempty"`
	CarModel    string     `json:"car_model"`
	Description string     `json:"description" validate:"required"`
	Lat         float64    `json:"lat" validate:"latitude"`
	Lng         float64    `json:"lng" validate:"longitude"`
	Address     string     `json:"address,omitempty"`
	IsSOS       bool       `json:"is_sos,omitempty"`
}

// RequestView is the public projection of a request
type RequestView struct {
	ID          uuid.UUID `json:"id"`
	CarModel    string    `json:"car_model"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Location    Point     `json:"location"`
	IsSOS       bool      `json:"is_sos"`
	DistanceKm  *float64  `json:"distance_km,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToRequestView maps a request to its public projection
func ToRequestView(r *Request) RequestView {
	return RequestView{
		ID:          r.ID,
		CarModel:    r.CarModel,
		Description: r.Description,
		Status:      r.Status,
		Location:    r.Location,
		IsSOS:       r.IsSOS,
		CreatedAt:   r.CreatedAt,
	}
}

// Attachment kinds
const (
	AttachmentKindImage = "image"
	AttachmentKindVideo = "video"
)

// Attachment is an opaque media record owned by a request or a station
type Attachment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"-" db:"owner_id"`
	URL       string    `json:"url" db:"url"`
	Kind      string    `json:"kind" db:"kind"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
