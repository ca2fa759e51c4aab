package models

import (
	"time"

	"github.com/google/uuid"
)

// Car represents a client's vehicle
type Car struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"owner_id" db:"owner_id"`
	LicensePlate string    `json:"license_plate" db:"license_plate"`
	BrandModel   string    `json:"brand_model" db:"brand_model"`
	Year         *int      `json:"year,omitempty" db:"year"`
	VIN          string    `json:"vin,omitempty" db:"vin"`
	Color        string    `json:"color,omitempty" db:"color"`
	Type         string    `json:"type,omitempty" db:"type"`
	Body         string    `json:"body,omitempty" db:"body"`
	Fuel         string    `json:"fuel,omitempty" db:"fuel"`
	EngineVolume string    `json:"engine_volume,omitempty" db:"engine_volume"`
	Weight       string    `json:"weight,omitempty" db:"weight"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CarUpsertRequest is the payload for adding or updating a car
type CarUpsertRequest struct {
	LicensePlate string `json:"license_plate" validate:"required,min=3"`
	BrandModel   string `json:"brand_model" validate:"required"`
	Year         *int   `json:"year,omitempty"`
	VIN          string `json:"vin,omitempty"`
	Color        string `json:"color,omitempty"`
	Type         string `json:"type,omitempty"`
	Body         string `json:"body,omitempty"`
	Fuel         string `json:"fuel,omitempty"`
	EngineVolume string `json:"engine_volume,omitempty"`
	Weight       string `json:"weight,omitempty"`
}

// PlateInfo is the result of a license plate registry lookup
type PlateInfo struct {
	LicensePlate string `json:"license_plate"`
	BrandModel   string `json:"brand_model"`
	Year         *int   `json:"year,omitempty"`
	VIN          string `json:"vin,omitempty"`
	Color        string `json:"color,omitempty"`
	Type         string `json:"type,omitempty"`
	Body         string `json:"body,omitempty"`
	Fuel         string `json:"fuel,omitempty"`
	EngineVolume string `json:"engine_volume,omitempty"`
	Weight       string `json:"weight,omitempty"`
}
