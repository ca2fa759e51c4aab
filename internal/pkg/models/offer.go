package models

import (
	"time"

	"github.com/google/uuid"
)

// Derived offer statuses, computed at read time
const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusRejected = "rejected"
)

// Offer represents a mechanic's bid on a request
type Offer struct {
	ID         uuid.UUID `json:"id" db:"id"`
	RequestID  uuid.UUID `json:"request_id" db:"request_id"`
	MechanicID uuid.UUID `json:"mechanic_id" db:"mechanic_id"`
	Price      float64   `json:"price" db:"price"`
	Comment    string    `json:"comment" db:"comment"`
	IsAccepted bool      `json:"is_accepted" db:"is_accepted"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// DeriveOfferStatus computes the visible status of an offer from its
// accepted flag and the parent request's status. An unaccepted offer on
// a request that already left "new" lost the bid.
func DeriveOfferStatus(isAccepted bool, requestStatus string) string {
	if isAccepted {
		return OfferStatusAccepted
	}
	if requestStatus != RequestStatusNew {
		return OfferStatusRejected
	}
	return OfferStatusPending
}

// CreateOfferInput is the payload for bidding on a request
type CreateOfferInput struct {
	RequestID uuid.UUID `json:"request_id" validate:"required"`
	Price     float64   `json:"price" validate:"gte=0"`
	Comment   string    `json:"comment,omitempty"`
}

// OfferView is the client-facing projection of an offer, annotated with
// the bidding mechanic's station address and distance when resolvable
type OfferView struct {
	ID             uuid.UUID `json:"id"`
	MechanicName   string    `json:"mechanic_name"`
	MechanicPhone  string    `json:"mechanic_phone,omitempty"`
	Price          float64   `json:"price"`
	Comment        string    `json:"comment"`
	IsAccepted     bool      `json:"is_accepted"`
	Status         string    `json:"status"`
	StationAddress string    `json:"station_address,omitempty"`
	DistanceKm     *float64  `json:"distance_km,omitempty"`
}

// ToOfferView maps an offer plus its mechanic to the client-facing projection
func ToOfferView(o *Offer, mechanic *User, requestStatus string) OfferView {
	return OfferView{
		ID:            o.ID,
		MechanicName:  mechanic.Username,
		MechanicPhone: mechanic.Phone,
		Price:         o.Price,
		Comment:       o.Comment,
		IsAccepted:    o.IsAccepted,
		Status:        DeriveOfferStatus(o.IsAccepted, requestStatus),
	}
}

// MechanicJobView is the mechanic-facing projection of one of their offers
type MechanicJobView struct {
	RequestID     uuid.UUID `json:"id"`
	OfferID       uuid.UUID `json:"offer_id"`
	CarModel      string    `json:"car_model"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	ClientName    string    `json:"client_name"`
	ClientPhone   string    `json:"client_phone,omitempty"`
	RequestStatus string    `json:"request_status"`
	Location      *Point    `json:"location,omitempty"`
}

// ToMechanicJobView maps an offer plus its request and client to the
// mechanic-facing projection
func ToMechanicJobView(o *Offer, req *Request, client *User) MechanicJobView {
	loc := req.Location
	return MechanicJobView{
		RequestID:     req.ID,
		OfferID:       o.ID,
		CarModel:      req.CarModel,
		Description:   req.Description,
		Price:         o.Price,
		Status:        DeriveOfferStatus(o.IsAccepted, req.Status),
		ClientName:    client.Username,
		ClientPhone:   client.Phone,
		RequestStatus: req.Status,
		Location:      &loc,
	}
}
