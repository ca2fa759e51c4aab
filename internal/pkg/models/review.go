package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a client's review of the mechanic who serviced a request
type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	RequestID  uuid.UUID `json:"request_id" db:"request_id"`
	AuthorID   uuid.UUID `json:"author_id" db:"author_id"`
	MechanicID uuid.UUID `json:"mechanic_id" db:"mechanic_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ClientReview is a mechanic's review of the client for a finished request
type ClientReview struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RequestID uuid.UUID `json:"request_id" db:"request_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateReviewInput is the payload for both review directions
type CreateReviewInput struct {
	RequestID uuid.UUID `json:"request_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment,omitempty"`
}

// ReviewView is the public projection of a review
type ReviewView struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  string    `json:"created_at"`
}

// ToReviewView maps a review and its author to the public projection
func ToReviewView(r *Review, author *User) ReviewView {
	return ReviewView{
		ID:         r.ID,
		AuthorName: author.Username,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt.Format("2006-01-02"),
	}
}
