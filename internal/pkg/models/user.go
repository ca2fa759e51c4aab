package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleClient   = "client"
	RoleMechanic = "mechanic"
)

// User represents a registered user (driver-client or mechanic)
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone" db:"phone"`
	Role         string    `json:"role" db:"role"`
	TelegramID   string    `json:"telegram_id,omitempty" db:"telegram_id"`
	Rating       float64   `json:"rating" db:"rating"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
	Phone      string `json:"phone" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=client mechanic"`
	TelegramID string `json:"telegram_id,omitempty"`
}

// LoginRequest is the token issuance payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries an issued token
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// UserView is the public projection of a user
type UserView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Phone    string    `json:"phone,omitempty"`
	Rating   float64   `json:"rating"`
}

// ToUserView maps a user to its public projection
func ToUserView(u *User) *UserView {
	return &UserView{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Phone:    u.Phone,
		Rating:   u.Rating,
	}
}
