package domain

import (
	"errors"
	"time"
)

var (
	ErrMissingCredentials = errors.New("missing email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrLaundererNotFound  = errors.New("launderer not found")
	ErrInvalidFee         = errors.New("fee must be a positive number")
)

// User models an account in the marketplace. A user starts as a plain
// customer and may opt in to offer laundry services, at which point
// IsLaunderer flips to true and Fee carries the advertised price.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsLaunderer  bool      `json:"is_launderer"`
	Fee          *float64  `json:"fee,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
