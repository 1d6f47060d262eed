package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record behind the session cookie. User is a
// snapshot taken at login or promotion time; it is not reloaded from the
// user store and can go stale after out-of-band changes.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
