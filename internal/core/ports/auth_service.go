package ports

import (
	"context"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

// AuthService implements the signup/login/logout workflow.
type AuthService interface {
	// SignUp creates a new customer account. It does not start a session.
	SignUp(ctx context.Context, name, email, password string) (*domain.User, error)
	// LogIn verifies credentials and starts a session holding a snapshot
	// of the user. The returned session id goes into the cookie.
	LogIn(ctx context.Context, email, password string) (*domain.Session, error)
	// LogOut destroys the session. Unknown ids are a no-op; the bool
	// reports whether a live session was actually destroyed.
	LogOut(ctx context.Context, sessionID string) (bool, error)
}
