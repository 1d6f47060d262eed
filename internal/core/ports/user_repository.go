package ports

import (
	"context"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Promote sets is_launderer=true and the fee on the given user and
	// returns the post-update record.
	Promote(ctx context.Context, id string, fee float64) (*domain.User, error)
	// FindLaunderers returns all users with is_launderer=true, excluding
	// excludeID (the caller's own account).
	FindLaunderers(ctx context.Context, excludeID string) ([]*domain.User, error)
}
