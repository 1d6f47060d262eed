package ports

import (
	"context"
	"time"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

// LaundryService implements the authenticated marketplace workflow.
type LaundryService interface {
	// Dashboard returns the pickups relevant to the session user: requests
	// assigned to them when they are a launderer, requests they own
	// otherwise. Sorted by pickup date ascending.
	Dashboard(ctx context.Context, user *domain.User) ([]domain.PickupView, error)
	// Promote flips the session user to launderer with the given fee and
	// refreshes the session snapshot with the post-update record.
	Promote(ctx context.Context, session *domain.Session, fee float64) (*domain.User, error)
	// ListLaunderers returns the directory of launderers other than the
	// session user.
	ListLaunderers(ctx context.Context, currentUserID string) ([]*domain.User, error)
	// GetLaunderer returns a single launderer profile.
	GetLaunderer(ctx context.Context, id string) (*domain.User, error)
	// RequestPickup creates a pickup request owned by the session user.
	RequestPickup(ctx context.Context, userID, laundererID string, pickupDate time.Time) (*domain.PickupRequest, error)
}
