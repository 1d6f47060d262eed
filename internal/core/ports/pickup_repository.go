package ports

import (
	"context"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

// PickupRepository defines persistence operations for pickup requests.
// List queries resolve the referenced user and launderer names and return
// rows sorted by pickup date ascending.
type PickupRepository interface {
	Create(ctx context.Context, p *domain.PickupRequest) error
	ListByCustomer(ctx context.Context, userID string) ([]domain.PickupView, error)
	ListByLaunderer(ctx context.Context, laundererID string) ([]domain.PickupView, error)
}
