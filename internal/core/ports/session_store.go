package ports

import (
	"context"
	"time"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

// SessionStore persists server-side sessions keyed by opaque id. Put is
// used both to create a session and to refresh its snapshot; either way
// the TTL restarts from the write.
type SessionStore interface {
	Put(ctx context.Context, s *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
