package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
	"github.com/laundryhub/laundry-marketplace/internal/core/ports"
)

// LaundryService implements the authenticated marketplace workflow.
type LaundryService struct {
	users      ports.UserRepository
	pickups    ports.PickupRepository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewLaundryService(
	users ports.UserRepository,
	pickups ports.PickupRepository,
	sessions ports.SessionStore,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *LaundryService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &LaundryService{users: users, pickups: pickups, sessions: sessions, sessionTTL: sessionTTL, log: log}
}

// Dashboard branches the query by the session user's role: launderers see
// pickups assigned to them, customers see pickups they requested. An empty
// list is a valid result. Rows come back ordered by pickup date ascending
// regardless of how the repository returns them.
func (s *LaundryService) Dashboard(ctx context.Context, user *domain.User) ([]domain.PickupView, error) {
	var (
		views []domain.PickupView
		err   error
	)
	if user.IsLaunderer {
		views, err = s.pickups.ListByLaunderer(ctx, user.ID)
	} else {
		views, err = s.pickups.ListByCustomer(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].PickupDate.Before(views[j].PickupDate)
	})
	return views, nil
}

// Promote flips the session user to launderer with the given fee and
// rewrites the session snapshot with the post-update record. The
// transition is one-way: there is no demotion path.
func (s *LaundryService) Promote(ctx context.Context, session *domain.Session, fee float64) (*domain.User, error) {
	if fee <= 0 {
		return nil, domain.ErrInvalidFee
	}

	updated, err := s.users.Promote(ctx, session.User.ID, fee)
	if err != nil {
		return nil, err
	}

	session.User = *updated
	if err := s.sessions.Put(ctx, session, s.sessionTTL); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Float64("fee", fee).Msg("user promoted to launderer")
	return updated, nil
}

// ListLaunderers returns the directory of launderers excluding the
// current user.
func (s *LaundryService) ListLaunderers(ctx context.Context, currentUserID string) ([]*domain.User, error) {
	return s.users.FindLaunderers(ctx, currentUserID)
}

// GetLaunderer returns a single launderer profile. A missing id is
// ErrUserNotFound, surfaced as a 404 by the transport layer.
func (s *LaundryService) GetLaunderer(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// RequestPickup creates a pickup request owned by userID. The launderer id
// must resolve to a user that actually offers laundry services.
func (s *LaundryService) RequestPickup(ctx context.Context, userID, laundererID string, pickupDate time.Time) (*domain.PickupRequest, error) {
	launderer, err := s.users.FindByID(ctx, laundererID)
	if err != nil {
		return nil, domain.ErrLaundererNotFound
	}
	if !launderer.IsLaunderer {
		return nil, domain.ErrLaundererNotFound
	}

	pickup := &domain.PickupRequest{
		PickupDate:  pickupDate,
		UserID:      userID,
		LaundererID: laundererID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.pickups.Create(ctx, pickup); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("launderer_id", laundererID).
		Time("pickup_date", pickupDate).
		Msg("pickup requested")
	return pickup, nil
}
