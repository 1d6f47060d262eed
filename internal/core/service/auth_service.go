package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
	"github.com/laundryhub/laundry-marketplace/internal/core/ports"
)

// AuthService implements signup, login and logout.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, sessionTTL: sessionTTL, log: log}
}

// SignUp creates a new customer account. The plaintext password is hashed
// with bcrypt (fresh random salt per call) and never stored. The new user
// is not logged in.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	// Check-then-create keeps the friendly conflict message; the unique
	// index on email closes the race between the two steps.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsLaunderer:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

// LogIn verifies the credentials and starts a session holding a snapshot
// of the user record.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidPassword
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		User:      *user,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, sess, s.sessionTTL); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return sess, nil
}

// LogOut destroys the session. A session that already expired or never
// existed is not an error: logout is idempotent. The bool reports whether
// a live session was destroyed, so callers can skip bookkeeping for
// already-expired ones.
func (s *AuthService) LogOut(ctx context.Context, sessionID string) (bool, error) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
