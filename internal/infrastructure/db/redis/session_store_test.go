package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionStore_PutGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	fee := 9.5
	sess := &domain.Session{
		ID: "sid-1",
		User: domain.User{
			ID:          "u1",
			Name:        "Ana",
			Email:       "a@x.com",
			IsLaunderer: true,
			Fee:         &fee,
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Put(ctx, sess, time.Hour))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, sess.User.Email, got.User.Email)
	require.True(t, got.User.IsLaunderer)
	require.NotNil(t, got.User.Fee)
	require.Equal(t, fee, *got.User.Fee)
}

func TestSessionStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := &domain.Session{ID: "sid-2", User: domain.User{ID: "u2"}}
	require.NoError(t, store.Put(ctx, sess, time.Hour))
	require.NoError(t, store.Delete(ctx, "sid-2"))

	_, err := store.Get(ctx, "sid-2")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.ErrorIs(t, store.Delete(ctx, "sid-2"), domain.ErrSessionNotFound)
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := &domain.Session{ID: "sid-3", User: domain.User{ID: "u3"}}
	require.NoError(t, store.Put(ctx, sess, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sid-3")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_PutRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := &domain.Session{ID: "sid-4", User: domain.User{ID: "u4"}}
	require.NoError(t, store.Put(ctx, sess, time.Minute))

	mr.FastForward(30 * time.Second)
	sess.User.IsLaunderer = true
	require.NoError(t, store.Put(ctx, sess, time.Minute))

	mr.FastForward(45 * time.Second)
	got, err := store.Get(ctx, "sid-4")
	require.NoError(t, err)
	require.True(t, got.User.IsLaunderer)
}
