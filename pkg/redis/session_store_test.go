package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testSessionKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func newTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = cli.Close() })
	SetClient(cli)

	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)
	return store, srv
}

func TestNewSessionStore_RejectsBadKeys(t *testing.T) {
	_, err := NewSessionStore("not hex")
	require.Error(t, err)

	_, err = NewSessionStore("abcd1234")
	require.Error(t, err)
	require.Contains(t, err.Error(), "32 bytes")
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, srv := newTestSessionStore(t)
	ctx := context.Background()

	data := &SessionData{AccessToken: "access-abc", RefreshToken: "refresh-def"}
	require.NoError(t, store.CreateSession(ctx, "sid-1", data, time.Minute))

	got, err := store.GetSession(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, data, got)

	// Tokens never appear in the clear in the cache.
	raw, err := srv.Get("session:sid-1")
	require.NoError(t, err)
	require.NotContains(t, raw, "access-abc")
}

func TestSessionStore_WrongKeyCannotOpen(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSession(ctx, "sid-1", &SessionData{AccessToken: "a"}, time.Minute))

	other, err := NewSessionStore(strings.Repeat("ab", 32))
	require.NoError(t, err)
	_, err = other.GetSession(ctx, "sid-1")
	require.Error(t, err)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSession(ctx, "sid-1", &SessionData{AccessToken: "a"}, time.Minute))
	require.NoError(t, store.DeleteSession(ctx, "sid-1"))

	_, err := store.GetSession(ctx, "sid-1")
	require.ErrorIs(t, err, goredis.Nil)
}
