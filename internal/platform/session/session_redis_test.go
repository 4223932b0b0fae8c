package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookwhat/internal/feature/auth/domain/entity"
	"cookwhat/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func newSession(id string, userID uint, createdAt time.Time, ttl time.Duration) *entity.Session {
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(ttl),
	}
}

func TestSessionRedis_CreateAndFind(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	s := newSession("abc", 1, time.Now(), time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	assert.True(t, mr.Exists("session:abc"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("session:abc").Seconds(), 5)
	members, err := mr.ZMembers("session:user:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, members)

	got, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.UserID)
	assert.Equal(t, "test-agent", got.UserAgent)
	assert.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Millisecond)
	assert.True(t, got.IsValid())

	assert.Error(t, repo.Create(ctx, s), "duplicate id")
	assert.Error(t, repo.Create(ctx, newSession("old", 1, time.Now().Add(-2*time.Hour), time.Hour)), "already expired")

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_FindByID_Corrupt(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("session:bad", "{not json"))

	_, err := NewSessionRedis(client, "session").FindByID(context.Background(), "bad")
	assert.ErrorContains(t, err, "unmarshal")
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSession("abc", 1, time.Now(), time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "abc"))

	got, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, got.IsRevoked())
	assert.False(t, got.IsValid())
	assert.Greater(t, mr.TTL("session:abc"), time.Duration(0), "revoked session keeps its ttl")

	n, err := repo.CountActiveByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, repo.Revoke(ctx, "abc"))
	assert.ErrorIs(t, repo.Revoke(ctx, "missing"), usecase.ErrSessionNotFound)
}

func TestSessionRedis_CountAndDeleteOldest(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newSession("second", 7, now.Add(-time.Minute), time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("first", 7, now.Add(-time.Hour), 2*time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("third", 7, now, time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("other-user", 8, now, time.Hour)))

	n, err := repo.CountActiveByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, repo.DeleteOldestByUserID(ctx, 7))
	assert.False(t, mr.Exists("session:first"))

	n, err = repo.CountActiveByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// An index entry whose key already expired is pruned.
	mr.Del("session:second")
	n, err = repo.CountActiveByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	members, err := mr.ZMembers("session:user:7")
	require.NoError(t, err)
	assert.Equal(t, []string{"third"}, members)

	assert.NoError(t, repo.DeleteOldestByUserID(ctx, 99))
}

func TestSessionRedis_DeleteExpired(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	n, err := NewSessionRedis(client, "session").DeleteExpired(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
}
