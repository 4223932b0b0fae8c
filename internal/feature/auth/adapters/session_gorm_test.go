package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cookwhat/internal/feature/auth/domain/entity"
	"cookwhat/internal/feature/auth/usecase"
	"cookwhat/internal/testutil"
)

// setupSessionTestDB prepares a database with one user to own sessions.
func setupSessionTestDB(t *testing.T) (*gorm.DB, *entity.User) {
	t.Helper()

	db := testutil.NewDB(t, &entity.User{}, &SessionModel{})
	return db, testutil.SeedUser(t, db, testutil.Faker(10))
}

// seedSession creates a test session in the database.
func seedSession(t *testing.T, db *gorm.DB, id string, userID uint, createdAt, expiresAt time.Time, revokedAt *time.Time) {
	t.Helper()

	m := &SessionModel{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
		RevokedAt: revokedAt,
	}
	require.NoError(t, db.Omit("User").Create(m).Error, "failed to seed session")
}

func TestSessionGorm_CreateAndFind(t *testing.T) {
	t.Parallel()

	db, user := setupSessionTestDB(t)
	repo := NewSessionGorm(db)
	now := time.Now()

	s := &entity.Session{ID: "sid-1", UserID: user.ID, UserAgent: "Mozilla/5.0", IPAddress: "192.168.1.1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(context.Background(), s))

	got, err := repo.FindByID(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "Mozilla/5.0", got.UserAgent)
	assert.True(t, got.IsValid())

	assert.Error(t, repo.Create(context.Background(), s), "duplicate id")

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_CreateRequiresUser(t *testing.T) {
	t.Parallel()

	db, _ := setupSessionTestDB(t)
	repo := NewSessionGorm(db)

	err := repo.Create(context.Background(), &entity.Session{ID: "orphan", UserID: 4242, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)})
	assert.Error(t, err)
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Parallel()

	db, user := setupSessionTestDB(t)
	repo := NewSessionGorm(db)
	now := time.Now()
	seedSession(t, db, "sid-1", user.ID, now, now.Add(time.Hour), nil)

	require.NoError(t, repo.Revoke(context.Background(), "sid-1"))
	got, err := repo.FindByID(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.True(t, got.IsRevoked())

	assert.NoError(t, repo.Revoke(context.Background(), "sid-1"), "revoking twice is fine")
	assert.ErrorIs(t, repo.Revoke(context.Background(), "missing"), usecase.ErrSessionNotFound)
}

func TestSessionGorm_CountAndDeleteOldest(t *testing.T) {
	t.Parallel()

	db, user := setupSessionTestDB(t)
	repo := NewSessionGorm(db)
	now := time.Now()
	revoked := now

	seedSession(t, db, "oldest", user.ID, now.Add(-3*time.Hour), now.Add(time.Hour), nil)
	seedSession(t, db, "newer", user.ID, now.Add(-1*time.Hour), now.Add(time.Hour), nil)
	seedSession(t, db, "expired", user.ID, now.Add(-5*time.Hour), now.Add(-time.Minute), nil)
	seedSession(t, db, "revoked", user.ID, now.Add(-6*time.Hour), now.Add(time.Hour), &revoked)

	n, err := repo.CountActiveByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.DeleteOldestByUserID(context.Background(), user.ID))

	_, err = repo.FindByID(context.Background(), "oldest")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	_, err = repo.FindByID(context.Background(), "newer")
	assert.NoError(t, err)

	assert.NoError(t, repo.DeleteOldestByUserID(context.Background(), 9999), "no sessions is not an error")
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	t.Parallel()

	db, user := setupSessionTestDB(t)
	repo := NewSessionGorm(db)
	now := time.Now()
	seedSession(t, db, "live", user.ID, now, now.Add(time.Hour), nil)
	seedSession(t, db, "dead-1", user.ID, now, now.Add(-time.Hour), nil)
	seedSession(t, db, "dead-2", user.ID, now, now.Add(-time.Minute), nil)

	n, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSessionGorm_RemovedWithUser(t *testing.T) {
	t.Parallel()

	db, user := setupSessionTestDB(t)
	now := time.Now()
	seedSession(t, db, "sid", user.ID, now, now.Add(time.Hour), nil)

	require.NoError(t, db.Delete(&entity.User{}, user.ID).Error)

	_, err := NewSessionGorm(db).FindByID(context.Background(), "sid")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}
