// Package testutil holds database and fixture helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authentity "cookwhat/internal/feature/auth/domain/entity"
	"cookwhat/internal/platform/db"
)

// NewDB opens a private in-memory SQLite database with foreign keys on and
// migrates models into it.
func NewDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.Migrate(gdb, models...), "failed to migrate tables")

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// Faker returns a deterministic faker so failures are reproducible.
func Faker(seed int64) *gofakeit.Faker {
	return gofakeit.New(seed)
}

// NewUser builds an unsaved user with fake profile data and the given password.
func NewUser(t *testing.T, f *gofakeit.Faker, password string) *authentity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &authentity.User{
		Username:  f.Regex(`[a-z]{4,10}[0-9]{2}`),
		Email:     f.Email(),
		Password:  string(hash),
		AvatarImg: authentity.DefaultAvatarURL,
		Bio:       f.Sentence(8),
	}
}

// SeedUser inserts a fake user and returns it.
func SeedUser(t *testing.T, gdb *gorm.DB, f *gofakeit.Faker) *authentity.User {
	t.Helper()

	u := NewUser(t, f, "password123")
	require.NoError(t, gdb.Create(u).Error, "failed to seed user")
	return u
}
