package usecase

import (
	"context"

	"cookwhat/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for login sessions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID returns ErrSessionNotFound when the session is unknown.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke marks a session as ended. Returns ErrSessionNotFound when unknown.
	Revoke(ctx context.Context, id string) error

	// CountActiveByUserID returns the number of valid sessions of a user.
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID removes the user's oldest valid session, if any.
	DeleteOldestByUserID(ctx context.Context, userID uint) error

	// DeleteExpired purges sessions past their expiry and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
