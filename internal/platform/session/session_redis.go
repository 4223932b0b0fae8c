// Package session stores login sessions in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cookwhat/internal/feature/auth/domain/entity"
	"cookwhat/internal/feature/auth/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
// Each session is a JSON string expiring with the session; a sorted set per
// user, scored by creation time, indexes the user's sessions.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

type record struct {
	ID        string     `json:"id"`
	UserID    uint       `json:"user_id"`
	UserAgent string     `json:"user_agent,omitempty"`
	IPAddress string     `json:"ip_address,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create stores the session with a TTL matching its expiry.
func (r *SessionRedis) Create(ctx context.Context, s *entity.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	data, err := json.Marshal(record(*s))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.sessionKey(s.ID), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}

	userKey := r.userSessionsKey(s.UserID)
	if err := r.client.ZAdd(ctx, userKey, redis.Z{Score: float64(s.CreatedAt.UnixNano()), Member: s.ID}).Err(); err != nil {
		return err
	}
	// The index lives as long as the longest-lived session in it.
	cur, err := r.client.TTL(ctx, userKey).Result()
	if err != nil {
		return err
	}
	if cur < ttl {
		return r.client.Expire(ctx, userKey, ttl).Err()
	}
	return nil
}

// FindByID retrieves a session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	s := entity.Session(rec)
	return &s, nil
}

// Revoke marks the session as revoked and keeps it until its original expiry.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.IsRevoked() {
		return nil
	}

	now := time.Now()
	s.RevokedAt = &now
	data, err := json.Marshal(record(*s))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.SetArgs(ctx, r.sessionKey(id), data, redis.SetArgs{KeepTTL: true, Mode: "XX"}).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return usecase.ErrSessionNotFound
		}
		return err
	}
	return r.client.ZRem(ctx, r.userSessionsKey(s.UserID), id).Err()
}

// activeIDs returns the user's valid session IDs, oldest first, pruning
// index entries whose session is gone or no longer valid.
func (r *SessionRedis) activeIDs(ctx context.Context, userID uint) ([]string, error) {
	userKey := r.userSessionsKey(userID)
	ids, err := r.client.ZRange(ctx, userKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	active := make([]string, 0, len(ids))
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return nil, err
		}
		if err != nil || !s.IsValid() {
			r.client.ZRem(ctx, userKey, id)
			continue
		}
		active = append(active, id)
	}
	return active, nil
}

// CountActiveByUserID returns the number of valid sessions for a user.
func (r *SessionRedis) CountActiveByUserID(ctx context.Context, userID uint) (int64, error) {
	ids, err := r.activeIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// DeleteOldestByUserID deletes the user's oldest valid session.
func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	ids, err := r.activeIDs(ctx, userID)
	if err != nil || len(ids) == 0 {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.sessionKey(ids[0]))
	pipe.ZRem(ctx, r.userSessionsKey(userID), ids[0])
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteExpired is a no-op: Redis expires session keys on its own.
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
