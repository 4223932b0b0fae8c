package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cookwhat/internal/feature/recipes/domain/entity"
)

// SearchSnapshot is the table row used when Redis is not available.
type SearchSnapshot struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	Results   string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName pins the table name.
func (SearchSnapshot) TableName() string { return "search_snapshots" }

// GormSearchCache stores search results in the search_snapshots table.
type GormSearchCache struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

var _ SearchCache = (*GormSearchCache)(nil)

// NewGormSearchCache returns a table-backed SearchCache. If ttl is 0, it defaults to 10 minutes.
func NewGormSearchCache(db *gorm.DB, ttl time.Duration) *GormSearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &GormSearchCache{db: db, ttl: ttl, now: time.Now}
}

// Put upserts the session's snapshot.
func (c *GormSearchCache) Put(ctx context.Context, sessionID string, results []entity.IngredientResult) error {
	b, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal search results: %w", err)
	}
	row := SearchSnapshot{SessionID: sessionID, Results: string(b), ExpiresAt: c.now().Add(c.ttl)}
	err = c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"results", "expires_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("store search results: %w", err)
	}
	return nil
}

// Get ignores expired snapshots.
func (c *GormSearchCache) Get(ctx context.Context, sessionID string) ([]entity.IngredientResult, bool, error) {
	var rows []SearchSnapshot
	err := c.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", sessionID, c.now()).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, false, fmt.Errorf("load search results: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	var out []entity.IngredientResult
	if err := json.Unmarshal([]byte(rows[0].Results), &out); err != nil {
		return nil, false, nil
	}
	return out, true, nil
}

// Delete drops the session's snapshot.
func (c *GormSearchCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.db.WithContext(ctx).Delete(&SearchSnapshot{}, "session_id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("delete search results: %w", err)
	}
	return nil
}

// DeleteExpired purges expired snapshots and returns how many rows were removed.
func (c *GormSearchCache) DeleteExpired(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).Where("expires_at <= ?", c.now()).Delete(&SearchSnapshot{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired snapshots: %w", res.Error)
	}
	return res.RowsAffected, nil
}
