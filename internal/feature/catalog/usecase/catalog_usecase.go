// Package usecase implements the local ingredient catalog.
package usecase

import (
	"context"
	"strings"

	"cookwhat/internal/feature/catalog/domain/entity"
)

const (
	// DefaultSearchLimit is used when no limit is given.
	DefaultSearchLimit = 20
	// MaxSearchLimit caps a single catalog query.
	MaxSearchLimit = 100
)

// IngredientRepository persists catalog rows.
type IngredientRepository interface {
	Upsert(ctx context.Context, ing *entity.Ingredient) error
	Search(ctx context.Context, query string, limit int) ([]entity.Ingredient, error)
	FindByExternalID(ctx context.Context, externalID int) (*entity.Ingredient, error)
}

type catalogUsecase struct {
	repo IngredientRepository
}

// NewCatalogUsecase creates a new catalogUsecase.
func NewCatalogUsecase(repo IngredientRepository) *catalogUsecase {
	return &catalogUsecase{repo: repo}
}

// Remember records an ingredient picked from the upstream search.
func (u *catalogUsecase) Remember(ctx context.Context, externalID int, name, imageURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	id := externalID
	return u.repo.Upsert(ctx, &entity.Ingredient{Name: name, ExternalID: &id, ImageURL: imageURL})
}

// Search looks up ingredients by name. An empty query lists the catalog.
func (u *catalogUsecase) Search(ctx context.Context, query string, limit int) ([]entity.Ingredient, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return u.repo.Search(ctx, strings.TrimSpace(query), limit)
}

// Lookup returns the catalog row for an upstream ingredient id.
func (u *catalogUsecase) Lookup(ctx context.Context, externalID int) (*entity.Ingredient, error) {
	return u.repo.FindByExternalID(ctx, externalID)
}
