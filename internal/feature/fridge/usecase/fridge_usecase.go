// Package usecase は冷蔵庫操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cookwhat/internal/feature/fridge/domain/entity"
	recipesentity "cookwhat/internal/feature/recipes/domain/entity"
)

// SearchResultReader はセッションの直近の食材検索結果を返します。
type SearchResultReader interface {
	Get(ctx context.Context, sessionID string) ([]recipesentity.IngredientResult, bool, error)
}

// Catalog はユーザーが選んだ外部食材をローカルに記録します。
type Catalog interface {
	Remember(ctx context.Context, externalID int, name, imageURL string) error
}

type fridgeUsecase struct {
	fridges  FridgeRepository
	searches SearchResultReader
	catalog  Catalog
}

// NewFridgeUsecase はfridgeUsecaseの新しいインスタンスを生成します。
func NewFridgeUsecase(fridges FridgeRepository, searches SearchResultReader, catalog Catalog) *fridgeUsecase {
	return &fridgeUsecase{fridges: fridges, searches: searches, catalog: catalog}
}

// CreateFridge はユーザーの冷蔵庫を作成します。既にある場合は ErrFridgeAlreadyExists。
func (u *fridgeUsecase) CreateFridge(ctx context.Context, userID uint) (*entity.Fridge, error) {
	f, err := u.fridges.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	f.Ingredients = []entity.IngredientEntry{}
	zap.S().Infow("fridge created", "user_id", userID, "fridge_id", f.ID)
	return f, nil
}

func (u *fridgeUsecase) mustFind(ctx context.Context, userID uint) (*entity.Fridge, error) {
	f, err := u.fridges.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find fridge: %w", err)
	}
	if f == nil {
		return nil, ErrFridgeNotFound
	}
	return f, nil
}

// FindFridge は冷蔵庫が無い場合 (nil, nil) を返します。ホーム画面用です。
func (u *fridgeUsecase) FindFridge(ctx context.Context, userID uint) (*entity.Fridge, error) {
	f, err := u.fridges.FindByUserID(ctx, userID)
	if err != nil || f == nil {
		return nil, err
	}
	if f.Ingredients, err = u.fridges.ListIngredients(ctx, f.ID); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFridge は冷蔵庫と中身を返します。無い場合は ErrFridgeNotFound。
func (u *fridgeUsecase) GetFridge(ctx context.Context, userID uint) (*entity.Fridge, error) {
	f, err := u.FindFridge(ctx, userID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFridgeNotFound
	}
	return f, nil
}

// DeleteFridge は冷蔵庫と中身を削除します。
func (u *fridgeUsecase) DeleteFridge(ctx context.Context, userID uint) error {
	f, err := u.mustFind(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.fridges.Delete(ctx, f.ID); err != nil {
		return err
	}
	zap.S().Infow("fridge deleted", "user_id", userID, "fridge_id", f.ID)
	return nil
}

// ListIngredients は冷蔵庫の中身を追加順に返します。
func (u *fridgeUsecase) ListIngredients(ctx context.Context, userID uint) ([]entity.IngredientEntry, error) {
	f, err := u.mustFind(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.fridges.ListIngredients(ctx, f.ID)
}

// AddIngredientFromSearch はセッションの直近の検索結果から選ばれた食材を冷蔵庫に追加します。
// 検索結果に含まれないIDは ErrIngredientNotInResults になります。
func (u *fridgeUsecase) AddIngredientFromSearch(ctx context.Context, userID uint, sessionID string, externalID int) (*entity.IngredientEntry, error) {
	f, err := u.mustFind(ctx, userID)
	if err != nil {
		return nil, err
	}

	results, found, err := u.searches.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load search results: %w", err)
	}
	if !found {
		return nil, ErrIngredientNotInResults
	}

	var pick *recipesentity.IngredientResult
	for i := range results {
		if results[i].ExternalID == externalID {
			pick = &results[i]
			break
		}
	}
	if pick == nil {
		return nil, ErrIngredientNotInResults
	}

	// カタログはローカルの補助記録なので失敗しても追加は続行する
	if err := u.catalog.Remember(ctx, pick.ExternalID, pick.Name, pick.Image); err != nil {
		zap.S().Warnw("failed to remember ingredient", "error", err, "external_id", pick.ExternalID)
	}

	entry, err := u.fridges.AddIngredient(ctx, f.ID, pick.ExternalID, pick.Name)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveIngredient はユーザーの冷蔵庫からエントリを削除します。
func (u *fridgeUsecase) RemoveIngredient(ctx context.Context, userID, entryID uint) error {
	f, err := u.mustFind(ctx, userID)
	if err != nil {
		return err
	}
	return u.fridges.RemoveIngredient(ctx, f.ID, entryID)
}

// IngredientNames はレシピ検索用に食材名を返します。重複はそのまま残します。
func (u *fridgeUsecase) IngredientNames(ctx context.Context, userID uint) ([]string, error) {
	entries, err := u.ListIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}
