// Package usecase はレシピ・食材検索のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cookwhat/internal/feature/recipes/domain/entity"
)

const (
	// DefaultIngredientLimit は食材検索のデフォルト件数です。
	DefaultIngredientLimit = 10
	// DefaultRecipeCount はレシピ検索のデフォルト件数です。
	DefaultRecipeCount = 10
	// MaxResults は1回の検索で要求できる最大件数です。
	MaxResults = 100
)

// RecipeGateway は外部のレシピAPIを抽象化します。
// 失敗はすべて ErrUpstream をラップして返します。
type RecipeGateway interface {
	SearchIngredients(ctx context.Context, query string, limit int) ([]entity.IngredientResult, error)
	SearchRecipesByIngredients(ctx context.Context, names []string, count int) ([]entity.RecipeSummary, error)
	GetRecipeDetail(ctx context.Context, id int) (*entity.RecipeDetail, error)
	GetRecipeInstructions(ctx context.Context, id int) ([]string, error)
}

// SearchResultWriter はセッションごとの直近の食材検索結果を保存します。
type SearchResultWriter interface {
	Put(ctx context.Context, sessionID string, results []entity.IngredientResult) error
}

// FridgeContents は冷蔵庫内の食材名を返します。
type FridgeContents interface {
	IngredientNames(ctx context.Context, userID uint) ([]string, error)
}

type recipesUsecase struct {
	gateway RecipeGateway
	results SearchResultWriter
	fridge  FridgeContents
}

// NewRecipesUsecase はrecipesUsecaseの新しいインスタンスを生成します。
func NewRecipesUsecase(gateway RecipeGateway, results SearchResultWriter, fridge FridgeContents) *recipesUsecase {
	return &recipesUsecase{gateway: gateway, results: results, fridge: fridge}
}

func clamp(n, def int) int {
	if n <= 0 {
		return def
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}

// SearchIngredients は食材を検索し、結果をセッションに紐づけて保存します。
// 保存された結果は冷蔵庫への追加時の検証に使われます。
func (u *recipesUsecase) SearchIngredients(ctx context.Context, sessionID, query string, limit int) ([]entity.IngredientResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	results, err := u.gateway.SearchIngredients(ctx, query, clamp(limit, DefaultIngredientLimit))
	if err != nil {
		return nil, err
	}

	// キャッシュの失敗は検索自体を失敗させない
	if err := u.results.Put(ctx, sessionID, results); err != nil {
		zap.S().Warnw("failed to cache ingredient search", "error", err, "query", query)
	}
	return results, nil
}

// SearchRecipes は食材名のリストからレシピを検索します。
func (u *recipesUsecase) SearchRecipes(ctx context.Context, names []string, count int) ([]entity.RecipeSummary, error) {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyQuery
	}
	return u.gateway.SearchRecipesByIngredients(ctx, cleaned, clamp(count, DefaultRecipeCount))
}

// SearchRecipesForFridge は冷蔵庫の中身でレシピを検索します。
// 冷蔵庫が空の場合は外部APIを呼ばずに空のリストを返します。
func (u *recipesUsecase) SearchRecipesForFridge(ctx context.Context, userID uint, count int) ([]entity.RecipeSummary, error) {
	names, err := u.fridge.IngredientNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []entity.RecipeSummary{}, nil
	}
	return u.gateway.SearchRecipesByIngredients(ctx, names, clamp(count, DefaultRecipeCount))
}

// RecipeDetail はレシピ詳細と手順を並行して取得します。どちらかが失敗すれば全体が失敗します。
func (u *recipesUsecase) RecipeDetail(ctx context.Context, id int) (*entity.RecipeDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidRecipeID
	}

	var (
		detail *entity.RecipeDetail
		steps  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := u.gateway.GetRecipeDetail(gctx, id)
		if err != nil {
			return fmt.Errorf("recipe %d detail: %w", id, err)
		}
		detail = d
		return nil
	})
	g.Go(func() error {
		s, err := u.gateway.GetRecipeInstructions(gctx, id)
		if err != nil {
			return fmt.Errorf("recipe %d instructions: %w", id, err)
		}
		steps = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail.Instructions = steps
	if detail.Instructions == nil {
		detail.Instructions = []string{}
	}
	return detail, nil
}
