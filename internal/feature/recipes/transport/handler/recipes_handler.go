// Package handler はrecipesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fridgeusecase "cookwhat/internal/feature/fridge/usecase"
	"cookwhat/internal/feature/recipes/domain/entity"
	"cookwhat/internal/feature/recipes/transport/http/dto"
	"cookwhat/internal/feature/recipes/usecase"
	"cookwhat/internal/shared/reqctx"
)

// RecipesUsecase はレシピ・食材検索のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RecipesUsecase interface {
	SearchIngredients(ctx context.Context, sessionID, query string, limit int) ([]entity.IngredientResult, error)
	SearchRecipes(ctx context.Context, names []string, count int) ([]entity.RecipeSummary, error)
	SearchRecipesForFridge(ctx context.Context, userID uint, count int) ([]entity.RecipeSummary, error)
	RecipeDetail(ctx context.Context, id int) (*entity.RecipeDetail, error)
}

// RecipesHandler はレシピ・食材検索のHTTPリクエストを処理します。
type RecipesHandler struct {
	uc RecipesUsecase
}

// NewRecipesHandler はRecipesHandlerの新しいインスタンスを生成します。
func NewRecipesHandler(uc RecipesUsecase) *RecipesHandler {
	return &RecipesHandler{uc: uc}
}

// numberParam は件数クエリを読み取ります。未指定は0（usecase側のデフォルト）。
func numberParam(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a non-negative integer"})
		return 0, false
	}
	return n, true
}

// SearchIngredients は食材を検索します。結果はセッションに保存され、冷蔵庫への追加に使われます。
//
// エンドポイント例:
// GET /ingredients/search?query=pineapple&number=5
func (h *RecipesHandler) SearchIngredients(c *gin.Context) {
	id, ok := reqctx.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	number, ok := numberParam(c, "number")
	if !ok {
		return
	}

	query := c.Query("query")
	results, err := h.uc.SearchIngredients(c.Request.Context(), id.SessionID, query, number)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IngredientSearchRes{Query: strings.TrimSpace(query), Results: results})
}

// SearchRecipes は食材名（カンマ区切り）からレシピを検索します。
//
// エンドポイント例:
// GET /recipes/search?ingredients=apples,flour,sugar&number=5
func (h *RecipesHandler) SearchRecipes(c *gin.Context) {
	number, ok := numberParam(c, "number")
	if !ok {
		return
	}

	names := strings.Split(c.Query("ingredients"), ",")
	recipes, err := h.uc.SearchRecipes(c.Request.Context(), names, number)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RecipeListRes{Results: recipes})
}

// FridgeRecipes は冷蔵庫の中身で作れるレシピを返します。
//
// エンドポイント例:
// GET /fridge/recipes?number=10
func (h *RecipesHandler) FridgeRecipes(c *gin.Context) {
	id, ok := reqctx.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	number, ok := numberParam(c, "number")
	if !ok {
		return
	}

	recipes, err := h.uc.SearchRecipesForFridge(c.Request.Context(), id.UserID, number)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RecipeListRes{Results: recipes})
}

// RecipeDetail はレシピの詳細と手順を返します。
//
// エンドポイント例:
// GET /recipes/716429
func (h *RecipesHandler) RecipeDetail(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrInvalidRecipeID.Error()})
		return
	}

	detail, err := h.uc.RecipeDetail(c.Request.Context(), recipeID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// fail はusecaseのエラーをHTTPステータスに変換します。
// 外部APIの障害は空の結果とエラーメッセージを含む502で返します。
func (h *RecipesHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUpstream):
		c.JSON(http.StatusBadGateway, dto.DegradedRes{Results: []any{}, Error: usecase.ErrUpstream.Error()})
	case errors.Is(err, usecase.ErrEmptyQuery), errors.Is(err, usecase.ErrInvalidRecipeID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, fridgeusecase.ErrFridgeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		zap.S().Errorw("recipes request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
