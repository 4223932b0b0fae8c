// Package handler はfridgeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cookwhat/internal/feature/fridge/domain/entity"
	"cookwhat/internal/feature/fridge/transport/http/dto"
	"cookwhat/internal/feature/fridge/usecase"
	"cookwhat/internal/shared/reqctx"
)

// FridgeUsecase は冷蔵庫操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FridgeUsecase interface {
	CreateFridge(ctx context.Context, userID uint) (*entity.Fridge, error)
	GetFridge(ctx context.Context, userID uint) (*entity.Fridge, error)
	DeleteFridge(ctx context.Context, userID uint) error
	ListIngredients(ctx context.Context, userID uint) ([]entity.IngredientEntry, error)
	AddIngredientFromSearch(ctx context.Context, userID uint, sessionID string, externalID int) (*entity.IngredientEntry, error)
	RemoveIngredient(ctx context.Context, userID, entryID uint) error
}

// FridgeHandler は冷蔵庫のHTTPリクエストを処理します。
type FridgeHandler struct {
	uc FridgeUsecase
}

// NewFridgeHandler はFridgeHandlerの新しいインスタンスを生成します。
func NewFridgeHandler(uc FridgeUsecase) *FridgeHandler {
	return &FridgeHandler{uc: uc}
}

func identity(c *gin.Context) (reqctx.Identity, bool) {
	id, ok := reqctx.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
	}
	return id, ok
}

// Create は POST /fridge を処理します。
func (h *FridgeHandler) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	f, err := h.uc.CreateFridge(c.Request.Context(), id.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewFridgeRes(f))
}

// Get は GET /fridge を処理します。
func (h *FridgeHandler) Get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	f, err := h.uc.GetFridge(c.Request.Context(), id.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFridgeRes(f))
}

// Delete は DELETE /fridge を処理します。
func (h *FridgeHandler) Delete(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteFridge(c.Request.Context(), id.UserID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIngredients は GET /fridge/ingredients を処理します。
func (h *FridgeHandler) ListIngredients(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	entries, err := h.uc.ListIngredients(c.Request.Context(), id.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": dto.NewEntryList(entries)})
}

// AddIngredient は POST /fridge/ingredients を処理します。
// ingredient_id は直近の食材検索結果に含まれている必要があります。
func (h *FridgeHandler) AddIngredient(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.AddIngredientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.uc.AddIngredientFromSearch(c.Request.Context(), id.UserID, id.SessionID, req.IngredientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	zap.S().Infow("ingredient added", "user_id", id.UserID, "ingredient_id", entry.IngredientID)
	c.JSON(http.StatusCreated, dto.NewEntryRes(*entry))
}

// RemoveIngredient は DELETE /fridge/ingredients/:entryID を処理します。
func (h *FridgeHandler) RemoveIngredient(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	entryID, err := strconv.ParseUint(c.Param("entryID"), 10, 64)
	if err != nil || entryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	if err := h.uc.RemoveIngredient(c.Request.Context(), id.UserID, uint(entryID)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FridgeHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrFridgeNotFound), errors.Is(err, usecase.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrFridgeAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrIngredientNotInResults):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		zap.S().Errorw("fridge request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
