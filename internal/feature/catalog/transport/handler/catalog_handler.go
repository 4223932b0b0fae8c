// Package handler exposes the ingredient catalog over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cookwhat/internal/feature/catalog/domain/entity"
	"cookwhat/internal/feature/catalog/usecase"
)

// CatalogUsecase is the read side of the catalog.
type CatalogUsecase interface {
	Search(ctx context.Context, query string, limit int) ([]entity.Ingredient, error)
	Lookup(ctx context.Context, externalID int) (*entity.Ingredient, error)
}

// CatalogHandler handles catalog requests.
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Search handles GET /ingredients/catalog?query=&limit=.
func (h *CatalogHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	results, err := h.uc.Search(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		zap.S().Errorw("catalog search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Get handles GET /ingredients/catalog/:externalID.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("externalID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ing, err := h.uc.Lookup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Errorw("catalog lookup failed", "error", err, "external_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, ing)
}
