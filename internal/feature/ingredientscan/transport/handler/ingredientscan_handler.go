// Package handler はingredientscanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cookwhat/internal/feature/ingredientscan/domain/entity"
	"cookwhat/internal/feature/ingredientscan/usecase"
)

// IngredientScanUsecase は冷蔵庫写真解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IngredientScanUsecase interface {
	Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error)
}

// IngredientScanHandler は冷蔵庫写真解析のHTTPリクエストを処理します。
type IngredientScanHandler struct {
	uc IngredientScanUsecase
}

// NewIngredientScanHandler はIngredientScanHandlerの新しいインスタンスを生成します。
func NewIngredientScanHandler(uc IngredientScanUsecase) *IngredientScanHandler {
	return &IngredientScanHandler{uc: uc}
}

type labelRes struct {
	Name       string  `json:"name"`
	Confidence float32 `json:"confidence"`
}

type scanRes struct {
	Labels      []labelRes `json:"labels"`
	Ingredients []string   `json:"ingredients"`
}

// Scan は冷蔵庫の写真から食材候補を返します。
//
// エンドポイント: POST /fridge/scan
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *IngredientScanHandler) Scan(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		zap.S().Warnw("failed to read image field", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > usecase.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": usecase.ErrImageTooLarge.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		zap.S().Errorw("failed to open image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			zap.S().Warnw("failed to close image", "error", err)
		}
	}()

	imageData, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		zap.S().Errorw("failed to read image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	res, err := h.uc.Scan(c.Request.Context(), imageData)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrEmptyImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	default:
		zap.S().Errorw("ingredient scan failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": usecase.ErrScanFailed.Error()})
		return
	}

	out := scanRes{Labels: make([]labelRes, 0, len(res.Labels)), Ingredients: res.Ingredients}
	for _, l := range res.Labels {
		out.Labels = append(out.Labels, labelRes{Name: l.Name, Confidence: l.Confidence})
	}
	c.JSON(http.StatusOK, out)
}
