package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cookwhat/internal/feature/ingredientscan/adapters/gemini"
	"cookwhat/internal/feature/ingredientscan/adapters/vision"
	scanhandler "cookwhat/internal/feature/ingredientscan/transport/handler"
	scanusecase "cookwhat/internal/feature/ingredientscan/usecase"
	"cookwhat/internal/platform/config"
)

// NewScanHandler builds the fridge photo scanner. It returns a nil handler
// when scanning is disabled. The returned close function is never nil.
func NewScanHandler(ctx context.Context, cfg config.ScanConfig) (*scanhandler.IngredientScanHandler, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	detector, err := vision.NewVisionLabelDetector(ctx)
	if err != nil {
		return nil, func() {}, fmt.Errorf("vision client: %w", err)
	}
	closeFn := func() {
		if err := detector.Close(); err != nil {
			zap.S().Warnw("failed to close vision client", "error", err)
		}
	}

	filter, err := gemini.NewGeminiFilter(ctx, cfg.Model)
	if err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("gemini client: %w", err)
	}

	uc := scanusecase.NewIngredientScanUsecase(detector, filter)
	return scanhandler.NewIngredientScanHandler(uc), closeFn, nil
}
