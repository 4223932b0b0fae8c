// Package di assembles repositories, usecases and handlers.
package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cookwhat/internal/app/router"
	authadapters "cookwhat/internal/feature/auth/adapters"
	authhandler "cookwhat/internal/feature/auth/transport/handler"
	authusecase "cookwhat/internal/feature/auth/usecase"
	catalogadapters "cookwhat/internal/feature/catalog/adapters"
	cataloghandler "cookwhat/internal/feature/catalog/transport/handler"
	catalogusecase "cookwhat/internal/feature/catalog/usecase"
	fridgeadapters "cookwhat/internal/feature/fridge/adapters"
	fridgehandler "cookwhat/internal/feature/fridge/transport/handler"
	fridgeusecase "cookwhat/internal/feature/fridge/usecase"
	homehandler "cookwhat/internal/feature/home/transport/handler"
	recipeshandler "cookwhat/internal/feature/recipes/transport/handler"
	recipesusecase "cookwhat/internal/feature/recipes/usecase"
	"cookwhat/internal/platform/config"
	"cookwhat/internal/platform/externalapi/spoonacular"
	infrahttp "cookwhat/internal/platform/http"
	jwtmw "cookwhat/internal/platform/jwt"
	"cookwhat/internal/platform/metrics"
)

const tokenIssuer = "cookwhat"

// App is the assembled HTTP surface of the server.
type App struct {
	Handlers      router.Handlers
	Authenticator *jwtmw.Authenticator

	close func()
}

// Close releases clients opened by Build.
func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// NewRecipeGateway builds the Spoonacular client used by the recipe features.
func NewRecipeGateway(cfg spoonacular.Config, obs spoonacular.Observer) *spoonacular.Client {
	return spoonacular.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout), obs)
}

// Build wires every feature. rdb may be nil.
func Build(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, m *metrics.Metrics) *App {
	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := NewSessionRepository(rdb, db)
	fridgeRepo := fridgeadapters.NewFridgeGorm(db)
	ingredientRepo := catalogadapters.NewIngredientGorm(db)
	searches := NewSearchCache(rdb, db, cfg.Cache.SearchTTL, m)
	gateway := NewRecipeGateway(cfg.Spoonacular, m)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtmw.NewGenerator(cfg.Auth.JWTSecret, tokenIssuer), searches, authusecase.Config{
		SessionTTL:         cfg.Auth.SessionTTL,
		MaxSessionsPerUser: cfg.Auth.MaxSessionsPerUser,
	})
	catalogUC := catalogusecase.NewCatalogUsecase(ingredientRepo)
	fridgeUC := fridgeusecase.NewFridgeUsecase(fridgeRepo, searches, catalogUC)
	recipesUC := recipesusecase.NewRecipesUsecase(gateway, searches, fridgeUC)

	scanH, closeScan, err := NewScanHandler(ctx, cfg.Scan)
	if err != nil {
		zap.S().Warnw("fridge scan disabled", "error", err)
	}

	// Handler
	return &App{
		Handlers: router.Handlers{
			Auth:    authhandler.NewAuthHandler(authUC),
			Home:    homehandler.NewHomeHandler(authUC, fridgeUC),
			Fridge:  fridgehandler.NewFridgeHandler(fridgeUC),
			Recipes: recipeshandler.NewRecipesHandler(recipesUC),
			Catalog: cataloghandler.NewCatalogHandler(catalogUC),
			Scan:    scanH,
		},
		Authenticator: jwtmw.NewAuthenticator(cfg.Auth.JWTSecret, authUC),
		close:         closeScan,
	}
}
