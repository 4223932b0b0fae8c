// Package router wires HTTP handlers to routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "cookwhat/internal/feature/auth/transport/handler"
	cataloghandler "cookwhat/internal/feature/catalog/transport/handler"
	fridgehandler "cookwhat/internal/feature/fridge/transport/handler"
	homehandler "cookwhat/internal/feature/home/transport/handler"
	scanhandler "cookwhat/internal/feature/ingredientscan/transport/handler"
	recipeshandler "cookwhat/internal/feature/recipes/transport/handler"
	"cookwhat/internal/platform/http/handler"
	"cookwhat/internal/platform/http/middleware"
	jwtmw "cookwhat/internal/platform/jwt"
	"cookwhat/internal/platform/metrics"
	"cookwhat/internal/shared/ratelimiter"
)

// Handlers are the feature handlers served by the router. Scan is nil when
// photo scanning is not configured.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Home    *homehandler.HomeHandler
	Fridge  *fridgehandler.FridgeHandler
	Recipes *recipeshandler.RecipesHandler
	Catalog *cataloghandler.CatalogHandler
	Scan    *scanhandler.IngredientScanHandler
}

// Options are the cross-cutting pieces shared by all routes.
type Options struct {
	Auth        *jwtmw.Authenticator
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	AuthLimiter ratelimiter.Limiter
	Readiness   gin.HandlerFunc
}

func NewRouter(h Handlers, o Options) *gin.Engine {
	logger := o.Logger
	if logger == nil {
		logger = zap.L()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))
	if o.Metrics != nil {
		r.Use(middleware.Metrics(o.Metrics))
		r.GET("/metrics", gin.WrapH(o.Metrics.Handler()))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if o.Readiness != nil {
		r.GET("/readyz", o.Readiness)
	}

	// 新規ユーザー登録とログインはIP単位でレート制限する
	credentials := r.Group("/")
	if o.AuthLimiter != nil {
		credentials.Use(ratelimiter.PerClientIP(o.AuthLimiter))
	}
	credentials.POST("/signup", h.Auth.Signup)
	credentials.POST("/login", h.Auth.Login)

	// ログイン状態で内容が変わる
	r.GET("/", o.Auth.Optional(), h.Home.Home)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(o.Auth.Required())
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/users/me", h.Auth.Me)
		auth.PATCH("/users/me", h.Auth.UpdateMe)

		auth.POST("/fridge", h.Fridge.Create)
		auth.GET("/fridge", h.Fridge.Get)
		auth.DELETE("/fridge", h.Fridge.Delete)
		auth.GET("/fridge/ingredients", h.Fridge.ListIngredients)
		auth.POST("/fridge/ingredients", h.Fridge.AddIngredient)
		auth.DELETE("/fridge/ingredients/:entryID", h.Fridge.RemoveIngredient)
		auth.GET("/fridge/recipes", h.Recipes.FridgeRecipes)
		if h.Scan != nil {
			auth.POST("/fridge/scan", h.Scan.Scan)
		}

		auth.GET("/ingredients/search", h.Recipes.SearchIngredients)
		auth.GET("/ingredients/catalog", h.Catalog.Search)
		auth.GET("/ingredients/catalog/:externalID", h.Catalog.Get)

		auth.GET("/recipes/search", h.Recipes.SearchRecipes)
		auth.GET("/recipes/:id", h.Recipes.RecipeDetail)
	}

	return r
}
