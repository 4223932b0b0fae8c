package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cookwhat/internal/app/router"
	authhandler "cookwhat/internal/feature/auth/transport/handler"
	cataloghandler "cookwhat/internal/feature/catalog/transport/handler"
	fridgehandler "cookwhat/internal/feature/fridge/transport/handler"
	homehandler "cookwhat/internal/feature/home/transport/handler"
	scanhandler "cookwhat/internal/feature/ingredientscan/transport/handler"
	recipeshandler "cookwhat/internal/feature/recipes/transport/handler"
	jwtmw "cookwhat/internal/platform/jwt"
	"cookwhat/internal/platform/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func handlers(withScan bool) router.Handlers {
	h := router.Handlers{
		Auth:    authhandler.NewAuthHandler(nil),
		Home:    homehandler.NewHomeHandler(nil, nil),
		Fridge:  fridgehandler.NewFridgeHandler(nil),
		Recipes: recipeshandler.NewRecipesHandler(nil),
		Catalog: cataloghandler.NewCatalogHandler(nil),
	}
	if withScan {
		h.Scan = scanhandler.NewIngredientScanHandler(nil)
	}
	return h
}

func options() router.Options {
	return router.Options{
		Auth:    jwtmw.NewAuthenticator("test-secret", nil),
		Metrics: metrics.New(),
		Logger:  zap.NewNop(),
	}
}

func routeSet(r *gin.Engine) map[string]bool {
	set := map[string]bool{}
	for _, ri := range r.Routes() {
		set[ri.Method+" "+ri.Path] = true
	}
	return set
}

func TestNewRouter_RegistersRoutes(t *testing.T) {
	t.Parallel()

	routes := routeSet(router.NewRouter(handlers(true), options()))

	for _, want := range []string{
		"GET /healthz",
		"GET /metrics",
		"POST /signup",
		"POST /login",
		"POST /logout",
		"GET /",
		"GET /users/me",
		"PATCH /users/me",
		"POST /fridge",
		"GET /fridge",
		"DELETE /fridge",
		"GET /fridge/ingredients",
		"POST /fridge/ingredients",
		"DELETE /fridge/ingredients/:entryID",
		"GET /fridge/recipes",
		"POST /fridge/scan",
		"GET /ingredients/search",
		"GET /ingredients/catalog",
		"GET /ingredients/catalog/:externalID",
		"GET /recipes/search",
		"GET /recipes/:id",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestNewRouter_ScanDisabled(t *testing.T) {
	t.Parallel()

	routes := routeSet(router.NewRouter(handlers(false), options()))
	assert.False(t, routes["POST /fridge/scan"])
	assert.False(t, routes["GET /readyz"])
}

func TestNewRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	r := router.NewRouter(handlers(false), options())

	for _, path := range []string{"/fridge", "/users/me", "/recipes/search?ingredients=egg", "/ingredients/search?query=egg"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestNewRouter_Health(t *testing.T) {
	t.Parallel()

	r := router.NewRouter(handlers(false), options())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
