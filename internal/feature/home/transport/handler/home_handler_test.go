package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "cookwhat/internal/feature/auth/domain/entity"
	authusecase "cookwhat/internal/feature/auth/usecase"
	fridgeentity "cookwhat/internal/feature/fridge/domain/entity"
	"cookwhat/internal/shared/reqctx"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubUsers struct {
	user *authentity.User
	err  error
}

func (s stubUsers) Profile(context.Context, uint) (*authentity.User, error) { return s.user, s.err }

type stubFridges struct {
	fridge *fridgeentity.Fridge
	err    error
}

func (s stubFridges) FindFridge(context.Context, uint) (*fridgeentity.Fridge, error) {
	return s.fridge, s.err
}

func serve(h *HomeHandler, userID uint) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		if userID != 0 {
			ctx := reqctx.WithIdentity(c.Request.Context(), reqctx.Identity{UserID: userID, SessionID: "s"})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}, h.Home)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestHomeHandler(t *testing.T) {
	t.Parallel()

	alice := &authentity.User{ID: 1, Username: "alice"}

	tests := []struct {
		name       string
		userID     uint
		users      stubUsers
		fridges    stubFridges
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "anonymous",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Welcome!", body["message"])
			},
		},
		{
			name:       "user without fridge",
			userID:     1,
			users:      stubUsers{user: alice},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "fridge")
				assert.Nil(t, body["fridge"])
				assert.Equal(t, "alice", body["user"].(map[string]any)["username"])
			},
		},
		{
			name:       "user with fridge",
			userID:     1,
			users:      stubUsers{user: alice},
			fridges:    stubFridges{fridge: &fridgeentity.Fridge{ID: 3, UserID: 1, Ingredients: []fridgeentity.IngredientEntry{{ID: 1, Name: "egg"}}}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				fridge := body["fridge"].(map[string]any)
				assert.Equal(t, float64(3), fridge["id"])
				assert.Len(t, fridge["ingredients"], 1)
			},
		},
		{
			name:       "stale session for deleted user",
			userID:     9,
			users:      stubUsers{err: authusecase.ErrUserNotFound},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Welcome!", body["message"])
			},
		},
		{
			name:       "fridge lookup failure",
			userID:     1,
			users:      stubUsers{user: alice},
			fridges:    stubFridges{err: assert.AnError},
			wantStatus: http.StatusInternalServerError,
			check:      func(*testing.T, map[string]any) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(NewHomeHandler(tt.users, tt.fridges), tt.userID)
			require.Equal(t, tt.wantStatus, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			tt.check(t, body)
		})
	}
}
