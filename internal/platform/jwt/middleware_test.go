package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookwhat/internal/shared/reqctx"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testSecret = "test-secret"

// stubSessions accepts the sessions listed in live.
type stubSessions struct {
	live map[string]uint
	err  error
}

func (s stubSessions) ValidateSession(ctx context.Context, sessionID string) (uint, error) {
	if s.err != nil {
		return 0, s.err
	}
	if uid, ok := s.live[sessionID]; ok {
		return uid, nil
	}
	return 0, errors.New("session expired or revoked")
}

func tokenFor(t *testing.T, userID uint, sessionID string) string {
	t.Helper()
	token, err := NewGenerator(testSecret, "").GenerateToken(userID, sessionID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		id, ok := reqctx.IdentityFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": id.UserID, "session_id": id.SessionID, "ctx_user": c.GetUint(ContextUserID)})
	})
	return r
}

func serve(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequired(t *testing.T) {
	t.Parallel()

	sessions := stubSessions{live: map[string]uint{"live": 5, "someone-else": 6}}
	a := NewAuthenticator(testSecret, sessions)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "bearer lowercase", header: "bearer " + tokenFor(t, 5, "live"), wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "tampered", header: "Bearer " + tokenFor(t, 5, "live") + "x", wantStatus: http.StatusUnauthorized, wantError: "invalid token"},
		{name: "revoked session", header: "Bearer " + tokenFor(t, 5, "gone"), wantStatus: http.StatusUnauthorized, wantError: "session expired or revoked"},
		{name: "session of another user", header: "Bearer " + tokenFor(t, 5, "someone-else"), wantStatus: http.StatusUnauthorized, wantError: "session expired or revoked"},
		{name: "valid", header: "Bearer " + tokenFor(t, 5, "live"), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(newRouter(a.Required()), tt.header)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, w.Body.String())
				return
			}
			assert.JSONEq(t, `{"authenticated":true,"user_id":5,"session_id":"live","ctx_user":5}`, w.Body.String())
		})
	}
}

func TestRequired_MissingSecret(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("", stubSessions{})
	w := serve(newRouter(a.Required()), "Bearer whatever")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequired_SessionStoreDown(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(testSecret, stubSessions{err: errors.New("redis down")})
	w := serve(newRouter(a.Required()), "Bearer "+tokenFor(t, 5, "live"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptional(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(testSecret, stubSessions{live: map[string]uint{"live": 5}})
	r := newRouter(a.Optional())

	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"user_id":0,"session_id":"","ctx_user":0}`, w.Body.String())

	w = serve(r, "Bearer broken")
	assert.Equal(t, http.StatusOK, w.Code, "bad tokens degrade to anonymous")
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = serve(r, "Bearer "+tokenFor(t, 5, "live"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
