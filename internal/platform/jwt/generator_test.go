package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_RoundTrip(t *testing.T) {
	t.Parallel()

	g := NewGenerator("test-secret", "cookwhat")
	exp := time.Now().Add(time.Hour)

	token, err := g.GenerateToken(42, "sid-1", exp)
	require.NoError(t, err)

	claims, err := Parse(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "cookwhat", claims.Issuer)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestGenerator_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator("", "cookwhat").GenerateToken(1, "sid", time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	valid, err := NewGenerator("test-secret", "").GenerateToken(1, "sid", time.Now().Add(time.Hour))
	require.NoError(t, err)

	expired, err := NewGenerator("test-secret", "").GenerateToken(1, "sid", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	otherSecret, err := NewGenerator("other-secret", "").GenerateToken(1, "sid", time.Now().Add(time.Hour))
	require.NoError(t, err)

	noSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1, SessionID: "sid"}).SignedString(secret)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 1, SessionID: "sid",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(valid, secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"missing session id", noSession},
		{"missing expiry", noExpiry},
		{"unexpected algorithm", hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.token, secret)
			assert.Error(t, err)
		})
	}
}
