// Package jwtmw issues access tokens and authenticates requests carrying them.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access token claims. Subject holds the user ID, SessionID
// the login session the token belongs to.
type Claims struct {
	UserID    uint   `json:"uid"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Generator signs access tokens with HS256.
type Generator struct {
	secret []byte
	issuer string
}

// NewGenerator creates a token generator for the given secret.
func NewGenerator(secret, issuer string) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer}
}

// GenerateToken creates a signed token valid until expiresAt.
func (g *Generator) GenerateToken(userID uint, sessionID string, expiresAt time.Time) (string, error) {
	if len(g.secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}

	now := time.Now()
	claims := Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm and expiry and returns the claims.
func Parse(tokenStr string, secret []byte) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || claims.SessionID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &claims, nil
}
