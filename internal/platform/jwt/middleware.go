package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cookwhat/internal/shared/reqctx"
)

const (
	// ContextUserID is the gin context key holding the authenticated user ID.
	ContextUserID = "userID"
	// ContextSessionID is the gin context key holding the session ID.
	ContextSessionID = "sessionID"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
	errSession      = errors.New("session expired or revoked")
)

// SessionValidator resolves a live session to its user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (uint, error)
}

// Authenticator turns a bearer token into a request identity.
type Authenticator struct {
	secret   []byte
	sessions SessionValidator
}

// NewAuthenticator creates an Authenticator. Tokens are accepted only while
// the session they name is valid.
func NewAuthenticator(secret string, sessions SessionValidator) *Authenticator {
	return &Authenticator{secret: []byte(secret), sessions: sessions}
}

func (a *Authenticator) identify(c *gin.Context) (reqctx.Identity, error) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return reqctx.Identity{}, errMissingToken
	}

	claims, err := Parse(strings.TrimPrefix(auth, "Bearer "), a.secret)
	if err != nil {
		return reqctx.Identity{}, errInvalidToken
	}

	userID, err := a.sessions.ValidateSession(c.Request.Context(), claims.SessionID)
	if err != nil || userID != claims.UserID {
		zap.S().Debugw("session rejected", "error", err, "remote_addr", c.ClientIP())
		return reqctx.Identity{}, errSession
	}
	return reqctx.Identity{UserID: userID, SessionID: claims.SessionID}, nil
}

func attach(c *gin.Context, id reqctx.Identity) {
	c.Set(ContextUserID, id.UserID)
	c.Set(ContextSessionID, id.SessionID)
	c.Request = c.Request.WithContext(reqctx.WithIdentity(c.Request.Context(), id))
}

// Required rejects requests without a valid token and live session.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(a.secret) == 0 {
			// JWT_SECRET not set
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		id, err := a.identify(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		attach(c, id)
		c.Next()
	}
}

// Optional attaches the identity when a valid token is present and lets
// every other request through anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(a.secret) > 0 {
			if id, err := a.identify(c); err == nil {
				attach(c, id)
			}
		}
		c.Next()
	}
}
