// Package handler serves the landing endpoint.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authentity "cookwhat/internal/feature/auth/domain/entity"
	authdto "cookwhat/internal/feature/auth/transport/http/dto"
	authusecase "cookwhat/internal/feature/auth/usecase"
	fridgeentity "cookwhat/internal/feature/fridge/domain/entity"
	fridgedto "cookwhat/internal/feature/fridge/transport/http/dto"
	"cookwhat/internal/shared/reqctx"
)

// ProfileReader loads the logged-in user.
type ProfileReader interface {
	Profile(ctx context.Context, userID uint) (*authentity.User, error)
}

// FridgeReader returns (nil, nil) when the user has no fridge.
type FridgeReader interface {
	FindFridge(ctx context.Context, userID uint) (*fridgeentity.Fridge, error)
}

// HomeHandler handles GET /.
type HomeHandler struct {
	users   ProfileReader
	fridges FridgeReader
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(users ProfileReader, fridges FridgeReader) *HomeHandler {
	return &HomeHandler{users: users, fridges: fridges}
}

type homeRes struct {
	User   authdto.UserRes      `json:"user"`
	Fridge *fridgedto.FridgeRes `json:"fridge"`
}

// Home greets anonymous visitors and shows a logged-in user their fridge.
func (h *HomeHandler) Home(c *gin.Context) {
	id, ok := reqctx.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome!"})
		return
	}

	user, err := h.users.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": "Welcome!"})
			return
		}
		zap.S().Errorw("home: load profile failed", "error", err, "user_id", id.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	fridge, err := h.fridges.FindFridge(c.Request.Context(), id.UserID)
	if err != nil {
		zap.S().Errorw("home: load fridge failed", "error", err, "user_id", id.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, homeRes{User: authdto.NewUserRes(user), Fridge: fridgedto.NewFridgeRes(fridge)})
}
