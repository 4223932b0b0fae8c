// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cookwhat/internal/feature/auth/domain/entity"
	"cookwhat/internal/feature/auth/transport/http/dto"
	"cookwhat/internal/feature/auth/usecase"
	"cookwhat/internal/shared/reqctx"
)

// AuthUsecase は認証・プロフィール操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput, meta usecase.SessionMeta) (*usecase.LoginResult, error)
	Login(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, upd usecase.ProfileUpdate) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func sessionMeta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400
// - ユーザー名・メール重複時は409
// - 成功時は201とトークン（登録と同時にログイン）
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.S().Warnw("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		AvatarImg: req.AvatarImg,
		Bio:       req.Bio,
	}, sessionMeta(c))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		zap.S().Warnw("signup conflict", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		zap.S().Errorw("signup failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	zap.S().Infow("user signup successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{
		Message:   fmt.Sprintf("Welcome to CookWhat, %s!", res.User.Username),
		User:      dto.NewUserRes(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時はユーザーの存在有無に関わらず同じ401を返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.S().Warnw("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, sessionMeta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			zap.S().Warnw("login failed", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": usecase.ErrInvalidCredentials.Error()})
			return
		}
		zap.S().Errorw("login error", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	zap.S().Infow("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{
		Message:   fmt.Sprintf("Hey %s, welcome back!", res.User.Username),
		User:      dto.NewUserRes(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// Logout は現在のセッションを失効させます。
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := reqctx.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), id.SessionID); err != nil {
		zap.S().Errorw("logout failed", "error", err, "user_id", id.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You've been logged out."})
}

// Me は現在のユーザーのプロフィールを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := reqctx.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	user, err := h.auth.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		h.profileError(c, err, id.UserID)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdateMe は現在のユーザーのプロフィールを部分更新します。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	id, ok := reqctx.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), id.UserID, usecase.ProfileUpdate{
		Username:  req.Username,
		Email:     req.Email,
		AvatarImg: req.AvatarImg,
		Bio:       req.Bio,
	})
	if err != nil {
		h.profileError(c, err, id.UserID)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

func (h *AuthHandler) profileError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		zap.S().Errorw("profile request failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
