package dto

import (
	"time"

	"cookwhat/internal/feature/auth/domain/entity"
)

// UpdateProfileReq is the body of PATCH /users/me. Omitted fields are left unchanged.
type UpdateProfileReq struct {
	Username  *string `json:"username" binding:"omitempty,username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	AvatarImg *string `json:"avatar_img" binding:"omitempty,max=1024"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
}

// UserRes is the public view of a user. It never includes the password hash.
type UserRes struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarImg string    `json:"avatar_img"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserRes converts a user entity.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarImg: u.Avatar(),
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

// AuthRes is returned by /signup and /login.
type AuthRes struct {
	Message   string    `json:"message"`
	User      UserRes   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
