// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
type SignupReq struct {
	Username  string `json:"username" binding:"required,username"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	AvatarImg string `json:"avatar_img" binding:"omitempty,url,max=1024"`
	Bio       string `json:"bio" binding:"max=500"`
}
