// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// DefaultAvatarURL is shown for users who did not pick an avatar.
const DefaultAvatarURL = "https://st2.depositphotos.com/1341440/7182/v/600/depositphotos_71824861-stock-illustration-chef-hat-vector-black-silhouette.jpg"

// User is a registered cook.
// Username and Email are unique; Password only ever holds a bcrypt hash.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:32;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null"`
	AvatarImg string `gorm:"size:1024;not null"`
	Bio       string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Avatar returns the user's avatar or the default chef hat.
func (u *User) Avatar() string {
	if u.AvatarImg == "" {
		return DefaultAvatarURL
	}
	return u.AvatarImg
}
