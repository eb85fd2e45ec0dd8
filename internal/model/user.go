package model

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"type:varchar(64);uniqueIndex:ux_user_username;not null"`
	Email        string    `json:"email" gorm:"type:varchar(120);uniqueIndex:ux_user_email;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(128)"`
	AboutMe      string    `json:"about_me" gorm:"type:varchar(140)"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// AvatarURL returns the gravatar identicon for the account's email.
func (u *User) AvatarURL(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}
