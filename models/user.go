package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	AccountStatusActive = "active"
	AccountStatusBanned = "banned"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username      string         `gorm:"unique;not null" json:"username"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      *string        `gorm:"default:null" json:"-"` // nil for OAuth users
	GoogleID      *string        `gorm:"uniqueIndex;default:null" json:"-"`
	Provider      string         `gorm:"default:'email'" json:"provider"`
	Bio           string         `json:"bio"`
	Avatar        string         `json:"avatar"`
	Role          string         `gorm:"not null;default:'user'" json:"role"` // user, admin
	IsPrivate     bool           `gorm:"default:false" json:"is_private"`
	AccountStatus string         `gorm:"not null;default:'active'" json:"account_status"` // active, banned
	EmailVerified bool           `json:"email_verified"`
	Posts         []Post         `json:"posts" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"refresh_tokens" gorm:"foreignKey:UserID"`
}
