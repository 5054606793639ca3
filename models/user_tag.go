package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TagStatusPending  = "pending"
	TagStatusAccepted = "accepted"
	TagStatusRejected = "rejected" // terminal
	TagStatusRemoved  = "removed"  // terminal
)

type UserTag struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	PostID       uint   `gorm:"not null;index" json:"post_id"`
	TaggedUserID uint   `gorm:"not null;index" json:"tagged_user_id"`
	TaggerUserID uint   `gorm:"not null" json:"tagger_user_id"`
	Status       string `gorm:"not null;default:'pending'" json:"status"` // pending, accepted, rejected, removed

	Post       Post `gorm:"foreignKey:PostID" json:"post"`
	TaggedUser User `gorm:"foreignKey:TaggedUserID" json:"tagged_user"`
	TaggerUser User `gorm:"foreignKey:TaggerUserID" json:"tagger_user"`
}
