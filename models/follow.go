package models

import (
	"gorm.io/gorm"
)

const (
	FollowStatusPending  = "pending"
	FollowStatusAccepted = "accepted"
)

type Follow struct {
	gorm.Model
	FollowerUserID  uint   `gorm:"not null;uniqueIndex:idx_follow_pair"`
	FollowingUserID uint   `gorm:"not null;uniqueIndex:idx_follow_pair"`
	Status          string `gorm:"not null;default:'pending'"` // pending, accepted

	FollowerUser  User `gorm:"foreignKey:FollowerUserID"`
	FollowingUser User `gorm:"foreignKey:FollowingUserID"`
}
