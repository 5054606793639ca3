package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TagApprovalAuto     = "auto"
	TagApprovalManual   = "manual"
	TagApprovalDisabled = "disabled"
)

// ValidTagApprovalMode reports whether m is a known approval mode.
func ValidTagApprovalMode(m string) bool {
	switch m {
	case TagApprovalAuto, TagApprovalManual, TagApprovalDisabled:
		return true
	}
	return false
}

// TagSetting is created lazily on first customization; while absent the
// defaults from policy.EffectiveTagSetting apply.
type TagSetting struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	UserID             uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User               User   `gorm:"foreignKey:UserID" json:"user"`
	ApprovalMode       string `gorm:"not null;default:'manual';type:varchar(10)" json:"approval_mode"` // auto, manual, disabled
	AllowFromFollowers bool   `gorm:"default:true" json:"allow_from_followers"`
	AllowFromFollowing bool   `gorm:"default:true" json:"allow_from_following"`
	AllowFromAnyone    bool   `gorm:"default:false" json:"allow_from_anyone"`
	HideUntilApproved  bool   `gorm:"default:false" json:"hide_until_approved"`
}
