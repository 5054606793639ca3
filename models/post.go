package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
	VisibilityCustom    = "custom"
)

// ValidVisibility reports whether v is one of the declared visibility modes.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate, VisibilityCustom:
		return true
	}
	return false
}

type Post struct {
	gorm.Model
	Content   string         `json:"content" gorm:"type:text"`
	MediaURL  pq.StringArray `json:"mediaUrl" gorm:"type:text[]"`
	Hashtags  pq.StringArray `json:"hashtags" gorm:"type:text[]"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	User      User           `json:"user" gorm:"foreignKey:UserID"`
	Comments  []Comment      `json:"comments" gorm:"foreignKey:PostID"`
	UserTags  []UserTag      `json:"userTags" gorm:"foreignKey:PostID"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	// Include/exclude lists only apply to the "custom" mode; exclude wins
	// over include and over follower status.
	Visibility     string        `json:"visibility" gorm:"not null;default:'public';type:varchar(20)"` // public, followers, private, custom
	IncludeUserIDs pq.Int64Array `json:"includeUserIds" gorm:"type:bigint[]"`
	ExcludeUserIDs pq.Int64Array `json:"excludeUserIds" gorm:"type:bigint[]"`
}
