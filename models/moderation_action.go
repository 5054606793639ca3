package models

import (
	"time"
)

const (
	TargetTypePost        = "post"
	TargetTypeComment     = "comment"
	TargetTypeUser        = "user"
	TargetTypeChatMessage = "chat_message"
)

const (
	ActionHide            = "hide"
	ActionUnhide          = "unhide"
	ActionDelete          = "delete"
	ActionBanUser         = "ban_user"
	ActionUnbanUser       = "unban_user"
	ActionWarn            = "warn"
	ActionForceVisibility = "force_visibility"
)

// ValidTargetType reports whether t is a moderatable target type.
func ValidTargetType(t string) bool {
	switch t {
	case TargetTypePost, TargetTypeComment, TargetTypeUser, TargetTypeChatMessage:
		return true
	}
	return false
}

// ValidActionType reports whether a is a known moderation action type.
func ValidActionType(a string) bool {
	switch a {
	case ActionHide, ActionUnhide, ActionDelete, ActionBanUser, ActionUnbanUser, ActionWarn, ActionForceVisibility:
		return true
	}
	return false
}

// ModerationAction rows are append-only; the effective state of a target is
// derived by folding its actions in creation order (policy.FoldActions).
type ModerationAction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TargetType string `gorm:"not null;index:idx_action_target;type:varchar(20)" json:"target_type"` // post, comment, user, chat_message
	TargetID   uint   `gorm:"not null;index:idx_action_target" json:"target_id"`
	ActionType string `gorm:"not null;type:varchar(20)" json:"action_type"`
	Reason     string `gorm:"not null" json:"reason"`

	// Visibility value imposed by a force_visibility action; empty otherwise.
	ForcedVisibility string `gorm:"type:varchar(20)" json:"forced_visibility,omitempty"`

	ActorAdminID uint `gorm:"not null" json:"actor_admin_id"`
	ActorAdmin   User `gorm:"foreignKey:ActorAdminID" json:"actor_admin"`
}
