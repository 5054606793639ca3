package models

import (
	"gorm.io/gorm"
)

// AuditLog is the append-only moderation audit trail: who did what to which
// target and why. Rows are written in the same transaction as the moderation
// action or appeal transition they record.
type AuditLog struct {
	gorm.Model
	ActorUserID uint   `json:"actorUserId" gorm:"not null;index"`
	ActorUser   User   `json:"actorUser" gorm:"foreignKey:ActorUserID"`
	TargetType  string `json:"targetType" gorm:"not null;type:varchar(20)"`
	TargetID    uint   `json:"targetId" gorm:"not null"`
	Activity    string `json:"activity" gorm:"not null;type:varchar(50)"` // "moderation_hide", "appeal_submitted", etc.
	Reason      string `json:"reason" gorm:"not null"`
	Detail      string `json:"detail" gorm:"type:text"`
}
