package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
)

// Report is a user-submitted complaint about a piece of content or a user;
// admins review reports and respond with moderation actions.
type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ReporterUserID uint   `gorm:"not null" json:"reporter_user_id"`
	TargetType     string `gorm:"not null;index:idx_report_target;type:varchar(20)" json:"target_type"`
	TargetID       uint   `gorm:"not null;index:idx_report_target" json:"target_id"`
	Reason         string `gorm:"not null" json:"reason"`
	Description    string `json:"description"`
	Status         string `gorm:"not null;default:'pending'" json:"status"` // pending, reviewed, dismissed

	ReporterUser User `gorm:"foreignKey:ReporterUserID" json:"reporter_user"`
}
