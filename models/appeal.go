package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	AppealStatusPending   = "pending"
	AppealStatusApproved  = "approved"  // terminal
	AppealStatusRejected  = "rejected"  // terminal
	AppealStatusWithdrawn = "withdrawn" // terminal
)

// Appeal is created only when a moderation action currently applies negatively
// to a target owned by the submitter. At most one pending appeal may exist per
// (target, submitter) pair.
type Appeal struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	TargetType        string         `gorm:"not null;index:idx_appeal_target;type:varchar(20)" json:"target_type"`
	TargetID          uint           `gorm:"not null;index:idx_appeal_target" json:"target_id"`
	SubmittedByUserID uint           `gorm:"not null;index" json:"submitted_by_user_id"`
	Reason            string         `gorm:"not null" json:"reason"`
	Detail            string         `gorm:"type:text" json:"detail"`
	AttachmentURLs    pq.StringArray `gorm:"type:text[]" json:"attachment_urls"`
	Status            string         `gorm:"not null;default:'pending'" json:"status"` // pending, approved, rejected, withdrawn
	ResolutionNote    string         `json:"resolution_note"`
	ResolvedByAdminID *uint          `json:"resolved_by_admin_id"`
	ResolvedAt        *time.Time     `json:"resolved_at"`

	SubmittedByUser User `gorm:"foreignKey:SubmittedByUserID" json:"submitted_by_user"`
}
