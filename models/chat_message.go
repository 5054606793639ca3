package models

import (
	"time"
)

type ChatMessage struct {
	MessageID   uint      `gorm:"column:message_id;primaryKey;autoIncrement"`
	SenderID    uint      `gorm:"column:sender_id;not null;index"`
	RecipientID uint      `gorm:"column:recipient_id;not null;index"`
	Body        string    `gorm:"column:body;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Sender    User `gorm:"foreignKey:SenderID"`
	Recipient User `gorm:"foreignKey:RecipientID"`
}
