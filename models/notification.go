package models

import "time"

// NotificationExpiry is the default lifetime of a notification.
const NotificationExpiry = 30 * 24 * time.Hour

type Notification struct {
	NotificationID    int        `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID            int        `gorm:"column:user_id" json:"user_id"`
	SenderID          *int       `gorm:"column:sender_id" json:"sender_id,omitempty"`
	Type              string     `gorm:"column:type" json:"type"` // info|success|warning|error
	Title             string     `gorm:"column:title" json:"title"`
	Message           string     `gorm:"column:message" json:"message"`
	RelatedProposalID *int       `gorm:"column:related_proposal_id" json:"related_proposal_id,omitempty"`
	IsRead            bool       `gorm:"column:is_read" json:"is_read"`
	ExpiresAt         time.Time  `gorm:"column:expires_at" json:"expires_at"`
	CreateAt          time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
