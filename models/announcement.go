package models

import "time"

type Announcement struct {
	AnnouncementID int        `gorm:"primaryKey;column:announcement_id" json:"announcement_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Body           string     `gorm:"column:body" json:"body"`
	Priority       string     `gorm:"column:priority" json:"priority"` // normal|high
	Status         string     `gorm:"column:status" json:"status"`     // active|archived
	CreatedBy      int        `gorm:"column:created_by" json:"created_by"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}
