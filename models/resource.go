package models

import "time"

// Resource is a downloadable document shared with all users (forms,
// templates, guidelines).
type Resource struct {
	ResourceID  int        `gorm:"primaryKey;column:resource_id" json:"resource_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	FileURL     string     `gorm:"column:file_url" json:"file_url"`
	UploadedBy  int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Uploader *User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

func (Resource) TableName() string {
	return "resources"
}
