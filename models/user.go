package models

import (
	"time"
)

// Role is the fixed set of account roles. Self-registration always
// produces RoleResearcher; the role never changes after creation.
type Role string

const (
	RoleResearcher Role = "researcher"
	RoleReviewer   Role = "reviewer"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleResearcher, RoleReviewer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	UserID         int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName      string     `gorm:"column:first_name" json:"first_name"`
	LastName       string     `gorm:"column:last_name" json:"last_name"`
	Email          string     `gorm:"column:email;unique" json:"email"`
	Password       string     `gorm:"column:password" json:"-"`
	Role           Role       `gorm:"column:role" json:"role"`
	Institution    string     `gorm:"column:institution" json:"institution"`
	Department     string     `gorm:"column:department" json:"department"`
	Phone          *string    `gorm:"column:phone" json:"phone,omitempty"`
	EmailVerified  bool       `gorm:"column:email_verified" json:"email_verified"`
	VerifyToken    *string    `gorm:"column:verify_token" json:"-"`
	VerifyTokenExp *time.Time `gorm:"column:verify_token_exp" json:"-"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// UserEditLog records a single field change made by an admin, one row
// per edited field.
type UserEditLog struct {
	EditLogID int       `gorm:"primaryKey;column:edit_log_id" json:"edit_log_id"`
	UserID    int       `gorm:"column:user_id" json:"user_id"`
	Field     string    `gorm:"column:field" json:"field"`
	OldValue  string    `gorm:"column:old_value" json:"old_value"`
	NewValue  string    `gorm:"column:new_value" json:"new_value"`
	ChangedBy int       `gorm:"column:changed_by" json:"changed_by"`
	ChangedAt time.Time `gorm:"column:changed_at" json:"changed_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (UserEditLog) TableName() string {
	return "user_edit_logs"
}

// FullName returns the display name used in letters and notifications.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
