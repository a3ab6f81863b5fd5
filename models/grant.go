package models

import "time"

// GrantStatus is the stored grant state. Closed is reached either by
// an admin edit or by the deadline sweep in services.
type GrantStatus string

const (
	GrantActive GrantStatus = "Active"
	GrantClosed GrantStatus = "Closed"
)

// GrantCategory is the fixed funding category enum shared by grants
// and the proposal snapshot field.
type GrantCategory string

const (
	CategoryResearch    GrantCategory = "Research"
	CategoryEducation   GrantCategory = "Education"
	CategoryHealthcare  GrantCategory = "Healthcare"
	CategoryTechnology  GrantCategory = "Technology"
	CategoryEnvironment GrantCategory = "Environment"
	CategoryArts        GrantCategory = "Arts"
	CategoryCommunity   GrantCategory = "Community"
	CategoryOther       GrantCategory = "Other"
)

// Valid reports whether c is a known category.
func (c GrantCategory) Valid() bool {
	switch c {
	case CategoryResearch, CategoryEducation, CategoryHealthcare,
		CategoryTechnology, CategoryEnvironment, CategoryArts,
		CategoryCommunity, CategoryOther:
		return true
	}
	return false
}

type Grant struct {
	GrantID        int           `gorm:"primaryKey;column:grant_id" json:"grant_id"`
	Title          string        `gorm:"column:title" json:"title"`
	Description    string        `gorm:"column:description" json:"description"`
	Category       GrantCategory `gorm:"column:category" json:"category"`
	Funding        float64       `gorm:"column:funding" json:"funding"`
	Deadline       time.Time     `gorm:"column:deadline" json:"deadline"`
	Requirements   string        `gorm:"column:requirements" json:"requirements"`
	Status         GrantStatus   `gorm:"column:status" json:"status"`
	ApplicantCount int           `gorm:"column:applicant_count" json:"applicant_count"`
	ApprovedCount  int           `gorm:"column:approved_count" json:"approved_count"`
	CreatedBy      int           `gorm:"column:created_by" json:"created_by"`
	CreateAt       *time.Time    `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time    `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time    `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Grant) TableName() string {
	return "grants"
}

// PastDeadline reports whether the grant's deadline lies before now.
func (g *Grant) PastDeadline(now time.Time) bool {
	return g.Deadline.Before(now)
}
