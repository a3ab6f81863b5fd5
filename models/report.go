package models

import "time"

// ReportStatus exists for schema completeness; generation always
// writes Final.
type ReportStatus string

const (
	ReportFinal ReportStatus = "Final"
	ReportDraft ReportStatus = "Draft"
)

// Report is a precomputed monthly snapshot. Immutable once written;
// generating twice for the same period creates two rows.
type Report struct {
	ReportID          int          `gorm:"primaryKey;column:report_id" json:"report_id"`
	Period            string       `gorm:"column:period" json:"period"` // YYYY-MM
	TotalProposals    int          `gorm:"column:total_proposals" json:"total_proposals"`
	ApprovedProposals int          `gorm:"column:approved_proposals" json:"approved_proposals"`
	RejectedProposals int          `gorm:"column:rejected_proposals" json:"rejected_proposals"`
	PendingProposals  int          `gorm:"column:pending_proposals" json:"pending_proposals"`
	TotalFunding      string       `gorm:"column:total_funding" json:"total_funding"` // formatted, e.g. "$4,000"
	AverageScore      float64      `gorm:"column:average_score" json:"average_score"`
	ActiveGrants      int          `gorm:"column:active_grants" json:"active_grants"`
	ClosedGrants      int          `gorm:"column:closed_grants" json:"closed_grants"`
	Status            ReportStatus `gorm:"column:status" json:"status"`
	GeneratedBy       int          `gorm:"column:generated_by" json:"generated_by"`
	GeneratedAt       time.Time    `gorm:"column:generated_at" json:"generated_at"`
}

func (Report) TableName() string {
	return "reports"
}
