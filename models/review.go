package models

import "time"

// ReviewStatus tracks a reviewer's progress on an assignment.
type ReviewStatus string

const (
	ReviewPending    ReviewStatus = "Pending"
	ReviewInProgress ReviewStatus = "In Progress"
	ReviewCompleted  ReviewStatus = "Completed"
)

// Decision is the categorical outcome of a completed review.
type Decision string

const (
	DecisionApproved           Decision = "Approved"
	DecisionRejected           Decision = "Rejected"
	DecisionRevisionsRequested Decision = "Revisions Requested"
)

// ProposalStatus maps a review decision to the proposal status it
// drives. The second return is false for unknown decisions.
func (d Decision) ProposalStatus() (ProposalStatus, bool) {
	switch d {
	case DecisionApproved:
		return ProposalApproved, true
	case DecisionRejected:
		return ProposalRejected, true
	case DecisionRevisionsRequested:
		return ProposalNeedsRevision, true
	}
	return "", false
}

// Review binds one proposal to one reviewer. The composite unique
// index backs the at-most-one-review-per-pair invariant; controllers
// still look up before creating so repeated assignment stays a no-op.
type Review struct {
	ReviewID   int `gorm:"primaryKey;column:review_id" json:"review_id"`
	ProposalID int `gorm:"column:proposal_id;uniqueIndex:idx_proposal_reviewer" json:"proposal_id"`
	ReviewerID int `gorm:"column:reviewer_id;uniqueIndex:idx_proposal_reviewer" json:"reviewer_id"`

	Status   ReviewStatus `gorm:"column:status" json:"status"`
	Decision *Decision    `gorm:"column:decision" json:"decision,omitempty"`

	Score            *float64 `gorm:"column:score" json:"score,omitempty"`
	InnovationScore  *float64 `gorm:"column:innovation_score" json:"innovation_score,omitempty"`
	ImpactScore      *float64 `gorm:"column:impact_score" json:"impact_score,omitempty"`
	FeasibilityScore *float64 `gorm:"column:feasibility_score" json:"feasibility_score,omitempty"`

	Comments   string     `gorm:"column:comments" json:"comments"`
	ReviewDate *time.Time `gorm:"column:review_date" json:"review_date,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`

	Proposal *Proposal `gorm:"foreignKey:ProposalID" json:"proposal,omitempty"`
	Reviewer *User     `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
