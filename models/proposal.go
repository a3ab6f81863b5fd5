package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ProposalStatus is the proposal lifecycle state. Draft is declared in
// the schema but the submission path always creates Under Review; it
// stays reachable only for a future save-draft feature.
type ProposalStatus string

const (
	ProposalDraft         ProposalStatus = "Draft"
	ProposalUnderReview   ProposalStatus = "Under Review"
	ProposalApproved      ProposalStatus = "Approved"
	ProposalRejected      ProposalStatus = "Rejected"
	ProposalNeedsRevision ProposalStatus = "Needs Revision"
)

// Pending reports whether the status counts as pending in monthly
// report partitions (everything that is not a final approve/reject).
func (s ProposalStatus) Pending() bool {
	switch s {
	case ProposalDraft, ProposalUnderReview, ProposalNeedsRevision:
		return true
	}
	return false
}

// StringList stores a JSON string array in a single text column. Used
// for the additional-document URLs on a proposal.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

type Proposal struct {
	ProposalID   int `gorm:"primaryKey;column:proposal_id" json:"proposal_id"`
	GrantID      int `gorm:"column:grant_id" json:"grant_id"`
	ResearcherID int `gorm:"column:researcher_id" json:"researcher_id"`

	Title            string `gorm:"column:title" json:"title"`
	Abstract         string `gorm:"column:abstract" json:"abstract"`
	Objectives       string `gorm:"column:objectives" json:"objectives"`
	Methodology      string `gorm:"column:methodology" json:"methodology"`
	Timeline         string `gorm:"column:timeline" json:"timeline"`
	ExpectedOutcomes string `gorm:"column:expected_outcomes" json:"expected_outcomes"`

	PersonnelCosts float64 `gorm:"column:personnel_costs" json:"personnel_costs"`
	EquipmentCosts float64 `gorm:"column:equipment_costs" json:"equipment_costs"`
	MaterialsCosts float64 `gorm:"column:materials_costs" json:"materials_costs"`
	TravelCosts    float64 `gorm:"column:travel_costs" json:"travel_costs"`
	OtherCosts     float64 `gorm:"column:other_costs" json:"other_costs"`

	// Snapshots copied from the grant at submission time. Later grant
	// edits never alter these.
	Funding  float64       `gorm:"column:funding" json:"funding"`
	Deadline time.Time     `gorm:"column:deadline" json:"deadline"`
	Category GrantCategory `gorm:"column:category" json:"category"`

	DocumentURL    string     `gorm:"column:document_url" json:"document_url"`
	CVURL          *string    `gorm:"column:cv_url" json:"cv_url,omitempty"`
	AdditionalDocs StringList `gorm:"column:additional_docs;type:text" json:"additional_docs"`

	Status        ProposalStatus `gorm:"column:status" json:"status"`
	ReviewerID    *int           `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	DateSubmitted *time.Time     `gorm:"column:date_submitted" json:"date_submitted"`
	CreateAt      *time.Time     `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time     `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time     `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Grant      *Grant `gorm:"foreignKey:GrantID" json:"grant,omitempty"`
	Researcher *User  `gorm:"foreignKey:ResearcherID" json:"researcher,omitempty"`
	Reviewer   *User  `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Proposal) TableName() string {
	return "proposals"
}

// BudgetTotal sums the five budget components.
func (p *Proposal) BudgetTotal() float64 {
	return p.PersonnelCosts + p.EquipmentCosts + p.MaterialsCosts + p.TravelCosts + p.OtherCosts
}

// Budget validation failures at submission time.
var (
	ErrBudgetZero     = errors.New("budget breakdown cannot be zero")
	ErrBudgetMismatch = errors.New("budget total must equal the grant funding amount")
)

// ValidateBudget enforces the submission budget rule: the components
// must sum to a nonzero total exactly equal to the grant's funding
// amount. Strict equality, not <=.
func ValidateBudget(total, funding float64) error {
	if total == 0 {
		return ErrBudgetZero
	}
	if total != funding {
		return ErrBudgetMismatch
	}
	return nil
}

// SubmittedOrCreated returns date_submitted when present, otherwise
// create_at. Report windowing treats either timestamp as qualifying.
func (p *Proposal) SubmittedOrCreated() time.Time {
	if p.DateSubmitted != nil {
		return *p.DateSubmitted
	}
	if p.CreateAt != nil {
		return *p.CreateAt
	}
	return time.Time{}
}
