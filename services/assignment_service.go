package services

import (
	"time"

	"grant-management-api/models"

	"gorm.io/gorm"
)

// AssignmentService owns the reviewer-assignment invariant: at most
// one review per (proposal, reviewer) pair, enforced by a lookup
// before create on top of the schema's composite unique index.
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// EnsureReview returns the pair's review, creating a Pending one when
// none exists. The bool reports whether this call created it; an
// existing review is returned untouched even when already completed.
func (s *AssignmentService) EnsureReview(proposalID, reviewerID int, now time.Time) (*models.Review, bool, error) {
	var existing models.Review
	err := s.db.Where("proposal_id = ? AND reviewer_id = ?", proposalID, reviewerID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	review := models.Review{
		ProposalID: proposalID,
		ReviewerID: reviewerID,
		Status:     models.ReviewPending,
		CreateAt:   &now,
		UpdateAt:   &now,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, false, err
	}
	return &review, true, nil
}
