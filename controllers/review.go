package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitReviewRequest struct {
	Decision         models.Decision `json:"decision" binding:"required"`
	Comments         string          `json:"comments" binding:"required"`
	Score            *float64        `json:"score"`
	InnovationScore  *float64        `json:"innovation_score"`
	ImpactScore      *float64        `json:"impact_score"`
	FeasibilityScore *float64        `json:"feasibility_score"`
}

// SubmitReview records the caller's decision for a proposal and
// drives the proposal's status transition. The review decision is the
// only event that moves a proposal out of Under Review.
func SubmitReview(c *gin.Context) {
	userID, _ := c.Get("userID")

	proposalID, err := strconv.Atoi(c.Param("proposalId"))
	if err != nil || proposalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal ID"})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Comments) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comments are required"})
		return
	}

	newStatus, ok := req.Decision.ProposalStatus()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be Approved, Rejected or Revisions Requested"})
		return
	}

	// The caller must have been assigned; otherwise there is no review
	// row for this pair.
	var review models.Review
	if err := config.DB.Where("proposal_id = ? AND reviewer_id = ?", proposalID, userID).First(&review).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load review"})
		return
	}

	var proposal models.Proposal
	if err := config.DB.Preload("Researcher").Preload("Grant").
		Where("proposal_id = ? AND delete_at IS NULL", proposalID).
		First(&proposal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}

	now := time.Now()
	oldStatus := proposal.Status

	review.Decision = &req.Decision
	review.Comments = req.Comments
	review.Score = req.Score
	review.InnovationScore = req.InnovationScore
	review.ImpactScore = req.ImpactScore
	review.FeasibilityScore = req.FeasibilityScore
	review.Status = models.ReviewCompleted
	review.ReviewDate = &now
	review.UpdateAt = &now

	if err := config.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	updates := map[string]interface{}{
		"status":    newStatus,
		"update_at": now,
	}
	if err := config.DB.Model(&models.Proposal{}).Where("proposal_id = ?", proposal.ProposalID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update proposal status"})
		return
	}

	if req.Decision == models.DecisionApproved {
		config.DB.Model(&models.Grant{}).
			Where("grant_id = ?", proposal.GrantID).
			Update("approved_count", gorm.Expr("approved_count + 1"))
	}

	// Best-effort fan-out; the decision is already committed.
	reviewerID := userID.(int)
	services.Notifications.Enqueue(services.NotificationEvent{
		Recipients:        services.AdminRecipients(config.DB),
		SenderID:          &reviewerID,
		Type:              "success",
		Title:             "Review completed",
		Message:           fmt.Sprintf("A review for proposal %q was completed with decision %s.", proposal.Title, req.Decision),
		RelatedProposalID: &proposal.ProposalID,
	})
	if proposal.Researcher != nil {
		services.Notifications.Enqueue(services.NotificationEvent{
			Recipients:        []int{proposal.ResearcherID},
			SenderID:          &reviewerID,
			Type:              "info",
			Title:             "Proposal status changed",
			Message:           fmt.Sprintf("Your proposal %q changed from %s to %s.", proposal.Title, oldStatus, newStatus),
			RelatedProposalID: &proposal.ProposalID,
			EmailTo:           []string{proposal.Researcher.Email},
		})
	}
	services.InvalidateAnalytics(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message":         "Review submitted successfully",
		"review":          review,
		"proposal_status": newStatus,
	})
}

// GetAssignedReviews lists the caller's review assignments.
func GetAssignedReviews(c *gin.Context) {
	userID, _ := c.Get("userID")

	var reviews []models.Review
	if err := config.DB.Preload("Proposal").Preload("Proposal.Grant").
		Where("reviewer_id = ?", userID).
		Order("create_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// GetReviewsByProposal lists all reviews of one proposal.
func GetReviewsByProposal(c *gin.Context) {
	proposalID := c.Param("proposalId")

	var reviews []models.Review
	if err := config.DB.Preload("Reviewer").
		Where("proposal_id = ?", proposalID).
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}
