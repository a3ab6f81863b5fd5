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
	"grant-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// proposalNarrativeFields are the required multipart form fields, in
// the order they are reported back on validation failure.
var proposalNarrativeFields = []string{
	"title", "abstract", "objectives", "methodology", "timeline",
}

func parseBudgetField(c *gin.Context, field string) (float64, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", field)
	}
	return value, nil
}

// CreateProposal handles a researcher's multipart submission. The
// proposal enters Under Review directly; Draft exists in the schema
// but no submission path produces it.
func CreateProposal(c *gin.Context) {
	userID, _ := c.Get("userID")

	if _, err := c.MultipartForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected multipart form data"})
		return
	}

	fields := make(map[string]string)
	for _, name := range proposalNarrativeFields {
		fields[name] = strings.TrimSpace(c.PostForm(name))
	}
	if missing := utils.RequireFields(fields, proposalNarrativeFields); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: " + strings.Join(missing, ", "),
		})
		return
	}

	grantID, err := strconv.Atoi(c.PostForm("grant_id"))
	if err != nil || grantID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grant ID"})
		return
	}

	var grant models.Grant
	if err := config.DB.Where("grant_id = ? AND delete_at IS NULL", grantID).First(&grant).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced grant does not exist"})
		return
	}
	if grant.Status == models.GrantClosed || grant.PastDeadline(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grant is closed for submissions"})
		return
	}

	budget := make(map[string]float64, 5)
	for _, field := range []string{"personnel_costs", "equipment_costs", "materials_costs", "travel_costs", "other_costs"} {
		value, err := parseBudgetField(c, field)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		budget[field] = value
	}

	budgetTotal := budget["personnel_costs"] + budget["equipment_costs"] +
		budget["materials_costs"] + budget["travel_costs"] + budget["other_costs"]
	switch models.ValidateBudget(budgetTotal, grant.Funding) {
	case models.ErrBudgetZero:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget breakdown cannot be zero"})
		return
	case models.ErrBudgetMismatch:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Budget total %.2f must equal the grant funding amount %.2f", budgetTotal, grant.Funding),
		})
		return
	}

	documentFile, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Proposal document is required"})
		return
	}

	documentURL, err := services.UploadFile(c.Request.Context(), documentFile, "proposals")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store proposal document"})
		return
	}

	var cvURL *string
	if cvFile, err := c.FormFile("cv"); err == nil {
		url, err := services.UploadFile(c.Request.Context(), cvFile, "cvs")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store CV"})
			return
		}
		cvURL = &url
	}

	// Additional documents are uploaded one by one, in form order.
	var additionalDocs models.StringList
	if form := c.Request.MultipartForm; form != nil {
		for _, header := range form.File["additional_documents"] {
			url, err := services.UploadFile(c.Request.Context(), header, "additional")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store additional document"})
				return
			}
			additionalDocs = append(additionalDocs, url)
		}
	}

	now := time.Now()
	proposal := models.Proposal{
		GrantID:          grant.GrantID,
		ResearcherID:     userID.(int),
		Title:            fields["title"],
		Abstract:         fields["abstract"],
		Objectives:       fields["objectives"],
		Methodology:      fields["methodology"],
		Timeline:         fields["timeline"],
		ExpectedOutcomes: strings.TrimSpace(c.PostForm("expected_outcomes")),
		PersonnelCosts:   budget["personnel_costs"],
		EquipmentCosts:   budget["equipment_costs"],
		MaterialsCosts:   budget["materials_costs"],
		TravelCosts:      budget["travel_costs"],
		OtherCosts:       budget["other_costs"],

		// Immutable snapshots; later grant edits never reach these.
		Funding:  grant.Funding,
		Deadline: grant.Deadline,
		Category: grant.Category,

		DocumentURL:    documentURL,
		CVURL:          cvURL,
		AdditionalDocs: additionalDocs,
		Status:         models.ProposalUnderReview,
		DateSubmitted:  &now,
		CreateAt:       &now,
		UpdateAt:       &now,
	}

	if err := config.DB.Create(&proposal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create proposal"})
		return
	}

	config.DB.Model(&models.Grant{}).
		Where("grant_id = ?", grant.GrantID).
		Update("applicant_count", gorm.Expr("applicant_count + 1"))

	services.Notifications.Enqueue(services.NotificationEvent{
		Recipients:        services.AdminRecipients(config.DB),
		SenderID:          intPtr(userID.(int)),
		Type:              "info",
		Title:             "New proposal submitted",
		Message:           fmt.Sprintf("Proposal %q was submitted against grant %q.", proposal.Title, grant.Title),
		RelatedProposalID: &proposal.ProposalID,
	})
	services.InvalidateAnalytics(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Proposal submitted successfully",
		"proposal": proposal,
	})
}

// GetMyProposals lists the caller's proposals.
func GetMyProposals(c *gin.Context) {
	userID, _ := c.Get("userID")

	var proposals []models.Proposal
	if err := config.DB.Preload("Grant").Preload("Reviewer").
		Where("researcher_id = ? AND delete_at IS NULL", userID).
		Order("date_submitted DESC").
		Find(&proposals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"proposals": proposals,
		"total":     len(proposals),
	})
}

// GetMyProposal returns one of the caller's proposals by id.
func GetMyProposal(c *gin.Context) {
	userID, _ := c.Get("userID")
	id := c.Param("id")

	var proposal models.Proposal
	if err := config.DB.Preload("Grant").Preload("Reviewer").
		Where("proposal_id = ? AND researcher_id = ? AND delete_at IS NULL", id, userID).
		First(&proposal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// GetProposalsByGrant lists all proposals for a grant. Admin only.
func GetProposalsByGrant(c *gin.Context) {
	grantID := c.Param("grantId")

	var proposals []models.Proposal
	if err := config.DB.Preload("Researcher").Preload("Reviewer").
		Where("grant_id = ? AND delete_at IS NULL", grantID).
		Order("date_submitted DESC").
		Find(&proposals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"proposals": proposals,
		"total":     len(proposals),
	})
}

// AssignReviewer sets the proposal's reviewer and creates the Pending
// review when the (proposal, reviewer) pair has none yet. Repeated
// calls with the same pair are no-ops: an existing review is left
// untouched even when it is already completed. The proposal status is
// not changed here.
func AssignReviewer(c *gin.Context) {
	proposalID, err := strconv.Atoi(c.Param("proposalId"))
	if err != nil || proposalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal ID"})
		return
	}

	var req struct {
		ReviewerID int `json:"reviewer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var proposal models.Proposal
	if err := config.DB.Where("proposal_id = ? AND delete_at IS NULL", proposalID).First(&proposal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}

	var reviewer models.User
	if err := config.DB.Where("user_id = ? AND role = ? AND delete_at IS NULL", req.ReviewerID, models.RoleReviewer).
		First(&reviewer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reviewer not found"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"reviewer_id": reviewer.UserID,
		"update_at":   now,
	}
	if err := config.DB.Model(&models.Proposal{}).Where("proposal_id = ?", proposal.ProposalID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign reviewer"})
		return
	}

	review, created, err := services.NewAssignmentService(config.DB).
		EnsureReview(proposal.ProposalID, reviewer.UserID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review assignment"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{
			"message": "Reviewer already assigned",
			"review":  review,
		})
		return
	}

	services.Notifications.Enqueue(services.NotificationEvent{
		Recipients:        []int{reviewer.UserID},
		Type:              "info",
		Title:             "New review assignment",
		Message:           fmt.Sprintf("You have been assigned to review proposal %q.", proposal.Title),
		RelatedProposalID: &proposal.ProposalID,
		EmailTo:           []string{reviewer.Email},
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reviewer assigned successfully",
		"review":  review,
	})
}

// DeleteProposal removes a proposal. Allowed for the owning
// researcher and for admins.
func DeleteProposal(c *gin.Context) {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")
	id := c.Param("id")

	var proposal models.Proposal
	if err := config.DB.Where("proposal_id = ? AND delete_at IS NULL", id).First(&proposal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}

	if role.(models.Role) != models.RoleAdmin && proposal.ResearcherID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&proposal).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete proposal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Proposal deleted successfully"})
}

// GetAwardLetter streams the PDF award letter for an approved
// proposal. Generated per request, not cached. The ?token= query form
// of authentication exists for exactly this download path.
func GetAwardLetter(c *gin.Context) {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")
	id := c.Param("id")

	var proposal models.Proposal
	if err := config.DB.Preload("Grant").Preload("Researcher").
		Where("proposal_id = ? AND delete_at IS NULL", id).
		First(&proposal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}

	isHolder := proposal.ResearcherID == userID.(int) ||
		role.(models.Role) == models.RoleAdmin ||
		(proposal.ReviewerID != nil && *proposal.ReviewerID == userID.(int))
	if !isHolder {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if proposal.Status != models.ProposalApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Award letters are only available for approved proposals"})
		return
	}

	if proposal.Researcher == nil || proposal.Grant == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Proposal is missing its grant or researcher record"})
		return
	}

	pdfData, err := services.BuildAwardLetter(&proposal, proposal.Researcher, proposal.Grant)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate award letter"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="award-letter-%d.pdf"`, proposal.ProposalID))
	c.Data(http.StatusOK, "application/pdf", pdfData)
}

func intPtr(v int) *int { return &v }
