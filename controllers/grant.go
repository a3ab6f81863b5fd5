package controllers

import (
	"net/http"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
	"grant-management-api/utils"

	"github.com/gin-gonic/gin"
)

type GrantRequest struct {
	Title        string               `json:"title" binding:"required"`
	Description  string               `json:"description" binding:"required"`
	Category     models.GrantCategory `json:"category" binding:"required"`
	Funding      float64              `json:"funding" binding:"required,gt=0"`
	Deadline     time.Time            `json:"deadline" binding:"required"`
	Requirements string               `json:"requirements"`
}

// GetGrants lists all grants. Grants whose deadline has passed are
// flipped to Closed and persisted before the list is re-read, so the
// response never shows a stale Active status.
func GetGrants(c *gin.Context) {
	reconciler := services.NewGrantReconcilerService(config.DB)
	if _, err := reconciler.Reconcile(time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh grant statuses"})
		return
	}

	query := config.DB.Where("delete_at IS NULL")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var grants []models.Grant
	if err := query.Order("deadline ASC").Find(&grants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"grants":  grants,
		"total":   len(grants),
	})
}

// GetGrant returns one grant by id.
func GetGrant(c *gin.Context) {
	id := c.Param("id")

	var grant models.Grant
	if err := config.DB.Preload("Creator").
		Where("grant_id = ? AND delete_at IS NULL", id).
		First(&grant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"grant": grant})
}

// CreateGrant posts a new funding opportunity. Admin only.
func CreateGrant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grant category"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	grant := models.Grant{
		Title:        utils.SanitizeInput(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		Funding:      req.Funding,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
		Status:       models.GrantActive,
		CreatedBy:    userID.(int),
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&grant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create grant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Grant created successfully",
		"grant":   grant,
	})
}

// UpdateGrant edits a grant. Existing proposals keep their snapshot
// of funding, deadline and category.
func UpdateGrant(c *gin.Context) {
	id := c.Param("id")

	var grant models.Grant
	if err := config.DB.Where("grant_id = ? AND delete_at IS NULL", id).First(&grant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grant category"})
		return
	}

	now := time.Now()
	grant.Title = utils.SanitizeInput(req.Title)
	grant.Description = req.Description
	grant.Category = req.Category
	grant.Funding = req.Funding
	grant.Deadline = req.Deadline
	grant.Requirements = req.Requirements
	grant.UpdateAt = &now

	if err := config.DB.Save(&grant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update grant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Grant updated successfully",
		"grant":   grant,
	})
}

// DeleteGrant soft-deletes a grant.
func DeleteGrant(c *gin.Context) {
	id := c.Param("id")

	var grant models.Grant
	if err := config.DB.Where("grant_id = ? AND delete_at IS NULL", id).First(&grant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&grant).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete grant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Grant deleted successfully"})
}
