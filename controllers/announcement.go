package controllers

import (
	"net/http"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/utils"

	"github.com/gin-gonic/gin"
)

// GetAnnouncements lists announcements, newest first.
func GetAnnouncements(c *gin.Context) {
	query := config.DB.Preload("Creator").Where("delete_at IS NULL")

	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if c.Query("active_only") == "true" {
		query = query.Where("status = ?", "active")
	}

	var announcements []models.Announcement
	if err := query.Order("create_at DESC").Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"announcements": announcements,
		"total":         len(announcements),
	})
}

// CreateAnnouncement posts an announcement. Admin only.
func CreateAnnouncement(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Body     string `json:"body" binding:"required"`
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Priority == "" {
		req.Priority = "normal"
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	announcement := models.Announcement{
		Title:     utils.SanitizeInput(req.Title),
		Body:      req.Body,
		Priority:  req.Priority,
		Status:    "active",
		CreatedBy: userID.(int),
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Announcement created successfully",
		"announcement": announcement,
	})
}

// DeleteAnnouncement soft-deletes an announcement. Admin only.
func DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")

	var announcement models.Announcement
	if err := config.DB.Where("announcement_id = ? AND delete_at IS NULL", id).First(&announcement).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&announcement).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
