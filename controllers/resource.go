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

// GetResources lists shared documents.
func GetResources(c *gin.Context) {
	var resources []models.Resource
	if err := config.DB.Preload("Uploader").
		Where("delete_at IS NULL").
		Order("create_at DESC").
		Find(&resources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"resources": resources,
		"total":     len(resources),
	})
}

// CreateResource uploads a shared document. Admin only. Multipart
// form: title, description and one file.
func CreateResource(c *gin.Context) {
	title := utils.SanitizeInput(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resource file is required"})
		return
	}

	fileURL, err := services.UploadFile(c.Request.Context(), file, "resources")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store resource file"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	resource := models.Resource{
		Title:       title,
		Description: c.PostForm("description"),
		FileURL:     fileURL,
		UploadedBy:  userID.(int),
		CreateAt:    &now,
	}

	if err := config.DB.Create(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resource"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Resource created successfully",
		"resource": resource,
	})
}

// DeleteResource soft-deletes a shared document. Admin only.
func DeleteResource(c *gin.Context) {
	id := c.Param("id")

	var resource models.Resource
	if err := config.DB.Where("resource_id = ? AND delete_at IS NULL", id).First(&resource).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&resource).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resource"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}
