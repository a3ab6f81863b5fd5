package controllers

import (
	"net/http"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's unexpired notifications.
func GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	var notifications []models.Notification
	if err := config.DB.
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("create_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	unread := 0
	for i := range notifications {
		if !notifications[i].IsRead {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead flags one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID, _ := c.Get("userID")
	id := c.Param("id")

	var notification models.Notification
	if err := config.DB.Where("notification_id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_read":   true,
		"update_at": now,
	}
	if err := config.DB.Model(&notification).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
