package controllers

import (
	"net/http"
	"strconv"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/utils"

	"github.com/gin-gonic/gin"
)

// GetCommunityPosts lists discussion posts with their replies.
func GetCommunityPosts(c *gin.Context) {
	var posts []models.CommunityPost
	if err := config.DB.Preload("Author").Preload("Replies").Preload("Replies.Author").
		Where("delete_at IS NULL").
		Order("create_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
		"total":   len(posts),
	})
}

// CreateCommunityPost opens a discussion thread.
func CreateCommunityPost(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	post := models.CommunityPost{
		AuthorID: userID.(int),
		Title:    utils.SanitizeInput(req.Title),
		Content:  req.Content,
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := config.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// ReplyToCommunityPost adds a reply to a thread.
func ReplyToCommunityPost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.CommunityPost
	if err := config.DB.Where("post_id = ? AND delete_at IS NULL", postID).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	reply := models.CommunityReply{
		PostID:   post.PostID,
		AuthorID: userID.(int),
		Content:  req.Content,
		CreateAt: &now,
	}

	if err := config.DB.Create(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply created successfully",
		"reply":   reply,
	})
}
