package controllers

import (
	"net/http"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUsers lists all accounts. Admin only.
func GetUsers(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("create_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"total":   len(users),
	})
}

// GetReviewers lists all reviewer accounts for assignment pickers.
func GetReviewers(c *gin.Context) {
	var reviewers []models.User
	if err := config.DB.Where("role = ? AND delete_at IS NULL", models.RoleReviewer).
		Order("last_name ASC").
		Find(&reviewers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviewers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"reviewers": reviewers,
		"total":     len(reviewers),
	})
}

// GetUser returns one account by id. Admin only.
func GetUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var editLogs []models.UserEditLog
	config.DB.Where("user_id = ?", user.UserID).Order("changed_at DESC").Find(&editLogs)

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"edit_logs": editLogs,
	})
}

type CreateUserRequest struct {
	FirstName   string      `json:"first_name" binding:"required"`
	LastName    string      `json:"last_name" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required"`
	Role        models.Role `json:"role" binding:"required"`
	Institution string      `json:"institution"`
	Department  string      `json:"department"`
}

// CreateUser lets an admin create an account with any role. This is
// the only path that produces reviewer and admin accounts.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var existing models.User
	err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}
	if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing accounts"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	now := time.Now()
	user := models.User{
		FirstName:     utils.SanitizeInput(req.FirstName),
		LastName:      utils.SanitizeInput(req.LastName),
		Email:         req.Email,
		Password:      hashed,
		Role:          req.Role,
		Institution:   utils.SanitizeInput(req.Institution),
		Department:    utils.SanitizeInput(req.Department),
		EmailVerified: true, // admin-created accounts skip verification
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Institution *string `json:"institution"`
	Department  *string `json:"department"`
	Phone       *string `json:"phone"`
}

// UpdateUser applies an admin edit and records each changed field in
// the audit trail. The role is fixed at creation and not editable.
func UpdateUser(c *gin.Context) {
	adminID, _ := c.Get("userID")
	id := c.Param("id")

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	var logs []models.UserEditLog
	logChange := func(field, oldValue, newValue string) {
		if oldValue == newValue {
			return
		}
		logs = append(logs, models.UserEditLog{
			UserID:    user.UserID,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: adminID.(int),
			ChangedAt: now,
		})
	}

	if req.FirstName != nil {
		logChange("first_name", user.FirstName, *req.FirstName)
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		logChange("last_name", user.LastName, *req.LastName)
		user.LastName = *req.LastName
	}
	if req.Institution != nil {
		logChange("institution", user.Institution, *req.Institution)
		user.Institution = *req.Institution
	}
	if req.Department != nil {
		logChange("department", user.Department, *req.Department)
		user.Department = *req.Department
	}
	if req.Phone != nil {
		oldPhone := ""
		if user.Phone != nil {
			oldPhone = *user.Phone
		}
		logChange("phone", oldPhone, *req.Phone)
		user.Phone = req.Phone
	}

	if len(logs) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No changes", "user": user})
		return
	}

	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	if err := config.DB.Create(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record edit history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
		"changes": len(logs),
	})
}

// DeleteUser soft-deletes an account, refusing while the account
// still owns proposals or reviews.
func DeleteUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var proposalCount int64
	config.DB.Model(&models.Proposal{}).
		Where("researcher_id = ? AND delete_at IS NULL", user.UserID).
		Count(&proposalCount)

	var reviewCount int64
	config.DB.Model(&models.Review{}).
		Where("reviewer_id = ?", user.UserID).
		Count(&reviewCount)

	if proposalCount > 0 || reviewCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot delete a user who owns proposals or reviews",
		})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetMe returns the caller's profile.
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMe lets the caller edit their own profile fields. Self edits
// are not audit-logged; only admin edits are.
func UpdateMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Institution != nil {
		user.Institution = *req.Institution
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	now := time.Now()
	user.UpdateAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
