package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"grant-management-api/config"
	"grant-management-api/middleware"
	"grant-management-api/models"
	"grant-management-api/services"
	"grant-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tokenLifetime is the only invalidation mechanism; there is no
// refresh flow and no revocation list.
const tokenLifetime = 7 * 24 * time.Hour

const verifyTokenLifetime = 48 * time.Hour

type RegisterRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Institution string `json:"institution"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// Register creates a researcher account and sends the verification
// email. Self-registration never yields any other role.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
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
	token := uuid.New().String()
	tokenExp := now.Add(verifyTokenLifetime)

	user := models.User{
		FirstName:      utils.SanitizeInput(req.FirstName),
		LastName:       utils.SanitizeInput(req.LastName),
		Email:          req.Email,
		Password:       hashed,
		Role:           models.RoleResearcher,
		Institution:    utils.SanitizeInput(req.Institution),
		Department:     utils.SanitizeInput(req.Department),
		VerifyToken:    &token,
		VerifyTokenExp: &tokenExp,
		CreateAt:       &now,
		UpdateAt:       &now,
	}
	if req.Phone != "" {
		phone := utils.SanitizeInput(req.Phone)
		user.Phone = &phone
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	sendVerificationEmail(&user, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful, please verify your email",
		"user":    user,
	})
}

// Login handles user authentication
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		User:    user,
		Message: "Login successful",
	})
}

// VerifyEmail confirms the address behind a verification token.
func VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	var user models.User
	if err := config.DB.Where("verify_token = ? AND delete_at IS NULL", token).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Verification token not found"})
		return
	}

	if user.VerifyTokenExp != nil && user.VerifyTokenExp.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification token has expired"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"email_verified":   true,
		"verify_token":     nil,
		"verify_token_exp": nil,
		"update_at":        now,
	}
	if err := config.DB.Model(&models.User{}).Where("user_id = ?", user.UserID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// ResendVerification issues a fresh token for an unverified account.
func ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	if user.EmailVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already verified"})
		return
	}

	now := time.Now()
	token := uuid.New().String()
	tokenExp := now.Add(verifyTokenLifetime)
	updates := map[string]interface{}{
		"verify_token":     token,
		"verify_token_exp": tokenExp,
		"update_at":        now,
	}
	if err := config.DB.Model(&models.User{}).Where("user_id = ?", user.UserID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh verification token"})
		return
	}

	sendVerificationEmail(&user, token)

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}

// sendVerificationEmail is best-effort; registration already
// succeeded when it runs.
func sendVerificationEmail(user *models.User, token string) {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	link := fmt.Sprintf("%s/api/v1/auth/verify-email/%s", base, token)
	services.Notifications.Enqueue(services.NotificationEvent{
		Recipients: []int{user.UserID},
		Type:       "info",
		Title:      "Verify your email",
		Message:    fmt.Sprintf(`Welcome %s. Confirm your address by opening <a href="%s">this link</a>.`, user.FullName(), link),
		EmailTo:    []string{user.Email},
	})
}

// generateToken creates JWT token
func generateToken(user models.User) (string, error) {
	claims := middleware.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
