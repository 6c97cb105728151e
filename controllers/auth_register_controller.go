package controllers

import (
	"time"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username         string `json:"username" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	RepeatedPassword string `json:"repeated_password" binding:"required"`
	Type             string `json:"type"`
}

// RegisterUser handles user registration and returns an auth token
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please check your input data and ensure all required fields are provided correctly.")
		return
	}

	utils.LogInfo("Registration attempt for username: %s", req.Username)

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.LogError("Registration attempt failed - Invalid username: %s - %s", req.Username, msg)
		utils.BadRequest(c, "Invalid username", msg)
		return
	}

	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Registration attempt failed - Invalid email: %s - %s", req.Email, msg)
		utils.BadRequest(c, "Invalid email", msg)
		return
	}

	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.LogError("Registration attempt failed - Invalid password for username: %s - %s", req.Username, msg)
		utils.BadRequest(c, "Invalid password", msg)
		return
	}

	if req.Password != req.RepeatedPassword {
		utils.LogError("Registration attempt failed - Passwords do not match for username: %s", req.Username)
		utils.BadRequest(c, "Passwords do not match", "Password and repeated password must be the same.")
		return
	}

	role := req.Type
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleBusiness && role != models.RoleCustomer {
		utils.LogError("Registration attempt failed - Invalid role: %s", role)
		utils.BadRequest(c, "Invalid account type", "Type must be either 'business' or 'customer'.")
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("username = ? OR email = ?", req.Username, req.Email).Count(&count)
	if count > 0 {
		utils.LogError("Registration attempt failed - Username or email already taken: %s", req.Username)
		utils.Conflict(c, "Registration failed", "A user with this username or email already exists.")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password for username: %s - %v", req.Username, err)
		utils.InternalServerError(c, "Failed to process registration", nil)
		return
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hash,
		Role:        role,
		LastLoginAt: time.Now(),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user %s: %v", req.Username, err)
		// A concurrent registration may win the unique index race.
		utils.Conflict(c, "Registration failed", "A user with this username or email already exists.")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for new user %s: %v", req.Username, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("User registered successfully: %s (%s)", user.Username, user.Role)
	utils.Created(c, "Registration successful", gin.H{
		"token": token,
		"user": gin.H{
			"user_id":  user.ID,
			"username": user.Username,
			"email":    user.Email,
			"type":     user.Role,
		},
	})
}
