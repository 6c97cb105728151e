package controllers

import (
	"time"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser handles user login and returns an auth token
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid username or password", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error; err != nil {
		utils.LogError("Login attempt failed - User not found: %s", req.Username)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login attempt failed - Invalid password for user: %s", req.Username)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Username)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate JWT token for user: %s", req.Username)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User logged in successfully: %s", user.Username)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"user_id":  user.ID,
			"username": user.Username,
			"email":    user.Email,
			"type":     user.Role,
		},
	})
}
