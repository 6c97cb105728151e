package controllers

import (
	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/middleware"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's own profile
func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"user_id":       user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"type":          user.Role,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"phone":         user.Phone,
		"location":      user.Location,
		"description":   user.Description,
		"working_hours": user.WorkingHours,
		"created_at":    user.CreatedAt,
	})
}

// UpdateProfileRequest carries the editable profile fields. Role and
// credentials are not updatable here.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

// UpdateProfile updates the optional profile fields of the current user
func UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Profile update failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Description != nil {
		user.Description = *req.Description
	}
	if req.WorkingHours != nil {
		user.WorkingHours = *req.WorkingHours
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update profile for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}

	utils.LogInfo("Profile updated for user %d", user.ID)
	utils.Success(c, "Profile updated successfully", gin.H{
		"user_id":       user.ID,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"phone":         user.Phone,
		"location":      user.Location,
		"description":   user.Description,
		"working_hours": user.WorkingHours,
	})
}
