package controllers

import (
	"strconv"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
)

func countOrdersForBusinessUser(c *gin.Context, status string, key string) {
	businessUserID, err := strconv.Atoi(c.Param("business_user_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid business user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, businessUserID).Error; err != nil {
		utils.LogError("Business user not found: %v", err)
		utils.NotFound(c, "Business user not found")
		return
	}
	if !user.IsBusiness() {
		utils.NotFound(c, "Business user not found")
		return
	}

	var count int64
	if err := config.DB.Model(&models.Order{}).
		Where("seller_id = ? AND status = ?", user.ID, status).
		Count(&count).Error; err != nil {
		utils.LogError("Failed to count orders for business user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to count orders", nil)
		return
	}

	utils.Success(c, "Order count retrieved successfully", gin.H{key: count})
}

// GetOrderCount returns the number of in-progress orders for a business user
func GetOrderCount(c *gin.Context) {
	countOrdersForBusinessUser(c, models.OrderStatusInProgress, "order_count")
}

// GetCompletedOrderCount returns the number of completed orders for a
// business user
func GetCompletedOrderCount(c *gin.Context) {
	countOrdersForBusinessUser(c, models.OrderStatusCompleted, "completed_order_count")
}
