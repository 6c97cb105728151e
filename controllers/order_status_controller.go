package controllers

import (
	"strconv"
	"time"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/middleware"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest represents the status update body
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through its lifecycle. Forward moves are
// seller-only; cancelling is open to both parties while the order is active.
func UpdateOrderStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.LogError("Invalid status in request: %v", err)
		utils.BadRequest(c, "Status is required", nil)
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.LogError("Invalid status requested: %s", req.Status)
		utils.BadRequest(c, "Invalid status", gin.H{
			"valid_statuses": []string{
				models.OrderStatusPending,
				models.OrderStatusInProgress,
				models.OrderStatusCompleted,
				models.OrderStatusCancelled,
			},
		})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Order not found: %v", err)
		utils.NotFound(c, "Order not found")
		return
	}

	if !order.IsParty(user.ID) {
		tx.Rollback()
		utils.LogError("User %d attempted to update order %d without being a party", user.ID, order.ID)
		utils.Forbidden(c, "You are not a party to this order")
		return
	}

	if !models.CanTransitionOrder(order.Status, req.Status) {
		tx.Rollback()
		utils.LogError("Invalid transition %s -> %s on order %d", order.Status, req.Status, order.ID)
		utils.BadRequest(c, "Invalid status transition", gin.H{
			"current_status":   order.Status,
			"requested_status": req.Status,
		})
		return
	}

	// Cancelling is open to buyer and seller; every forward move belongs to
	// the seller.
	if req.Status != models.OrderStatusCancelled && user.ID != order.SellerID {
		tx.Rollback()
		utils.LogError("User %d attempted seller-only transition on order %d", user.ID, order.ID)
		utils.Forbidden(c, "Only the seller may advance this order")
		return
	}

	order.Status = req.Status
	order.UpdatedAt = time.Now()

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order status: %v", err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit status update: %v", err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}

	// Notify the counterparty about the change.
	counterpartyID := order.BuyerID
	if user.ID == order.BuyerID {
		counterpartyID = order.SellerID
	}
	var counterparty models.User
	if err := config.DB.First(&counterparty, counterpartyID).Error; err == nil {
		go utils.NotifyOrderUpdate(counterparty.Email, order.Title, order.Status)
	}

	utils.LogInfo("Order %d moved to %s by user %d", order.ID, order.Status, user.ID)
	utils.Success(c, "Order status updated successfully", orderResponse(order))
}
