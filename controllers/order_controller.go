package controllers

import (
	"strconv"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/middleware"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateOrderRequest represents the order creation body
type CreateOrderRequest struct {
	OfferDetailID uint `json:"offer_detail_id" binding:"required"`
}

// orderResponse shapes an order for the wire
func orderResponse(order models.Order) gin.H {
	return gin.H{
		"id":                    order.ID,
		"buyer_id":              order.BuyerID,
		"seller_id":             order.SellerID,
		"offer_detail_id":       order.OfferDetailID,
		"title":                 order.Title,
		"offer_type":            order.OfferType,
		"price":                 order.Price,
		"delivery_time_in_days": order.DeliveryTimeInDays,
		"revisions":             order.Revisions,
		"status":                order.Status,
		"created_at":            order.CreatedAt,
		"updated_at":            order.UpdatedAt,
	}
}

// CreateOrder handles order placement by a customer. Tier fields are
// snapshotted so later offer edits do not change the order.
func CreateOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Order creation failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "offer_detail_id is required")
		return
	}

	var detail models.OfferDetail
	if err := config.DB.Preload("Offer").First(&detail, req.OfferDetailID).Error; err != nil {
		utils.LogError("Offer detail not found: %v", err)
		utils.NotFound(c, "Offer detail not found")
		return
	}

	order := models.Order{
		BuyerID:            user.ID,
		SellerID:           detail.Offer.OwnerID,
		OfferDetailID:      detail.ID,
		Title:              detail.Title,
		OfferType:          detail.OfferType,
		Price:              detail.Price,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Revisions:          detail.Revisions,
		Status:             models.OrderStatusPending,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		utils.LogError("Failed to create order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	var seller models.User
	if err := config.DB.First(&seller, order.SellerID).Error; err == nil {
		go utils.NotifyOrderUpdate(seller.Email, order.Title, order.Status)
	}

	utils.LogInfo("Order %d created by user %d for detail %d", order.ID, user.ID, detail.ID)
	utils.Created(c, "Order created successfully", orderResponse(order))
}

// ListOrders returns the orders the current user is party to, buyer or seller
func ListOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{}).Where("buyer_id = ? OR seller_id = ?", user.ID, user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Order("created_at DESC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderResponse(o))
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", items, total, pagination.Page, pagination.Limit)
}

// loadPartyOrder fetches an order and checks the requester is buyer or
// seller. It writes the error response itself and returns false on failure.
func loadPartyOrder(c *gin.Context, userID uint) (*models.Order, bool) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return nil, false
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found: %v", err)
		utils.NotFound(c, "Order not found")
		return nil, false
	}

	if !order.IsParty(userID) {
		utils.LogError("User %d attempted to access order %d without being a party", userID, order.ID)
		utils.Forbidden(c, "You are not a party to this order")
		return nil, false
	}

	return &order, true
}

// GetOrder returns a single order to its buyer or seller
func GetOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	order, ok := loadPartyOrder(c, user.ID)
	if !ok {
		return
	}

	utils.Success(c, "Order retrieved successfully", orderResponse(*order))
}

// DeleteOrder removes a terminal order. Cleanup is restricted to the order's
// parties and to completed or cancelled orders.
func DeleteOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	order, ok := loadPartyOrder(c, user.ID)
	if !ok {
		return
	}

	if !models.IsTerminalOrderStatus(order.Status) {
		utils.LogError("User %d attempted to delete active order %d (%s)", user.ID, order.ID, order.Status)
		utils.BadRequest(c, "Only completed or cancelled orders can be deleted", nil)
		return
	}

	if err := config.DB.Delete(order).Error; err != nil {
		utils.LogError("Failed to delete order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}

	utils.LogInfo("Order %d deleted by user %d", order.ID, user.ID)
	utils.Success(c, "Order deleted successfully", nil)
}
