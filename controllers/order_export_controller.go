package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/middleware"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"
)

// ExportOrders downloads the seller's order ledger as an Excel sheet
func ExportOrders(c *gin.Context) {
	utils.LogInfo("ExportOrders called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Buyer").
		Where("seller_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	utils.LogDebug("Retrieved %d orders for export", len(orders))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(fmt.Sprintf("%s - Order Ledger for %s", utils.AppName, user.Username))
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04:05"))
	sheet.AddRow() // spacing

	headers := []string{"Order ID", "Buyer", "Tier", "Type", "Price", "Delivery (days)", "Status", "Created"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var totalRevenue float64
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetString(order.Buyer.Username)
		row.AddCell().SetString(order.Title)
		row.AddCell().SetString(order.OfferType)
		row.AddCell().SetFloat(order.Price)
		row.AddCell().SetInt(order.DeliveryTimeInDays)
		row.AddCell().SetString(order.Status)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02"))
		if order.Status == models.OrderStatusCompleted {
			totalRevenue += order.Price
		}
	}

	sheet.AddRow()
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Completed revenue")
	summaryRow.AddCell().SetFloat(totalRevenue)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
	}
}
