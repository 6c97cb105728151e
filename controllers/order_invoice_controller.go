package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/middleware"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"
)

// DownloadInvoice generates and returns a PDF invoice for a completed order
func DownloadInvoice(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	order, ok := loadPartyOrder(c, user.ID)
	if !ok {
		return
	}

	if order.Status != models.OrderStatusCompleted {
		utils.BadRequest(c, "Invoices are only available for completed orders", nil)
		return
	}

	var buyer, seller models.User
	if err := config.DB.First(&buyer, order.BuyerID).Error; err != nil {
		utils.LogError("Buyer not found for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}
	if err := config.DB.First(&seller, order.SellerID).Error; err != nil {
		utils.LogError("Seller not found for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Invoice")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Ln(8)
	pdf.Cell(40, 10, "Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(40, 10, "Seller: "+seller.Username)
	pdf.Ln(8)
	pdf.Cell(40, 10, "Buyer: "+buyer.Username)
	pdf.Ln(12)
	pdf.Cell(40, 10, "Service: "+order.Title+" ("+order.OfferType+")")
	pdf.Ln(8)
	pdf.Cell(40, 10, "Delivery time: "+strconv.Itoa(order.DeliveryTimeInDays)+" days")
	pdf.Ln(8)
	pdf.Cell(40, 10, "Revisions: "+strconv.Itoa(order.Revisions))
	pdf.Ln(8)
	pdf.Cell(40, 10, "Total: "+strconv.FormatFloat(order.Price, 'f', 2, 64))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render invoice for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=invoice.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
