package controllers

import (
	"strconv"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
)

// GetOffer returns a single offer with its tiers and derived fields
func GetOffer(c *gin.Context) {
	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid offer ID", nil)
		return
	}

	var offer models.Offer
	if err := config.DB.Preload("Details").Preload("Owner").First(&offer, offerID).Error; err != nil {
		utils.LogError("Offer not found: %v", err)
		utils.NotFound(c, "Offer not found")
		return
	}

	utils.Success(c, "Offer retrieved successfully", toOfferItem(offer, true))
}

// ListOfferDetails returns all tiers, paginated
func ListOfferDetails(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.OfferDetail{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count offer details: %v", err)
		utils.InternalServerError(c, "Failed to fetch offer details", nil)
		return
	}
	pagination.SetTotal(total)

	var details []models.OfferDetail
	if err := config.DB.Order("id ASC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&details).Error; err != nil {
		utils.LogError("Failed to fetch offer details: %v", err)
		utils.InternalServerError(c, "Failed to fetch offer details", nil)
		return
	}

	items := make([]OfferDetailItem, 0, len(details))
	for _, d := range details {
		items = append(items, toOfferDetailItem(d))
	}

	utils.SuccessWithPagination(c, "Offer details retrieved successfully", items, total, pagination.Page, pagination.Limit)
}

// GetOfferDetail returns a single tier by id
func GetOfferDetail(c *gin.Context) {
	detailID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid offer detail ID", nil)
		return
	}

	var detail models.OfferDetail
	if err := config.DB.First(&detail, detailID).Error; err != nil {
		utils.LogError("Offer detail not found: %v", err)
		utils.NotFound(c, "Offer detail not found")
		return
	}

	utils.Success(c, "Offer detail retrieved successfully", toOfferDetailItem(detail))
}
