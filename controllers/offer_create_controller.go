package controllers

import (
	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/middleware"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OfferDetailRequest represents one tier in an offer create/update body
type OfferDetailRequest struct {
	Title              string   `json:"title" binding:"required"`
	OfferType          string   `json:"offer_type" binding:"required"`
	Price              float64  `json:"price" binding:"required,gt=0"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days" binding:"required,gt=0"`
	Revisions          int      `json:"revisions" binding:"min=0"`
	Features           []string `json:"features"`
}

// CreateOfferRequest represents the offer creation body
type CreateOfferRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	Image       string               `json:"image"`
	Details     []OfferDetailRequest `json:"details" binding:"required"`
}

// validateTierTriple checks that a full create carries exactly one tier of
// each type.
func validateTierTriple(details []OfferDetailRequest) (bool, string) {
	if len(details) != 3 {
		return false, "An offer must contain exactly 3 details (basic, standard, premium)."
	}
	seen := map[string]bool{}
	for _, d := range details {
		if !models.ValidOfferType(d.OfferType) {
			return false, "Offer type must be one of 'basic', 'standard', 'premium'."
		}
		if seen[d.OfferType] {
			return false, "Each offer type may appear only once."
		}
		seen[d.OfferType] = true
	}
	if !seen[models.OfferTypeBasic] || !seen[models.OfferTypeStandard] || !seen[models.OfferTypePremium] {
		return false, "The details must contain the types 'basic', 'standard' and 'premium'."
	}
	return true, ""
}

// CreateOffer handles offer creation by a business user
func CreateOffer(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Offer creation failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if valid, msg := validateTierTriple(req.Details); !valid {
		utils.LogError("Offer creation failed for user %d: %s", user.ID, msg)
		utils.BadRequest(c, "Invalid offer details", msg)
		return
	}

	offer := models.Offer{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.Image,
	}
	for _, d := range req.Details {
		offer.Details = append(offer.Details, models.OfferDetail{
			Title:              d.Title,
			OfferType:          d.OfferType,
			Price:              d.Price,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Revisions:          d.Revisions,
			Features:           d.Features,
		})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&offer).Error
	})
	if err != nil {
		utils.LogError("Failed to create offer for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create offer", nil)
		return
	}

	utils.LogInfo("Offer %d created by user %d", offer.ID, user.ID)
	utils.Created(c, "Offer created successfully", toOfferItem(offer, false))
}
