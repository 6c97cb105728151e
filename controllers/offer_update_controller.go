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

// UpdateOfferRequest represents a partial or full offer update
type UpdateOfferRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Image       *string              `json:"image"`
	Details     []OfferDetailRequest `json:"details"`
}

// loadOwnedOffer fetches an offer and enforces the owner-only rule. It writes
// the error response itself and returns false when the caller must stop.
func loadOwnedOffer(c *gin.Context, ownerID uint) (*models.Offer, bool) {
	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid offer ID", nil)
		return nil, false
	}

	var offer models.Offer
	if err := config.DB.Preload("Details").First(&offer, offerID).Error; err != nil {
		utils.LogError("Offer not found: %v", err)
		utils.NotFound(c, "Offer not found")
		return nil, false
	}

	if offer.OwnerID != ownerID {
		utils.LogError("User %d attempted to modify offer %d owned by %d", ownerID, offer.ID, offer.OwnerID)
		utils.Forbidden(c, "You do not own this offer")
		return nil, false
	}

	return &offer, true
}

// UpdateOffer handles PUT and PATCH on an offer. Tiers are upserted by
// offer type, mirroring the create-side triple rule only on full updates.
func UpdateOffer(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	offer, ok := loadOwnedOffer(c, user.ID)
	if !ok {
		return
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Offer update failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	fullUpdate := c.Request.Method == "PUT"
	if fullUpdate {
		if req.Title == nil || req.Details == nil {
			utils.BadRequest(c, "Invalid request format", "A full update requires title and details.")
			return
		}
		if valid, msg := validateTierTriple(req.Details); !valid {
			utils.BadRequest(c, "Invalid offer details", msg)
			return
		}
	}

	for _, d := range req.Details {
		if !models.ValidOfferType(d.OfferType) {
			utils.BadRequest(c, "Invalid offer details", "Offer type must be one of 'basic', 'standard', 'premium'.")
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.Title != nil {
			offer.Title = *req.Title
		}
		if req.Description != nil {
			offer.Description = *req.Description
		}
		if req.Image != nil {
			offer.ImageURL = *req.Image
		}
		if err := tx.Save(offer).Error; err != nil {
			return err
		}

		if req.Details == nil {
			return nil
		}

		existing := make(map[string]*models.OfferDetail, len(offer.Details))
		for i := range offer.Details {
			existing[offer.Details[i].OfferType] = &offer.Details[i]
		}

		for _, d := range req.Details {
			if detail, found := existing[d.OfferType]; found {
				detail.Title = d.Title
				detail.Price = d.Price
				detail.DeliveryTimeInDays = d.DeliveryTimeInDays
				detail.Revisions = d.Revisions
				if d.Features != nil {
					detail.Features = d.Features
				}
				if err := tx.Save(detail).Error; err != nil {
					return err
				}
			} else {
				detail := models.OfferDetail{
					OfferID:            offer.ID,
					Title:              d.Title,
					OfferType:          d.OfferType,
					Price:              d.Price,
					DeliveryTimeInDays: d.DeliveryTimeInDays,
					Revisions:          d.Revisions,
					Features:           d.Features,
				}
				if err := tx.Create(&detail).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to update offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to update offer", nil)
		return
	}

	// Reload so the response reflects the committed tiers.
	var updated models.Offer
	if err := config.DB.Preload("Details").First(&updated, offer.ID).Error; err != nil {
		utils.LogError("Failed to reload offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to update offer", nil)
		return
	}

	utils.LogInfo("Offer %d updated by user %d", offer.ID, user.ID)
	utils.Success(c, "Offer updated successfully", toOfferItem(updated, false))
}

// DeleteOffer handles owner-only offer deletion, cascading the tiers
func DeleteOffer(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	offer, ok := loadOwnedOffer(c, user.ID)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", offer.ID).Delete(&models.OfferDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(offer).Error
	})
	if err != nil {
		utils.LogError("Failed to delete offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to delete offer", nil)
		return
	}

	utils.LogInfo("Offer %d deleted by user %d", offer.ID, user.ID)
	utils.Success(c, "Offer deleted successfully", nil)
}
