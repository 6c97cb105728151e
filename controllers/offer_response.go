package controllers

import (
	"time"

	"github.com/mfranzen/GigSphere/models"

	"github.com/gin-gonic/gin"
)

// OfferDetailItem is the wire form of a single tier
type OfferDetailItem struct {
	ID                 uint     `json:"id"`
	Title              string   `json:"title"`
	OfferType          string   `json:"offer_type"`
	Price              float64  `json:"price"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Revisions          int      `json:"revisions"`
	Features           []string `json:"features"`
}

// OfferItem is the wire form of an offer with its tiers and the derived
// minimum price and delivery time
type OfferItem struct {
	ID              uint              `json:"id"`
	User            uint              `json:"user"`
	Title           string            `json:"title"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailItem `json:"details"`
	MinPrice        *float64          `json:"min_price"`
	MinDeliveryTime *int              `json:"min_delivery_time"`
	UserDetails     gin.H             `json:"user_details,omitempty"`
}

func toOfferDetailItem(d models.OfferDetail) OfferDetailItem {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	return OfferDetailItem{
		ID:                 d.ID,
		Title:              d.Title,
		OfferType:          d.OfferType,
		Price:              d.Price,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Revisions:          d.Revisions,
		Features:           features,
	}
}

func toOfferItem(offer models.Offer, withOwner bool) OfferItem {
	details := make([]OfferDetailItem, 0, len(offer.Details))
	for _, d := range offer.Details {
		details = append(details, toOfferDetailItem(d))
	}

	item := OfferItem{
		ID:              offer.ID,
		User:            offer.OwnerID,
		Title:           offer.Title,
		Image:           offer.ImageURL,
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         details,
		MinPrice:        offer.MinPrice(),
		MinDeliveryTime: offer.MinDeliveryTime(),
	}

	if withOwner && offer.Owner.ID != 0 {
		item.UserDetails = gin.H{
			"first_name": offer.Owner.FirstName,
			"last_name":  offer.Owner.LastName,
			"username":   offer.Owner.Username,
		}
	}

	return item
}
