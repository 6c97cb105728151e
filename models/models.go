package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleBusiness = "business"
	RoleCustomer = "customer"
)

// User represents an account in the marketplace. The role decides which
// actions the account may perform: business users publish offers, customer
// users place orders and write reviews.
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	Role         string    `gorm:"not null;default:'customer'" json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	LastLoginAt  time.Time `json:"last_login_at"`

	Offers []Offer `json:"offers,omitempty" gorm:"foreignKey:OwnerID"`
}

// IsBusiness reports whether the user may publish offers.
func (u *User) IsBusiness() bool {
	return u.Role == RoleBusiness
}

// IsCustomer reports whether the user may place orders and write reviews.
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// Offer tier types
const (
	OfferTypeBasic    = "basic"
	OfferTypeStandard = "standard"
	OfferTypePremium  = "premium"
)

// Offer represents a service listed by a business user. It always carries at
// least one pricing tier; a full create requires the basic/standard/premium
// triple.
type Offer struct {
	gorm.Model
	OwnerID     uint          `json:"owner_id" gorm:"index;not null"`
	Owner       User          `json:"-" gorm:"foreignKey:OwnerID"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Details     []OfferDetail `json:"details" gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// MinPrice returns the lowest tier price, or nil when no tiers are loaded.
func (o *Offer) MinPrice() *float64 {
	if len(o.Details) == 0 {
		return nil
	}
	min := o.Details[0].Price
	for _, d := range o.Details[1:] {
		if d.Price < min {
			min = d.Price
		}
	}
	return &min
}

// MinDeliveryTime returns the shortest tier delivery time in days, or nil
// when no tiers are loaded.
func (o *Offer) MinDeliveryTime() *int {
	if len(o.Details) == 0 {
		return nil
	}
	min := o.Details[0].DeliveryTimeInDays
	for _, d := range o.Details[1:] {
		if d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}
	return &min
}

// OfferDetail is a single pricing tier of an offer.
type OfferDetail struct {
	gorm.Model
	OfferID            uint     `json:"offer_id" gorm:"index;not null"`
	Offer              Offer    `json:"-" gorm:"foreignKey:OfferID"`
	Title              string   `json:"title" gorm:"not null"`
	OfferType          string   `json:"offer_type" gorm:"not null"`
	Price              float64  `json:"price"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Revisions          int      `json:"revisions"`
	Features           []string `json:"features" gorm:"serializer:json"`
}

// ValidOfferType reports whether t is one of the known tier types.
func ValidOfferType(t string) bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	}
	return false
}

// Review is a customer's rating of a business user.
type Review struct {
	gorm.Model
	BusinessUserID uint   `json:"business_user_id" gorm:"index;not null"`
	BusinessUser   User   `json:"-" gorm:"foreignKey:BusinessUserID"`
	ReviewerID     uint   `json:"reviewer_id" gorm:"index;not null"`
	Reviewer       User   `json:"-" gorm:"foreignKey:ReviewerID"`
	Rating         int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Description    string `json:"description"`
}
