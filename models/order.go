package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// orderTransitions maps each status to the statuses reachable from it.
// Completed and cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionOrder reports whether an order may move from one status to
// another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether no further transition is allowed.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order records a customer's purchase of one offer tier. Tier title, price,
// delivery time and type are snapshotted at creation so later edits to the
// offer do not rewrite history.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	BuyerID       uint        `json:"buyer_id" gorm:"index;not null"`
	Buyer         User        `json:"-" gorm:"foreignKey:BuyerID"`
	SellerID      uint        `json:"seller_id" gorm:"index;not null"`
	Seller        User        `json:"-" gorm:"foreignKey:SellerID"`
	OfferDetailID uint        `json:"offer_detail_id" gorm:"index;not null"`
	OfferDetail   OfferDetail `json:"-" gorm:"foreignKey:OfferDetailID"`

	Title              string  `json:"title"`
	OfferType          string  `json:"offer_type"`
	Price              float64 `json:"price"`
	DeliveryTimeInDays int     `json:"delivery_time_in_days"`
	Revisions          int     `json:"revisions"`

	Status    string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsParty reports whether the user is the buyer or the seller of the order.
func (o *Order) IsParty(userID uint) bool {
	return o.BuyerID == userID || o.SellerID == userID
}
