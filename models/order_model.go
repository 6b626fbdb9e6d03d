package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is a snapshot of one OfferDetail taken at purchase time. The copied
// columns stay frozen even when the business user later edits the offer.
type Order struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerUserID uuid.UUID `gorm:"not null;index" json:"customer_user"`
	BusinessUserID uuid.UUID `gorm:"not null;index" json:"business_user"`

	Title              string      `gorm:"size:255;not null" json:"title"`
	Revisions          int         `gorm:"not null" json:"revisions"`
	DeliveryTimeInDays int         `gorm:"not null" json:"delivery_time_in_days"`
	Price              int         `gorm:"not null" json:"price"`
	Features           FeatureList `gorm:"type:text" json:"features"`
	OfferType          string      `gorm:"size:20;not null" json:"offer_type"`

	Status string `gorm:"size:50;not null;default:'in_progress'" json:"status"`

	CustomerUser User `gorm:"foreignkey:CustomerUserID" json:"-"`
	BusinessUser User `gorm:"foreignkey:BusinessUserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
