package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Offer struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"not null;index" json:"user"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Image       string    `gorm:"size:255" json:"image"`
	Description string    `gorm:"type:text" json:"description"`

	Details []OfferDetail `gorm:"foreignkey:OfferID" json:"details,omitempty"`
	User    User          `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// MinPrice returns the lowest price across the loaded detail rows.
func (o *Offer) MinPrice() int {
	min := 0
	for i, d := range o.Details {
		if i == 0 || d.Price < min {
			min = d.Price
		}
	}
	return min
}

// MinDeliveryTime returns the shortest delivery time across the loaded detail rows.
func (o *Offer) MinDeliveryTime() int {
	min := 0
	for i, d := range o.Details {
		if i == 0 || d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}
	return min
}
