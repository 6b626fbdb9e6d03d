package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OfferTypeBasic    = "basic"
	OfferTypeStandard = "standard"
	OfferTypePremium  = "premium"
)

// FeatureList is a JSON-encoded list of feature strings stored in a text column.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		f = FeatureList{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = FeatureList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return errors.New("unsupported type for FeatureList")
	}
}

type OfferDetail struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OfferID            uuid.UUID   `gorm:"not null;index" json:"-"`
	Title              string      `gorm:"size:200;not null" json:"title"`
	Revisions          int         `gorm:"not null;default:0" json:"revisions"`
	DeliveryTimeInDays int         `gorm:"not null" json:"delivery_time_in_days"`
	Price              int         `gorm:"not null" json:"price"`
	Features           FeatureList `gorm:"type:text" json:"features"`
	OfferType          string      `gorm:"size:20;not null" json:"offer_type"`
}

func (d *OfferDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
