package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review holds a customer's rating of a business user. Uniqueness of the
// (business_user, reviewer) pair is checked in the handler before insert.
type Review struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessUserID uuid.UUID `gorm:"not null;index" json:"business_user"`
	ReviewerID     uuid.UUID `gorm:"not null;index" json:"reviewer"`
	Rating         int       `gorm:"not null" json:"rating"`
	Description    string    `gorm:"type:text" json:"description"`

	BusinessUser User `gorm:"foreignkey:BusinessUserID" json:"-"`
	Reviewer     User `gorm:"foreignkey:ReviewerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
