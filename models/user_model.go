package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypeBusiness = "business"
	UserTypeCustomer = "customer"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"user"`
	Username string    `gorm:"size:150;not null;unique" json:"username"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Type     string    `gorm:"size:50;not null" json:"type"`

	FirstName    string `gorm:"size:150" json:"first_name"`
	LastName     string `gorm:"size:150" json:"last_name"`
	File         string `gorm:"size:255" json:"file"`
	Location     string `gorm:"size:100" json:"location"`
	Tel          string `gorm:"size:15" json:"tel"`
	Description  string `gorm:"type:text" json:"description"`
	WorkingHours string `gorm:"size:100" json:"working_hours"`

	IsStaff  bool `gorm:"default:false" json:"-"`
	IsActive bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
