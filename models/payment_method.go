package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentTypeCash         = "cash"
	PaymentTypeBankTransfer = "bank_transfer"
	PaymentTypeCard         = "card"
	PaymentTypeEWallet      = "e_wallet"
)

// PaymentMethod is a way guests can settle a booking, as configured by the back office.
type PaymentMethod struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	Type          string    `gorm:"type:varchar(20);not null;default:'cash'" json:"type"`
	AccountName   string    `gorm:"type:varchar(150)" json:"account_name,omitempty"`
	AccountNumber string    `gorm:"type:varchar(100)" json:"account_number,omitempty"`
	Instructions  string    `gorm:"type:text" json:"instructions,omitempty"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
