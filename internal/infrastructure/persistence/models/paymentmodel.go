package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentModel struct {
	ID            uint            `gorm:"primaryKey"`
	ApplicantID   uint            `gorm:"index;not null"`
	ParlourID     uint            `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"size:20;not null"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	Reference     string          `gorm:"size:64"`
	InvoicePath   string          `gorm:"size:500"`
	RecordedBy    uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
