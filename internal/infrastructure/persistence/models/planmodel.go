package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PlanModel stores per-member-type bounds as flat columns, one set per type.
type PlanModel struct {
	ID                uint            `gorm:"primaryKey"`
	ParlourID         uint            `gorm:"index;not null"`
	Name              string          `gorm:"size:100;not null"`
	Premium           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WaitingPeriodDays int             `gorm:"not null;default:0"`
	Benefits          datatypes.JSON
	State             string `gorm:"size:20;not null;default:active"`

	MemberMinimumAge *int
	MemberMaximumAge *int

	SpouseMinimumAge *int
	SpouseMaximumAge *int
	SpouseQuota      int `gorm:"not null;default:0"`

	DependantMinimumAge *int
	DependantMaximumAge *int
	DependantQuota      int `gorm:"not null;default:0"`

	ExtendedMinimumAge *int
	ExtendedMaximumAge *int
	ExtendedQuota      int `gorm:"not null;default:0"`

	AdditionalExtendedMinimumAge *int
	AdditionalExtendedMaximumAge *int
	AdditionalExtendedQuota      int `gorm:"not null;default:0"`

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PlanModel) TableName() string {
	return "plans"
}
