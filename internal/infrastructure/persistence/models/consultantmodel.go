package models

import "time"

type ConsultantModel struct {
	ID           uint   `gorm:"primaryKey"`
	ParlourID    uint   `gorm:"index"`
	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;default:consultant"`
	State        string `gorm:"size:20;not null;default:active"`
	LastLoginAt  *time.Time
	Version      int `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ConsultantModel) TableName() string {
	return "consultants"
}
