package models

import "time"

type ParlourModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;size:120;not null"`
	ContactPerson string `gorm:"size:120"`
	Email         string `gorm:"size:255"`
	PhoneNumber   string `gorm:"size:32"`
	Address       string `gorm:"size:500"`
	State         string `gorm:"size:20;not null;default:active;index"`
	Version       int    `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ParlourModel) TableName() string {
	return "parlours"
}
