package models

import "time"

type NotificationModel struct {
	ID           uint   `gorm:"primaryKey"`
	ParlourID    uint   `gorm:"index"`
	Recipient    string `gorm:"size:255"`
	Subject      string `gorm:"size:200;not null"`
	Type         string `gorm:"size:40;not null;index"`
	RelatedID    *uint
	Status       string `gorm:"size:20;not null"`
	ErrorMessage string `gorm:"type:text"`
	CreatedAt    time.Time
}

func (NotificationModel) TableName() string {
	return "notifications"
}
