package models

import "time"

type ApplicantModel struct {
	ID              uint   `gorm:"primaryKey"`
	UUID            string `gorm:"uniqueIndex;size:36;not null"`
	ParlourID       uint   `gorm:"index;not null"`
	PlanID          uint   `gorm:"index;not null"`
	ConsultantID    uint   `gorm:"index"`
	PolicyNum       string `gorm:"size:64;not null;index"`
	Status          string `gorm:"size:20;not null;default:unpaid"`
	State           string `gorm:"size:20;not null;default:active;index"`
	CertificatePath string `gorm:"size:500"`
	Version         int    `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ApplicantModel) TableName() string {
	return "applicants"
}

type MainMemberModel struct {
	ID                uint       `gorm:"primaryKey"`
	ApplicantID       uint       `gorm:"index;not null"`
	ParlourID         uint       `gorm:"index;not null"`
	FirstName         string     `gorm:"size:100;not null"`
	LastName          string     `gorm:"size:100;not null"`
	IDNumber          string     `gorm:"size:13;index"`
	DateOfBirth       *time.Time `gorm:"type:date"`
	Number            string     `gorm:"size:32"`
	DateJoined        time.Time  `gorm:"type:date"`
	AgeLimitExceeded  bool       `gorm:"not null;default:false"`
	AgeLimitException bool       `gorm:"not null;default:false"`
	IsDeceased        bool       `gorm:"not null;default:false"`
	State             string     `gorm:"size:20;not null;default:active;index"`
	Version           int        `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (MainMemberModel) TableName() string {
	return "main_members"
}

type ExtendedMemberModel struct {
	ID                   uint       `gorm:"primaryKey"`
	ApplicantID          uint       `gorm:"index;not null"`
	ParlourID            uint       `gorm:"index;not null"`
	FirstName            string     `gorm:"size:100;not null"`
	LastName             string     `gorm:"size:100;not null"`
	IDNumber             string     `gorm:"size:13;index"`
	DateOfBirth          *time.Time `gorm:"type:date"`
	Number               string     `gorm:"size:32"`
	Type                 string     `gorm:"size:40;not null"`
	RelationToMainMember string     `gorm:"size:40;not null"`
	DateJoined           time.Time  `gorm:"type:date"`
	AgeLimitExceeded     bool       `gorm:"not null;default:false"`
	AgeLimitException    bool       `gorm:"not null;default:false"`
	WaitingPeriod        int        `gorm:"not null;default:0"`
	IsMainMemberDeceased bool       `gorm:"not null;default:false"`
	State                string     `gorm:"size:20;not null;default:active;index"`
	Version              int        `gorm:"not null;default:1"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (ExtendedMemberModel) TableName() string {
	return "extended_members"
}
