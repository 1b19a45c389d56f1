package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SeekerProfile struct {
	gorm.Model
	UserID         uint           `json:"userID" gorm:"uniqueIndex;not null"`
	FirstName      string         `json:"firstName" gorm:"size:50"`
	LastName       string         `json:"lastName" gorm:"size:50"`
	MaxBudget      int            `json:"maxBudget"`
	PreferredAreas datatypes.JSON `json:"preferredAreas" gorm:"type:jsonb"`
	Bio            string         `json:"bio" gorm:"size:500"`
	User           User           `json:"user" gorm:"foreignKey:UserID;references:ID"`
}
