package models

import (
	"gorm.io/gorm"
)

// OwnerProfile holds the landlord-facing profile. Properties belong to the
// profile, not the user row, so ownership checks resolve profile -> user.
type OwnerProfile struct {
	gorm.Model
	UserID             uint   `json:"userID" gorm:"uniqueIndex;not null"`
	BusinessName       string `json:"businessName" gorm:"size:120"`
	Bio                string `json:"bio" gorm:"size:500"`
	VerificationStatus string `json:"verificationStatus" gorm:"type:varchar(20);default:'PENDING'"`
	IsProfileComplete  bool   `json:"isProfileComplete" gorm:"default:false"`
	User               User   `json:"user" gorm:"foreignKey:UserID;references:ID"`
}
