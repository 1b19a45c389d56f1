package models

import (
	"gorm.io/gorm"
)

const (
	RoleOwner  = "OWNER"
	RoleSeeker = "SEEKER"
)

// User is the authenticated identity referenced by likes, matches and
// messages. Credential and session lifecycle live outside this service;
// rows here exist as reference targets only.
type User struct {
	gorm.Model
	Email           string `json:"email" gorm:"uniqueIndex;size:128;not null"`
	Phone           string `json:"phone" gorm:"size:20"`
	Role            string `json:"role" gorm:"type:varchar(10);not null;index"`
	IsVerified      bool   `json:"isVerified" gorm:"default:false"`
	IsPhoneVerified bool   `json:"isPhoneVerified" gorm:"default:false"`
}
