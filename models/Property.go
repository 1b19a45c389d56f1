package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BedroomsStudio   = "STUDIO"
	BedroomsOne      = "ONE"
	BedroomsTwo      = "TWO"
	BedroomsThree    = "THREE"
	BedroomsFour     = "FOUR"
	BedroomsFourPlus = "FOUR_PLUS"
)

const (
	Furnished     = "FURNISHED"
	SemiFurnished = "SEMI_FURNISHED"
	Unfurnished   = "UNFURNISHED"
)

type Property struct {
	gorm.Model
	OwnerID           uint           `json:"ownerID" gorm:"not null;index"`
	Title             string         `json:"title" gorm:"size:100;not null"`
	Description       string         `json:"description" gorm:"type:text"`
	Area              string         `json:"area" gorm:"size:100;index"`
	Bedrooms          string         `json:"bedrooms" gorm:"type:varchar(12);index"`
	FurnishedStatus   string         `json:"furnishedStatus" gorm:"type:varchar(16)"`
	RentAmount        int            `json:"rentAmount" gorm:"index"`
	MaintenanceAmount int            `json:"maintenanceAmount"`
	Deposit           int            `json:"deposit"`
	Amenities         datatypes.JSON `json:"amenities" gorm:"type:jsonb"`
	HouseRules        datatypes.JSON `json:"houseRules" gorm:"type:jsonb"`
	Photos            datatypes.JSON `json:"photos" gorm:"type:jsonb"`
	AvailabilityDate  time.Time      `json:"availabilityDate"`
	IsActive          *bool          `json:"isActive" gorm:"default:true;index"`
	Owner             OwnerProfile   `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
}
