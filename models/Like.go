package models

import (
	"gorm.io/gorm"
)

// Like records a seeker's one-directional interest in a property. The
// composite unique index is the source of truth for "at most one like per
// (user, property)"; concurrent duplicates lose at the insert, not at an
// application-level pre-check.
type Like struct {
	gorm.Model
	UserID     uint     `json:"userID" gorm:"not null;uniqueIndex:idx_like_user_property,priority:1"`
	PropertyID uint     `json:"propertyID" gorm:"not null;uniqueIndex:idx_like_user_property,priority:2"`
	User       User     `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Property   Property `json:"-" gorm:"foreignKey:PropertyID;references:ID"`
}
