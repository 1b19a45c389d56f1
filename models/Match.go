package models

import (
	"gorm.io/gorm"
)

const MatchStatusActive = "ACTIVE"

// Match is confirmed mutual interest between a property's owner and a
// seeker. One match per (property, seeker), enforced by the composite
// unique index. Owner and seeker are user ids, not profile ids.
type Match struct {
	gorm.Model
	PropertyID uint     `json:"propertyID" gorm:"not null;uniqueIndex:idx_match_property_seeker,priority:1"`
	SeekerID   uint     `json:"seekerID" gorm:"not null;uniqueIndex:idx_match_property_seeker,priority:2"`
	OwnerID    uint     `json:"ownerID" gorm:"not null;index"`
	Status     string   `json:"status" gorm:"type:varchar(12);default:'ACTIVE';index"`
	Property   Property `json:"property" gorm:"foreignKey:PropertyID;references:ID"`

	// Most recent message, attached by the match engine for list previews.
	LastMessage *Message `json:"lastMessage,omitempty" gorm:"-"`
}
