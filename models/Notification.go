package models

import (
	"gorm.io/gorm"
)

const (
	NotificationNewLike    = "NEW_LIKE"
	NotificationNewMatch   = "NEW_MATCH"
	NotificationNewMessage = "NEW_MESSAGE"
)

// Notification is an advisory record produced as a side effect of like,
// match and message events. Losing one never blocks the triggering write.
// The only mutation ever applied is the read flip.
type Notification struct {
	gorm.Model
	UserID    uint   `json:"userID" gorm:"not null;index"`
	Kind      string `json:"kind" gorm:"type:varchar(20);not null"`
	Message   string `json:"message" gorm:"size:255"`
	RelatedID uint   `json:"relatedID"`
	Read      bool   `json:"read" gorm:"default:false"`
}
