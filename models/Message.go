package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	MatchID  uint       `json:"matchID" gorm:"not null;index"`
	SenderID uint       `json:"senderID" gorm:"not null;index"`
	Content  string     `json:"content" gorm:"type:text;not null"`
	Read     bool       `json:"read" gorm:"default:false"`
	ReadAt   *time.Time `json:"readAt"`
}
