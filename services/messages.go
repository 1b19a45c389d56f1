package services

import (
	"context"
	"strings"
	"time"

	"github.com/saroopcarr/DoorHinge/apperrors"
	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/storage"

	"gorm.io/gorm"
)

const maxMessageLength = 5000

// MessageService appends to and reads match threads. Only the two match
// parties may touch a thread.
type MessageService struct {
	db      *gorm.DB
	cache   storage.Cache
	engine  *MatchEngine
	emitter *NotificationEmitter
}

func NewMessageService(db *gorm.DB, cache storage.Cache, engine *MatchEngine, emitter *NotificationEmitter) *MessageService {
	return &MessageService{db: db, cache: cache, engine: engine, emitter: emitter}
}

// Send appends a message, bumps the match's updated_at so it sorts to the
// top of both parties' match lists, and notifies the other party.
func (ms *MessageService) Send(ctx context.Context, senderID, matchID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.InvalidArg("message content is required")
	}
	if len(content) > maxMessageLength {
		return nil, apperrors.InvalidArg("message content too long")
	}

	match, err := ms.engine.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.OwnerID != senderID && match.SeekerID != senderID {
		return nil, apperrors.Forbidden("not part of this match")
	}

	message := models.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
	}
	if err := ms.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, apperrors.Unavailable("failed to create message", err)
	}

	err = ms.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ?", matchID).
		Update("updated_at", time.Now()).Error
	if err != nil {
		return nil, apperrors.Unavailable("failed to touch match", err)
	}

	recipientID := match.OwnerID
	if senderID == match.OwnerID {
		recipientID = match.SeekerID
	}
	go ms.emitter.Emit(recipientID, models.NotificationNewMessage, "You have a new message", matchID)

	ms.cache.DeletePrefix(ctx, storage.MatchListPrefix(match.OwnerID))
	ms.cache.DeletePrefix(ctx, storage.MatchListPrefix(match.SeekerID))

	return &message, nil
}

// List returns one page of the thread in chronological order and marks the
// other party's messages as read.
func (ms *MessageService) List(ctx context.Context, userID, matchID uint, page, pageSize int) ([]models.Message, int64, error) {
	match, err := ms.engine.GetMatch(ctx, matchID)
	if err != nil {
		return nil, 0, err
	}
	if match.OwnerID != userID && match.SeekerID != userID {
		return nil, 0, apperrors.Forbidden("not part of this match")
	}

	page, pageSize = ClampPage(page, pageSize, MessageDefaultPageSize, MessageMaxPageSize)

	q := ms.db.WithContext(ctx).Model(&models.Message{}).Where("match_id = ?", matchID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Unavailable("failed to count messages", err)
	}

	var messages []models.Message
	err = q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, 0, apperrors.Unavailable("failed to fetch messages", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	now := time.Now()
	err = ms.db.WithContext(ctx).Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND read = ?", matchID, userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now}).Error
	if err != nil {
		return nil, 0, apperrors.Unavailable("failed to mark messages read", err)
	}

	return messages, total, nil
}
