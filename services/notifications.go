package services

import (
	"context"
	"errors"
	"log"

	"github.com/saroopcarr/DoorHinge/apperrors"
	"github.com/saroopcarr/DoorHinge/models"

	"gorm.io/gorm"
)

// NotificationEmitter writes advisory notification rows for like, match and
// message events. Emission is best-effort, at-most-once: failures are logged
// and swallowed so the triggering write is never rolled back or blocked.
type NotificationEmitter struct {
	db *gorm.DB
}

func NewNotificationEmitter(db *gorm.DB) *NotificationEmitter {
	return &NotificationEmitter{db: db}
}

// Emit is safe to call from a detached goroutine; it deliberately takes no
// context so a finished request cannot cancel the insert mid-flight.
func (ne *NotificationEmitter) Emit(recipientID uint, kind, message string, relatedID uint) {
	notification := models.Notification{
		UserID:    recipientID,
		Kind:      kind,
		Message:   message,
		RelatedID: relatedID,
	}
	if err := ne.db.Create(&notification).Error; err != nil {
		log.Printf("notification emit failed (user %d, kind %s): %v", recipientID, kind, err)
	}
}

func (ne *NotificationEmitter) List(ctx context.Context, userID uint, page, pageSize int) ([]models.Notification, int64, error) {
	page, pageSize = ClampPage(page, pageSize, NotificationDefaultPageSize, NotificationMaxPageSize)

	q := ne.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Unavailable("failed to count notifications", err)
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, apperrors.Unavailable("failed to fetch notifications", err)
	}
	return notifications, total, nil
}

// MarkRead flips the read flag, the only mutation notifications ever see.
func (ne *NotificationEmitter) MarkRead(ctx context.Context, userID, notificationID uint) error {
	var notification models.Notification
	err := ne.db.WithContext(ctx).First(&notification, notificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("notification not found")
	}
	if err != nil {
		return apperrors.Unavailable("failed to fetch notification", err)
	}
	if notification.UserID != userID {
		return apperrors.Forbidden("not your notification")
	}
	err = ne.db.WithContext(ctx).Model(&notification).Update("read", true).Error
	if err != nil {
		return apperrors.Unavailable("failed to update notification", err)
	}
	return nil
}
