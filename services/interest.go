package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/saroopcarr/DoorHinge/apperrors"
	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/storage"

	"gorm.io/gorm"
)

// InterestLedger records one-directional likes. A like is a fact that is
// written at most once per (user, property) and never updated; there is no
// unlike flow.
type InterestLedger struct {
	db      *gorm.DB
	cache   storage.Cache
	emitter *NotificationEmitter
}

func NewInterestLedger(db *gorm.DB, cache storage.Cache, emitter *NotificationEmitter) *InterestLedger {
	return &InterestLedger{db: db, cache: cache, emitter: emitter}
}

// RecordLike inserts the like and notifies the property's owner. A repeat
// call for the same pair is a Conflict, surfaced by the unique index rather
// than a racy pre-check. Inactive or missing properties are NotFound.
func (il *InterestLedger) RecordLike(ctx context.Context, userID, propertyID uint) (*models.Like, error) {
	var property models.Property
	err := il.db.WithContext(ctx).Preload("Owner").First(&property, propertyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("property not found")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch property", err)
	}
	if property.IsActive != nil && !*property.IsActive {
		return nil, apperrors.NotFound("property not found")
	}

	like := models.Like{UserID: userID, PropertyID: propertyID}
	err = il.db.WithContext(ctx).Create(&like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperrors.Conflict("already liked this property")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to record like", err)
	}

	// The cached property detail carries the like count.
	il.cache.Delete(ctx, storage.PropertyKey(property.ID))

	go il.emitter.Emit(
		property.Owner.UserID,
		models.NotificationNewLike,
		"Someone liked your property!",
		property.ID,
	)

	return &like, nil
}

// HasLiked is a pure existence check with no side effects.
func (il *InterestLedger) HasLiked(ctx context.Context, userID, propertyID uint) (bool, error) {
	var count int64
	err := il.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Unavailable(fmt.Sprintf("failed to check like for property %d", propertyID), err)
	}
	return count > 0, nil
}
