package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saroopcarr/DoorHinge/apperrors"
	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/storage"

	"gorm.io/gorm"
)

const matchListTTL = 60 * time.Second

// MatchEngine owns the (property, seeker) state machine:
// no interest -> seeker liked -> matched, where matched is terminal.
// Match creation is always the owner's explicit act; a seeker's like never
// creates a match on its own.
type MatchEngine struct {
	db      *gorm.DB
	cache   storage.Cache
	emitter *NotificationEmitter
}

func NewMatchEngine(db *gorm.DB, cache storage.Cache, emitter *NotificationEmitter) *MatchEngine {
	return &MatchEngine{db: db, cache: cache, emitter: emitter}
}

// MatchPage is the cached shape of a match listing.
type MatchPage struct {
	Matches []models.Match `json:"matches"`
	Total   int64          `json:"total"`
}

// CreateMatch performs the owner's like-back transition. Ordering inside the
// request: property resolution, ownership check, reciprocity check, insert.
// The reciprocity check guarantees a match never exists without the seeker's
// like; the unique index on (property, seeker) closes the double-match race
// under concurrent owner actions.
func (me *MatchEngine) CreateMatch(ctx context.Context, actingOwnerID, propertyID, seekerID uint) (*models.Match, error) {
	var property models.Property
	err := me.db.WithContext(ctx).Preload("Owner").First(&property, propertyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("property not found")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch property", err)
	}

	if property.Owner.UserID != actingOwnerID {
		return nil, apperrors.Forbidden("you do not own this property")
	}

	var likes int64
	err = me.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND property_id = ?", seekerID, propertyID).
		Count(&likes).Error
	if err != nil {
		return nil, apperrors.Unavailable("failed to check seeker interest", err)
	}
	if likes == 0 {
		return nil, apperrors.NotFound("this seeker has not liked your property")
	}

	match := models.Match{
		PropertyID: propertyID,
		SeekerID:   seekerID,
		OwnerID:    actingOwnerID,
		Status:     models.MatchStatusActive,
	}
	err = me.db.WithContext(ctx).Create(&match).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperrors.Conflict("match already exists")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to create match", err)
	}

	go me.emitter.Emit(
		seekerID,
		models.NotificationNewMatch,
		fmt.Sprintf("You matched with a property in %s!", property.Area),
		match.ID,
	)
	me.invalidateMatchLists(ctx, actingOwnerID, seekerID)

	return &match, nil
}

// ListMatches returns the user's active matches, most recently updated
// first, each with its latest message attached for thread previews. The
// page is served read-through from the cache.
func (me *MatchEngine) ListMatches(ctx context.Context, userID uint, page, pageSize int) ([]models.Match, int64, error) {
	page, pageSize = ClampPage(page, pageSize, MatchDefaultPageSize, MatchMaxPageSize)

	key := storage.MatchListKey(userID, page, pageSize)
	result, err := storage.Cached(ctx, me.cache, key, matchListTTL, func() (MatchPage, error) {
		return me.listMatches(ctx, userID, page, pageSize)
	})
	if err != nil {
		return nil, 0, err
	}
	return result.Matches, result.Total, nil
}

func (me *MatchEngine) listMatches(ctx context.Context, userID uint, page, pageSize int) (MatchPage, error) {
	q := me.db.WithContext(ctx).Model(&models.Match{}).
		Where("(owner_id = ? OR seeker_id = ?) AND status = ?", userID, userID, models.MatchStatusActive)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return MatchPage{}, apperrors.Unavailable("failed to count matches", err)
	}

	var matches []models.Match
	err := q.Preload("Property").
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&matches).Error
	if err != nil {
		return MatchPage{}, apperrors.Unavailable("failed to fetch matches", err)
	}

	for i := range matches {
		var last models.Message
		err := me.db.WithContext(ctx).
			Where("match_id = ?", matches[i].ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			matches[i].LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return MatchPage{}, apperrors.Unavailable("failed to fetch message preview", err)
		}
	}

	return MatchPage{Matches: matches, Total: total}, nil
}

// GetMatch looks up a match by id without access checks; callers enforce
// party membership.
func (me *MatchEngine) GetMatch(ctx context.Context, matchID uint) (*models.Match, error) {
	var match models.Match
	err := me.db.WithContext(ctx).First(&match, matchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("match not found")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch match", err)
	}
	return &match, nil
}

func (me *MatchEngine) invalidateMatchLists(ctx context.Context, userIDs ...uint) {
	for _, id := range userIDs {
		me.cache.DeletePrefix(ctx, storage.MatchListPrefix(id))
	}
}
