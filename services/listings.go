package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/saroopcarr/DoorHinge/apperrors"
	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/storage"

	"gorm.io/gorm"
)

const listingTTL = 300 * time.Second

// ListingService serves the filtered, paginated property feed behind the
// cache layer, and owns every property mutation so no write path can skip
// the invalidation step.
type ListingService struct {
	db    *gorm.DB
	cache storage.Cache
}

func NewListingService(db *gorm.DB, cache storage.Cache) *ListingService {
	return &ListingService{db: db, cache: cache}
}

// PropertyFilters are independently optional; zero values mean "no filter".
type PropertyFilters struct {
	Area      string
	MaxBudget int
	Bedrooms  string
}

// PropertyPage is the cached shape of one listing page.
type PropertyPage struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
}

// PropertyDetail decorates a property with its like count.
type PropertyDetail struct {
	models.Property
	LikeCount int64 `json:"likeCount"`
}

// List returns one page of active properties, newest first, read-through
// cached for listingTTL. The database query only runs on a cache miss.
func (ls *ListingService) List(ctx context.Context, filters PropertyFilters, page, pageSize int) ([]models.Property, int64, error) {
	page, pageSize = ClampPage(page, pageSize, ListingDefaultPageSize, ListingMaxPageSize)

	key := storage.PropertyListKey(filters.Area, filters.Bedrooms, filters.MaxBudget, page, pageSize)
	result, err := storage.Cached(ctx, ls.cache, key, listingTTL, func() (PropertyPage, error) {
		return ls.list(ctx, filters, page, pageSize)
	})
	if err != nil {
		return nil, 0, err
	}
	return result.Properties, result.Total, nil
}

func (ls *ListingService) list(ctx context.Context, filters PropertyFilters, page, pageSize int) (PropertyPage, error) {
	q := ls.db.WithContext(ctx).Model(&models.Property{}).Where("is_active = ?", true)

	if filters.Area != "" {
		q = q.Where("lower(area) LIKE ?", "%"+strings.ToLower(filters.Area)+"%")
	}
	if filters.MaxBudget > 0 {
		q = q.Where("rent_amount <= ?", filters.MaxBudget)
	}
	if filters.Bedrooms != "" {
		q = q.Where("bedrooms = ?", filters.Bedrooms)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return PropertyPage{}, apperrors.Unavailable("failed to count properties", err)
	}

	var properties []models.Property
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&properties).Error
	if err != nil {
		return PropertyPage{}, apperrors.Unavailable("failed to fetch properties", err)
	}

	return PropertyPage{Properties: properties, Total: total}, nil
}

// Get serves a single property read-through cached under its entity key.
func (ls *ListingService) Get(ctx context.Context, id uint) (*PropertyDetail, error) {
	detail, err := storage.Cached(ctx, ls.cache, storage.PropertyKey(id), listingTTL, func() (PropertyDetail, error) {
		var property models.Property
		err := ls.db.WithContext(ctx).Preload("Owner").First(&property, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PropertyDetail{}, apperrors.NotFound("property not found")
		}
		if err != nil {
			return PropertyDetail{}, apperrors.Unavailable("failed to fetch property", err)
		}

		var likeCount int64
		err = ls.db.WithContext(ctx).Model(&models.Like{}).
			Where("property_id = ?", id).
			Count(&likeCount).Error
		if err != nil {
			return PropertyDetail{}, apperrors.Unavailable("failed to count likes", err)
		}

		return PropertyDetail{Property: property, LikeCount: likeCount}, nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a property for the acting owner's profile and invalidates
// cached listings so the new property shows up on the next read.
func (ls *ListingService) Create(ctx context.Context, ownerUserID uint, property *models.Property) error {
	var profile models.OwnerProfile
	err := ls.db.WithContext(ctx).Where("user_id = ?", ownerUserID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("owner profile not found, complete your profile first")
	}
	if err != nil {
		return apperrors.Unavailable("failed to fetch owner profile", err)
	}

	property.OwnerID = profile.ID
	if err := ls.db.WithContext(ctx).Create(property).Error; err != nil {
		return apperrors.Unavailable("failed to create property", err)
	}

	ls.invalidate(ctx, property.ID)
	return nil
}

// Update applies a partial update after the ownership check. Soft removal
// (isActive=false) goes through here too, so either removal path invalidates
// cached listings.
func (ls *ListingService) Update(ctx context.Context, ownerUserID, id uint, updates map[string]interface{}) (*models.Property, error) {
	property, err := ls.ownedProperty(ctx, ownerUserID, id)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := ls.db.WithContext(ctx).Model(property).Updates(updates).Error; err != nil {
			return nil, apperrors.Unavailable("failed to update property", err)
		}
	}

	ls.invalidate(ctx, id)
	return property, nil
}

// Delete hard-deletes the property after the ownership check.
func (ls *ListingService) Delete(ctx context.Context, ownerUserID, id uint) error {
	property, err := ls.ownedProperty(ctx, ownerUserID, id)
	if err != nil {
		return err
	}

	if err := ls.db.WithContext(ctx).Delete(property).Error; err != nil {
		return apperrors.Unavailable("failed to delete property", err)
	}

	ls.invalidate(ctx, id)
	return nil
}

func (ls *ListingService) ownedProperty(ctx context.Context, ownerUserID, id uint) (*models.Property, error) {
	var property models.Property
	err := ls.db.WithContext(ctx).Preload("Owner").First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("property not found")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch property", err)
	}
	if property.Owner.UserID != ownerUserID {
		return nil, apperrors.Forbidden("you do not own this property")
	}
	return &property, nil
}

// invalidate drops the entity key and the whole listing namespace. Coarse on
// purpose: correctness over hit ratio, with the TTL as second line of
// defense.
func (ls *ListingService) invalidate(ctx context.Context, id uint) {
	ls.cache.Delete(ctx, storage.PropertyKey(id))
	ls.cache.DeletePrefix(ctx, storage.PropertyListPrefix)
}
