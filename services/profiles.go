package services

import (
	"context"
	"errors"

	"github.com/saroopcarr/DoorHinge/apperrors"
	"github.com/saroopcarr/DoorHinge/models"

	"gorm.io/gorm"
)

// ProfileService reads and upserts the role-specific profile attached to a
// user. Profiles are prerequisites: owners cannot list properties without
// one.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (ps *ProfileService) GetOwnerProfile(ctx context.Context, userID uint) (*models.OwnerProfile, error) {
	var profile models.OwnerProfile
	err := ps.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("owner profile not found")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch owner profile", err)
	}
	return &profile, nil
}

func (ps *ProfileService) GetSeekerProfile(ctx context.Context, userID uint) (*models.SeekerProfile, error) {
	var profile models.SeekerProfile
	err := ps.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("seeker profile not found")
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch seeker profile", err)
	}
	return &profile, nil
}

// UpsertOwnerProfile creates or updates the caller's owner profile.
func (ps *ProfileService) UpsertOwnerProfile(ctx context.Context, userID uint, input *models.OwnerProfile) (*models.OwnerProfile, error) {
	var profile models.OwnerProfile
	err := ps.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.OwnerProfile{
			UserID:            userID,
			BusinessName:      input.BusinessName,
			Bio:               input.Bio,
			IsProfileComplete: true,
		}
		if err := ps.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, apperrors.Unavailable("failed to create owner profile", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch owner profile", err)
	}

	updates := map[string]interface{}{
		"business_name":       input.BusinessName,
		"bio":                 input.Bio,
		"is_profile_complete": true,
	}
	if err := ps.db.WithContext(ctx).Model(&profile).Updates(updates).Error; err != nil {
		return nil, apperrors.Unavailable("failed to update owner profile", err)
	}
	return &profile, nil
}

// UpsertSeekerProfile creates or updates the caller's seeker profile.
func (ps *ProfileService) UpsertSeekerProfile(ctx context.Context, userID uint, input *models.SeekerProfile) (*models.SeekerProfile, error) {
	var profile models.SeekerProfile
	err := ps.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.SeekerProfile{
			UserID:         userID,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			MaxBudget:      input.MaxBudget,
			PreferredAreas: input.PreferredAreas,
			Bio:            input.Bio,
		}
		if err := ps.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, apperrors.Unavailable("failed to create seeker profile", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch seeker profile", err)
	}

	updates := map[string]interface{}{
		"first_name":      input.FirstName,
		"last_name":       input.LastName,
		"max_budget":      input.MaxBudget,
		"preferred_areas": input.PreferredAreas,
		"bio":             input.Bio,
	}
	if err := ps.db.WithContext(ctx).Model(&profile).Updates(updates).Error; err != nil {
		return nil, apperrors.Unavailable("failed to update seeker profile", err)
	}
	return &profile, nil
}
