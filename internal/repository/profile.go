package repository

import (
	"context"
	"errors"
	"fmt"

	"venturelink/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for startup and investor profiles.
type ProfileRepository interface {
	UpsertStartup(ctx context.Context, profile *models.StartupProfile) error
	UpsertInvestor(ctx context.Context, profile *models.InvestorProfile) error
	GetStartupByUserID(ctx context.Context, userID uint) (*models.StartupProfile, error)
	GetInvestorByUserID(ctx context.Context, userID uint) (*models.InvestorProfile, error)
	DisplayInfoFor(ctx context.Context, user *models.User) (*models.DisplayInfo, error)
	ListStartups(ctx context.Context, industry string, limit, offset int) ([]models.StartupProfile, error)
	ListInvestors(ctx context.Context, limit, offset int) ([]models.InvestorProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) UpsertStartup(ctx context.Context, profile *models.StartupProfile) error {
	var existing models.StartupProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
				return models.NewInternalError(err)
			}
			return nil
		}
		return models.NewInternalError(err)
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) UpsertInvestor(ctx context.Context, profile *models.InvestorProfile) error {
	var existing models.InvestorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
				return models.NewInternalError(err)
			}
			return nil
		}
		return models.NewInternalError(err)
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) GetStartupByUserID(ctx context.Context, userID uint) (*models.StartupProfile, error) {
	var profile models.StartupProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetInvestorByUserID(ctx context.Context, userID uint) (*models.InvestorProfile, error) {
	var profile models.InvestorProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// DisplayInfoFor resolves the display name and avatar for a user from the
// profile matching their account type. A missing profile degrades to the
// username so callers never fail on enrichment.
func (r *profileRepository) DisplayInfoFor(ctx context.Context, user *models.User) (*models.DisplayInfo, error) {
	info := &models.DisplayInfo{DisplayName: user.Username}

	switch user.UserType {
	case models.UserTypeStartup:
		profile, err := r.GetStartupByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			info.DisplayName = profile.CompanyName
			if len(profile.Logo) > 0 {
				info.Avatar = startupLogoPath(user.ID)
			}
		}
	case models.UserTypeInvestor:
		profile, err := r.GetInvestorByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			info.DisplayName = profile.Name
			info.Avatar = profile.Avatar
		}
	}

	return info, nil
}

func startupLogoPath(userID uint) string {
	return fmt.Sprintf("/api/profiles/startup/%d/logo", userID)
}

func (r *profileRepository) ListStartups(ctx context.Context, industry string, limit, offset int) ([]models.StartupProfile, error) {
	var profiles []models.StartupProfile
	query := r.db.WithContext(ctx).Model(&models.StartupProfile{})
	if industry != "" {
		query = query.Where("industry = ?", industry)
	}
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) ListInvestors(ctx context.Context, limit, offset int) ([]models.InvestorProfile, error) {
	var profiles []models.InvestorProfile
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
