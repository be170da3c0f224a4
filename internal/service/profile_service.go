package service

import (
	"context"

	"venturelink/internal/models"
	"venturelink/internal/repository"
)

// ProfileService manages startup and investor profiles.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// UpdateStartupInput carries the editable fields of a startup profile.
type UpdateStartupInput struct {
	UserID      uint
	CompanyName string
	Pitch       string
	Website     string
	Industry    string
	Logo        []byte
	LogoMime    string
}

// UpdateInvestorInput carries the editable fields of an investor profile.
type UpdateInvestorInput struct {
	UserID uint
	Name   string
	Firm   string
	Bio    string
	Avatar string
}

const (
	maxPitchLen = 2000
	maxBioLen   = 2000
)

// UpsertStartupProfile creates or replaces the actor's startup profile.
// Only startup accounts carry one.
func (s *ProfileService) UpsertStartupProfile(ctx context.Context, in UpdateStartupInput) (*models.StartupProfile, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeStartup {
		return nil, models.NewForbiddenError("Only startup accounts have a startup profile")
	}
	if in.CompanyName == "" {
		return nil, models.NewValidationError("Company name is required")
	}
	if len(in.Pitch) > maxPitchLen {
		return nil, models.NewValidationError("Pitch too long (max 2000 characters)")
	}

	profile := &models.StartupProfile{
		UserID:      in.UserID,
		CompanyName: in.CompanyName,
		Pitch:       in.Pitch,
		Website:     in.Website,
		Industry:    in.Industry,
		Logo:        in.Logo,
		LogoMime:    in.LogoMime,
	}
	if err := s.profileRepo.UpsertStartup(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpsertInvestorProfile creates or replaces the actor's investor profile.
func (s *ProfileService) UpsertInvestorProfile(ctx context.Context, in UpdateInvestorInput) (*models.InvestorProfile, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeInvestor {
		return nil, models.NewForbiddenError("Only investor accounts have an investor profile")
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 2000 characters)")
	}

	profile := &models.InvestorProfile{
		UserID: in.UserID,
		Name:   in.Name,
		Firm:   in.Firm,
		Bio:    in.Bio,
		Avatar: in.Avatar,
	}
	if err := s.profileRepo.UpsertInvestor(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetStartupProfile returns the startup profile for a user, or NotFound.
func (s *ProfileService) GetStartupProfile(ctx context.Context, userID uint) (*models.StartupProfile, error) {
	profile, err := s.profileRepo.GetStartupByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Startup profile", userID)
	}
	return profile, nil
}

// GetInvestorProfile returns the investor profile for a user, or NotFound.
func (s *ProfileService) GetInvestorProfile(ctx context.Context, userID uint) (*models.InvestorProfile, error) {
	profile, err := s.profileRepo.GetInvestorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Investor profile", userID)
	}
	return profile, nil
}

// ListStartups returns startup profiles, optionally filtered by industry.
func (s *ProfileService) ListStartups(ctx context.Context, industry string, limit, offset int) ([]models.StartupProfile, error) {
	return s.profileRepo.ListStartups(ctx, industry, limit, offset)
}

// ListInvestors returns investor profiles.
func (s *ProfileService) ListInvestors(ctx context.Context, limit, offset int) ([]models.InvestorProfile, error) {
	return s.profileRepo.ListInvestors(ctx, limit, offset)
}

// PublicProfile is the type-appropriate public view of any user.
type PublicProfile struct {
	UserID   uint                    `json:"user_id"`
	Username string                  `json:"username"`
	UserType models.UserType         `json:"user_type"`
	Startup  *models.StartupProfile  `json:"startup,omitempty"`
	Investor *models.InvestorProfile `json:"investor,omitempty"`
}

// GetPublicProfile resolves a user's public profile according to their
// account type. A user without a profile record still resolves.
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID uint) (*PublicProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &PublicProfile{
		UserID:   user.ID,
		Username: user.Username,
		UserType: user.UserType,
	}
	switch user.UserType {
	case models.UserTypeStartup:
		result.Startup, err = s.profileRepo.GetStartupByUserID(ctx, userID)
	case models.UserTypeInvestor:
		result.Investor, err = s.profileRepo.GetInvestorByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
