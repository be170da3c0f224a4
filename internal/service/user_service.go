package service

import (
	"context"

	"venturelink/internal/models"
	"venturelink/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SetAdmin grants or revokes admin privileges. A revoked admin is returned to
// the given fallback account type.
func (s *UserService) SetAdmin(ctx context.Context, targetID uint, admin bool, fallback models.UserType) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", targetID)
	}

	if admin {
		user.UserType = models.UserTypeAdmin
	} else {
		if fallback != models.UserTypeStartup && fallback != models.UserTypeInvestor {
			return nil, models.NewValidationError("Fallback user type must be startup or investor")
		}
		user.UserType = fallback
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
