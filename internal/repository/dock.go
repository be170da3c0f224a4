package repository

import (
	"context"
	"errors"

	"venturelink/internal/models"

	"gorm.io/gorm"
)

// DockRepository defines persistence operations for startup dock files.
type DockRepository interface {
	Create(ctx context.Context, file *models.DockFile) error
	GetByID(ctx context.Context, id uint) (*models.DockFile, error)
	ListByUser(ctx context.Context, userID uint) ([]models.DockFile, error)
	ListByUserAndCategory(ctx context.Context, userID uint, category models.DockCategory) ([]models.DockFile, error)
	CountByCategory(ctx context.Context, userID uint, category models.DockCategory) (int64, error)
	SetPrimary(ctx context.Context, userID, fileID uint, category models.DockCategory) error
	Delete(ctx context.Context, userID, fileID uint) error
}

type dockRepository struct {
	db *gorm.DB
}

// NewDockRepository creates a new dock repository
func NewDockRepository(db *gorm.DB) DockRepository {
	return &dockRepository{db: db}
}

func (r *dockRepository) Create(ctx context.Context, file *models.DockFile) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dockRepository) GetByID(ctx context.Context, id uint) (*models.DockFile, error) {
	var file models.DockFile
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Dock file", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &file, nil
}

func (r *dockRepository) ListByUser(ctx context.Context, userID uint) ([]models.DockFile, error) {
	var files []models.DockFile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category, created_at DESC").
		Find(&files).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return files, nil
}

func (r *dockRepository) ListByUserAndCategory(ctx context.Context, userID uint, category models.DockCategory) ([]models.DockFile, error) {
	var files []models.DockFile
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return files, nil
}

func (r *dockRepository) CountByCategory(ctx context.Context, userID uint, category models.DockCategory) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DockFile{}).
		Where("user_id = ? AND category = ?", userID, category).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// SetPrimary marks one file primary within its category, clearing the flag on
// the user's other files in that category.
func (r *dockRepository) SetPrimary(ctx context.Context, userID, fileID uint, category models.DockCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DockFile{}).
			Where("user_id = ? AND category = ?", userID, category).
			Update("is_primary", false).Error; err != nil {
			return models.NewInternalError(err)
		}
		result := tx.Model(&models.DockFile{}).
			Where("id = ? AND user_id = ? AND category = ?", fileID, userID, category).
			Update("is_primary", true)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Dock file", fileID)
		}
		return nil
	})
}

func (r *dockRepository) Delete(ctx context.Context, userID, fileID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", fileID, userID).
		Delete(&models.DockFile{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Dock file", fileID)
	}
	return nil
}
