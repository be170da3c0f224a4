package service

import (
	"context"
	"fmt"

	"venturelink/internal/models"
	"venturelink/internal/repository"

	"github.com/google/uuid"
)

// DockService manages startup dock file records (pitch decks, demos,
// patents). Storage of the payloads themselves lives elsewhere; the dock
// tracks metadata keyed by a generated storage key.
type DockService struct {
	dockRepo repository.DockRepository
	userRepo repository.UserRepository
}

// NewDockService returns a new DockService.
func NewDockService(dockRepo repository.DockRepository, userRepo repository.UserRepository) *DockService {
	return &DockService{dockRepo: dockRepo, userRepo: userRepo}
}

// AddFileInput carries the metadata of a new dock file.
type AddFileInput struct {
	UserID    uint
	Category  models.DockCategory
	FileName  string
	Mime      string
	SizeBytes int64
}

// AddFile registers a dock file for a startup, enforcing the per-category cap.
func (s *DockService) AddFile(ctx context.Context, in AddFileInput) (*models.DockFile, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeStartup {
		return nil, models.NewForbiddenError("Only startup accounts have a dock")
	}
	if !in.Category.Valid() {
		return nil, models.NewValidationError("Invalid dock category")
	}
	if in.FileName == "" {
		return nil, models.NewValidationError("File name is required")
	}

	count, err := s.dockRepo.CountByCategory(ctx, in.UserID, in.Category)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxDockFilesPerCategory {
		return nil, models.NewConflictError(
			fmt.Sprintf("Maximum of %d files per category", models.MaxDockFilesPerCategory))
	}

	file := &models.DockFile{
		UserID:     in.UserID,
		Category:   in.Category,
		FileName:   in.FileName,
		StorageKey: uuid.New().String(),
		Mime:       in.Mime,
		SizeBytes:  in.SizeBytes,
		IsPrimary:  count == 0,
	}
	if err := s.dockRepo.Create(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// ListFiles returns all dock files of a user grouped by nothing in
// particular; callers group by category client-side.
func (s *DockService) ListFiles(ctx context.Context, userID uint) ([]models.DockFile, error) {
	return s.dockRepo.ListByUser(ctx, userID)
}

// SetPrimary marks one of the actor's files primary within its category.
func (s *DockService) SetPrimary(ctx context.Context, actorID, fileID uint) error {
	file, err := s.dockRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file.UserID != actorID {
		return models.NewNotFoundError("Dock file", fileID)
	}
	return s.dockRepo.SetPrimary(ctx, actorID, fileID, file.Category)
}

// DeleteFile removes one of the actor's dock files.
func (s *DockService) DeleteFile(ctx context.Context, actorID, fileID uint) error {
	return s.dockRepo.Delete(ctx, actorID, fileID)
}
