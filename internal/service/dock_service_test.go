package service

import (
	"context"
	"fmt"
	"testing"

	"venturelink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDockService_AddFile(t *testing.T) {
	db := newTestDB(t)
	svc := newDockService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)

	file, err := svc.AddFile(ctx, AddFileInput{
		UserID:    startup.ID,
		Category:  models.DockCategoryPitch,
		FileName:  "deck.pdf",
		Mime:      "application/pdf",
		SizeBytes: 4096,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, file.StorageKey)

	// The first file in a category becomes primary automatically.
	assert.True(t, file.IsPrimary)

	second, err := svc.AddFile(ctx, AddFileInput{
		UserID:   startup.ID,
		Category: models.DockCategoryPitch,
		FileName: "deck_v2.pdf",
		Mime:     "application/pdf",
	})
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)
}

func TestDockService_AddFileStartupOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newDockService(db)
	ctx := context.Background()

	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	_, err := svc.AddFile(ctx, AddFileInput{
		UserID:   investor.ID,
		Category: models.DockCategoryPitch,
		FileName: "deck.pdf",
	})
	appErr := requireAppError(t, err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestDockService_AddFileValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newDockService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)

	_, err := svc.AddFile(ctx, AddFileInput{
		UserID:   startup.ID,
		Category: "screenshots",
		FileName: "a.png",
	})
	appErr := requireAppError(t, err)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)

	_, err = svc.AddFile(ctx, AddFileInput{
		UserID:   startup.ID,
		Category: models.DockCategoryDemo,
	})
	appErr = requireAppError(t, err)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
}

func TestDockService_AddFileCategoryCap(t *testing.T) {
	db := newTestDB(t)
	svc := newDockService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)

	for i := 0; i < models.MaxDockFilesPerCategory; i++ {
		_, err := svc.AddFile(ctx, AddFileInput{
			UserID:   startup.ID,
			Category: models.DockCategoryPatent,
			FileName: fmt.Sprintf("patent_%d.pdf", i),
		})
		require.NoError(t, err)
	}

	_, err := svc.AddFile(ctx, AddFileInput{
		UserID:   startup.ID,
		Category: models.DockCategoryPatent,
		FileName: "one_too_many.pdf",
	})
	appErr := requireAppError(t, err)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// Other categories are unaffected by the cap.
	_, err = svc.AddFile(ctx, AddFileInput{
		UserID:   startup.ID,
		Category: models.DockCategoryDemo,
		FileName: "demo.mp4",
	})
	require.NoError(t, err)
}

func TestDockService_SetPrimaryOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newDockService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", models.UserTypeStartup)
	other := createTestUser(t, db, "other", models.UserTypeStartup)

	first, err := svc.AddFile(ctx, AddFileInput{
		UserID:   owner.ID,
		Category: models.DockCategoryPitch,
		FileName: "deck.pdf",
	})
	require.NoError(t, err)
	second, err := svc.AddFile(ctx, AddFileInput{
		UserID:   owner.ID,
		Category: models.DockCategoryPitch,
		FileName: "deck_v2.pdf",
	})
	require.NoError(t, err)

	err = svc.SetPrimary(ctx, other.ID, second.ID)
	appErr := requireAppError(t, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	require.NoError(t, svc.SetPrimary(ctx, owner.ID, second.ID))

	files, err := svc.ListFiles(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		if f.ID == first.ID {
			assert.False(t, f.IsPrimary)
		}
		if f.ID == second.ID {
			assert.True(t, f.IsPrimary)
		}
	}
}

func TestDockService_DeleteFile(t *testing.T) {
	db := newTestDB(t)
	svc := newDockService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", models.UserTypeStartup)
	other := createTestUser(t, db, "other", models.UserTypeStartup)

	file, err := svc.AddFile(ctx, AddFileInput{
		UserID:   owner.ID,
		Category: models.DockCategoryDemo,
		FileName: "demo.mp4",
	})
	require.NoError(t, err)

	err = svc.DeleteFile(ctx, other.ID, file.ID)
	appErr := requireAppError(t, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	require.NoError(t, svc.DeleteFile(ctx, owner.ID, file.ID))

	files, err := svc.ListFiles(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}
