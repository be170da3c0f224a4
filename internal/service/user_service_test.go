package service

import (
	"context"
	"testing"

	"venturelink/internal/models"
	"venturelink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db))
}

func TestUserService_GetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "user", models.UserTypeStartup)

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = svc.GetUserByID(ctx, 9999)
	appErr := requireAppError(t, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserService_SetAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "user", models.UserTypeStartup)

	promoted, err := svc.SetAdmin(ctx, user.ID, true, models.UserTypeStartup)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAdmin, promoted.UserType)

	// Demotion restores the given fallback account type.
	demoted, err := svc.SetAdmin(ctx, user.ID, false, models.UserTypeStartup)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeStartup, demoted.UserType)

	_, err = svc.SetAdmin(ctx, user.ID, false, models.UserTypeAdmin)
	appErr := requireAppError(t, err)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
}

func TestUserService_ListUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		createTestUser(t, db, "listed", models.UserTypeInvestor)
	}

	users, err := svc.ListUsers(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
