package service

import (
	"context"
	"strings"
	"testing"

	"venturelink/internal/models"
	"venturelink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB) *ProfileService {
	return NewProfileService(repository.NewProfileRepository(db), repository.NewUserRepository(db))
}

func TestProfileService_UpsertStartupProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)

	profile, err := svc.UpsertStartupProfile(ctx, UpdateStartupInput{
		UserID:      startup.ID,
		CompanyName: "Quantline",
		Pitch:       "Faster settlement rails.",
		Industry:    "fintech",
	})
	require.NoError(t, err)
	require.NotZero(t, profile.ID)

	// A second upsert edits in place.
	updated, err := svc.UpsertStartupProfile(ctx, UpdateStartupInput{
		UserID:      startup.ID,
		CompanyName: "Quantline Inc",
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, updated.ID)

	got, err := svc.GetStartupProfile(ctx, startup.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quantline Inc", got.CompanyName)
}

func TestProfileService_UpsertStartupProfileGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)
	ctx := context.Background()

	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)
	startup := createTestUser(t, db, "startup", models.UserTypeStartup)

	_, err := svc.UpsertStartupProfile(ctx, UpdateStartupInput{
		UserID:      investor.ID,
		CompanyName: "Not A Startup",
	})
	appErr := requireAppError(t, err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	_, err = svc.UpsertStartupProfile(ctx, UpdateStartupInput{UserID: startup.ID})
	appErr = requireAppError(t, err)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)

	_, err = svc.UpsertStartupProfile(ctx, UpdateStartupInput{
		UserID:      startup.ID,
		CompanyName: "Quantline",
		Pitch:       strings.Repeat("x", maxPitchLen+1),
	})
	appErr = requireAppError(t, err)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
}

func TestProfileService_UpsertInvestorProfileGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	_, err := svc.UpsertInvestorProfile(ctx, UpdateInvestorInput{
		UserID: startup.ID,
		Name:   "Not An Investor",
	})
	appErr := requireAppError(t, err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	_, err = svc.UpsertInvestorProfile(ctx, UpdateInvestorInput{UserID: investor.ID})
	appErr = requireAppError(t, err)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)

	profile, err := svc.UpsertInvestorProfile(ctx, UpdateInvestorInput{
		UserID: investor.ID,
		Name:   "Sam Reyes",
		Firm:   "Reyes Ventures",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam Reyes", profile.Name)
}

func TestProfileService_GetMissingProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)

	_, err := svc.GetStartupProfile(ctx, startup.ID)
	appErr := requireAppError(t, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestProfileService_GetPublicProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	_, err := svc.UpsertStartupProfile(ctx, UpdateStartupInput{
		UserID:      startup.ID,
		CompanyName: "Quantline",
	})
	require.NoError(t, err)

	public, err := svc.GetPublicProfile(ctx, startup.ID)
	require.NoError(t, err)
	assert.Equal(t, startup.Username, public.Username)
	require.NotNil(t, public.Startup)
	assert.Equal(t, "Quantline", public.Startup.CompanyName)
	assert.Nil(t, public.Investor)

	// A user without a profile still resolves to the bare identity.
	bare := createTestUser(t, db, "bare", models.UserTypeInvestor)
	public, err = svc.GetPublicProfile(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, public.Startup)
	assert.Nil(t, public.Investor)
}
