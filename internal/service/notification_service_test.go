package service

import (
	"context"
	"testing"

	"venturelink/internal/models"
	"venturelink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListEnrichesSender(t *testing.T) {
	db := newTestDB(t)
	connSvc := newConnectionService(db, false)
	notifSvc := newNotificationService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	profileRepo := repository.NewProfileRepository(db)
	require.NoError(t, profileRepo.UpsertStartup(ctx, &models.StartupProfile{
		UserID:      startup.ID,
		CompanyName: "Helios Energy",
	}))

	conn, err := connSvc.SendRequest(ctx, startup.ID, investor.ID)
	require.NoError(t, err)

	views, err := notifSvc.ListForUser(ctx, investor.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, startup.Username, view.SenderUsername)
	assert.Equal(t, models.UserTypeStartup, view.SenderUserType)
	assert.Equal(t, "Helios Energy", view.SenderName)
	require.NotNil(t, view.ConnectionStatus)
	assert.Equal(t, models.ConnectionStatusPending, *view.ConnectionStatus)
	require.NotNil(t, view.ConnectionID)
	assert.Equal(t, conn.ID, *view.ConnectionID)
}

func TestNotificationService_ListDegradesWithoutProfile(t *testing.T) {
	db := newTestDB(t)
	connSvc := newConnectionService(db, false)
	notifSvc := newNotificationService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	_, err := connSvc.SendRequest(ctx, investor.ID, startup.ID)
	require.NoError(t, err)

	views, err := notifSvc.ListForUser(ctx, startup.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	// No investor profile exists; the display name falls back to the username.
	assert.Equal(t, investor.Username, views[0].SenderName)
	assert.Empty(t, views[0].SenderAvatar)
}

func TestNotificationService_StatusFollowsConnection(t *testing.T) {
	db := newTestDB(t)
	connSvc := newConnectionService(db, false)
	notifSvc := newNotificationService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	conn, err := connSvc.SendRequest(ctx, startup.ID, investor.ID)
	require.NoError(t, err)
	_, err = connSvc.AcceptRequest(ctx, investor.ID, conn.ID, 0)
	require.NoError(t, err)

	// The request notification now reflects the accepted connection.
	views, err := notifSvc.ListForUser(ctx, investor.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].ConnectionStatus)
	assert.Equal(t, models.ConnectionStatusAccepted, *views[0].ConnectionStatus)
}

func TestNotificationService_PairFallbackWithoutConnectionID(t *testing.T) {
	db := newTestDB(t)
	notifSvc := newNotificationService(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	connRepo := repository.NewConnectionRepository(db)
	require.NoError(t, connRepo.Create(ctx, &models.Connection{
		SenderID:   startup.ID,
		ReceiverID: investor.ID,
		Status:     models.ConnectionStatusPending,
	}))

	// Older rows carry no correlation id; resolution falls back to the pair.
	notifRepo := repository.NewNotificationRepository(db)
	require.NoError(t, notifRepo.Create(ctx, &models.Notification{
		UserID:   investor.ID,
		SenderID: &startup.ID,
		Type:     models.NotificationTypeConnectionRequest,
		Message:  "legacy request",
		IsActive: true,
	}))

	views, err := notifSvc.ListForUser(ctx, investor.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].ConnectionStatus)
	assert.Equal(t, models.ConnectionStatusPending, *views[0].ConnectionStatus)
}

func TestNotificationService_ReadStateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	notifSvc := newNotificationService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", models.UserTypeStartup)
	sender := createTestUser(t, db, "sender", models.UserTypeInvestor)

	notifRepo := repository.NewNotificationRepository(db)
	n := &models.Notification{
		UserID:   owner.ID,
		SenderID: &sender.ID,
		Type:     models.NotificationTypeConnectionAccepted,
		Message:  "accepted",
	}
	require.NoError(t, notifRepo.Create(ctx, n))

	count, err := notifSvc.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, notifSvc.MarkRead(ctx, owner.ID, n.ID))
	count, err = notifSvc.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, notifSvc.MarkUnread(ctx, owner.ID, n.ID))
	require.NoError(t, notifSvc.MarkAllRead(ctx, owner.ID))
	count, err = notifSvc.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
