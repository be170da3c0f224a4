package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"venturelink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRepository_PairNormalization(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	conn := &models.Connection{
		SenderID:   investor.ID,
		ReceiverID: startup.ID,
		Status:     models.ConnectionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, conn))

	// The stored pair is direction-independent.
	var stored models.Connection
	require.NoError(t, db.First(&stored, conn.ID).Error)
	assert.Less(t, stored.PairMinID, stored.PairMaxID)

	// Lookup order does not matter.
	found, err := repo.FindByPair(ctx, startup.ID, investor.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, conn.ID, found.ID)

	found, err = repo.FindByPair(ctx, investor.ID, startup.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, conn.ID, found.ID)
}

func TestConnectionRepository_DuplicatePairConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	require.NoError(t, repo.Create(ctx, &models.Connection{
		SenderID:   startup.ID,
		ReceiverID: investor.ID,
		Status:     models.ConnectionStatusPending,
	}))

	// Same pair in the opposite direction still violates the unique index.
	err := repo.Create(ctx, &models.Connection{
		SenderID:   investor.ID,
		ReceiverID: startup.ID,
		Status:     models.ConnectionStatusPending,
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "Connection request already pending", appErr.Message)
}

func TestConnectionRepository_TransitionStatusCAS(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	conn := &models.Connection{
		SenderID:   startup.ID,
		ReceiverID: investor.ID,
		Status:     models.ConnectionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, conn))

	moved, err := repo.TransitionStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	require.NoError(t, err)
	assert.True(t, moved)

	// A second responder loses the race; no row moves.
	moved, err = repo.TransitionStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusRejected)
	require.NoError(t, err)
	assert.False(t, moved)

	reloaded, err := repo.GetByID(ctx, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, reloaded.Status)
}

func TestConnectionRepository_ResetToPendingFlipsDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	conn := &models.Connection{
		SenderID:   startup.ID,
		ReceiverID: investor.ID,
		Status:     models.ConnectionStatusRejected,
	}
	require.NoError(t, repo.Create(ctx, conn))

	// The rejected receiver becomes the new sender.
	require.NoError(t, repo.ResetToPending(ctx, conn.ID, investor.ID, startup.ID))

	reloaded, err := repo.GetByID(ctx, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, reloaded.Status)
	assert.Equal(t, investor.ID, reloaded.SenderID)
	assert.Equal(t, startup.ID, reloaded.ReceiverID)
}

func TestConnectionRepository_FindExact(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	startup := createTestUser(t, db, "startup", models.UserTypeStartup)
	investor := createTestUser(t, db, "investor", models.UserTypeInvestor)

	require.NoError(t, repo.Create(ctx, &models.Connection{
		SenderID:   startup.ID,
		ReceiverID: investor.ID,
		Status:     models.ConnectionStatusPending,
	}))

	found, err := repo.FindExact(ctx, startup.ID, investor.ID, models.ConnectionStatusPending)
	require.NoError(t, err)
	assert.NotNil(t, found)

	// Direction matters for exact lookup.
	found, err = repo.FindExact(ctx, investor.ID, startup.ID, models.ConnectionStatusPending)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestConnectionRepository_ListPendingReceivedOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	receiver := createTestUser(t, db, "receiver", models.UserTypeInvestor)
	s1 := createTestUser(t, db, "s1", models.UserTypeStartup)
	s2 := createTestUser(t, db, "s2", models.UserTypeStartup)

	older := &models.Connection{SenderID: s1.ID, ReceiverID: receiver.ID, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &models.Connection{SenderID: s2.ID, ReceiverID: receiver.ID, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, newer))

	pending, err := repo.ListPendingReceived(ctx, receiver.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, newer.ID, pending[0].ID)
	assert.Equal(t, s2.Username, pending[0].Sender.Username)

	// Requests the user sent are not in their received set.
	pending, err = repo.ListPendingReceived(ctx, s1.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
