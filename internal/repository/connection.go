// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"venturelink/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection data operations
type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetByID(ctx context.Context, id uint) (*models.Connection, error)
	FindByPair(ctx context.Context, userID1, userID2 uint) (*models.Connection, error)
	FindExact(ctx context.Context, senderID, receiverID uint, status models.ConnectionStatus) (*models.Connection, error)
	UpdateStatus(ctx context.Context, connectionID uint, status models.ConnectionStatus) error
	TransitionStatus(ctx context.Context, connectionID uint, from, to models.ConnectionStatus) (bool, error)
	ResetToPending(ctx context.Context, connectionID uint, senderID, receiverID uint) error
	Delete(ctx context.Context, connectionID uint) error
	ListAccepted(ctx context.Context, userID uint) ([]models.Connection, error)
	ListPendingReceived(ctx context.Context, userID uint) ([]models.Connection, error)
}

// connectionRepository implements ConnectionRepository
type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// isUniqueViolation detects duplicate-key failures from both the production
// postgres driver and the sqlite driver used by tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *connectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("Connection request already pending")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).Preload("Sender").Preload("Receiver").First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) FindByPair(ctx context.Context, userID1, userID2 uint) (*models.Connection, error) {
	minID, maxID := userID1, userID2
	if minID > maxID {
		minID, maxID = maxID, minID
	}

	var conn models.Connection
	if err := r.db.WithContext(ctx).
		Where("pair_min_id = ? AND pair_max_id = ?", minID, maxID).
		Preload("Sender").
		Preload("Receiver").
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No connection exists between the pair
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) FindExact(ctx context.Context, senderID, receiverID uint, status models.ConnectionStatus) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, status).
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, connectionID uint, status models.ConnectionStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ?", connectionID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// TransitionStatus performs a compare-and-set status update. It reports
// whether a row actually moved from the expected status, so concurrent
// responders racing on the same request resolve to exactly one winner.
func (r *connectionRepository) TransitionStatus(ctx context.Context, connectionID uint, from, to models.ConnectionStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ? AND status = ?", connectionID, from).
		Update("status", to)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ResetToPending reuses an existing row for a fresh request, rewriting the
// direction so the pair's unique index is never violated.
func (r *connectionRepository) ResetToPending(ctx context.Context, connectionID uint, senderID, receiverID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ?", connectionID).
		Updates(map[string]interface{}{
			"sender_id":   senderID,
			"receiver_id": receiverID,
			"status":      models.ConnectionStatusPending,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, connectionID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Connection{}, connectionID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) ListAccepted(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("status = ? AND (sender_id = ? OR receiver_id = ?)",
			models.ConnectionStatusAccepted, userID, userID).
		Preload("Sender").
		Preload("Receiver").
		Order("updated_at DESC").
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

func (r *connectionRepository) ListPendingReceived(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Preload("Sender").
		Order("created_at DESC").
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}
