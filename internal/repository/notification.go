package repository

import (
	"context"
	"errors"

	"venturelink/internal/models"

	"gorm.io/gorm"
)

// feedLimit caps how many notifications a single listing returns.
const feedLimit = 50

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	MarkUnread(ctx context.Context, userID, notificationID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	SupersedePriorRequests(ctx context.Context, recipientID, senderID uint) error
	ResolveLatestRequest(ctx context.Context, recipientID, senderID uint, state models.NotificationState) error
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Notification", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &notification, nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// MarkRead flips the read flag on a notification the user owns. Updates
// scoped to another user's notification silently affect nothing.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return r.setRead(ctx, userID, notificationID, true)
}

func (r *notificationRepository) MarkUnread(ctx context.Context, userID, notificationID uint) error {
	return r.setRead(ctx, userID, notificationID, false)
}

func (r *notificationRepository) setRead(ctx context.Context, userID, notificationID uint, read bool) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", read).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SupersedePriorRequests deactivates every still-active connection request
// notification from the sender to the recipient, marking them cancelled.
// Called before inserting a fresh request notification so the feed only ever
// shows one actionable request per pair.
func (r *notificationRepository) SupersedePriorRequests(ctx context.Context, recipientID, senderID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND sender_id = ? AND type = ? AND is_active = ?",
			recipientID, senderID, models.NotificationTypeConnectionRequest, true).
		Updates(map[string]interface{}{
			"is_active":        false,
			"connection_state": models.NotificationStateCancelled,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ResolveLatestRequest records the outcome of a request on the newest active
// request notification only. Older superseded copies keep their cancelled
// state; a pair with no active request notification is a no-op.
func (r *notificationRepository) ResolveLatestRequest(ctx context.Context, recipientID, senderID uint, state models.NotificationState) error {
	var latest models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sender_id = ? AND type = ? AND is_active = ?",
			recipientID, senderID, models.NotificationTypeConnectionRequest, true).
		Order("created_at DESC, id DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewInternalError(err)
	}

	updates := map[string]interface{}{"connection_state": state}
	if state != models.NotificationStatePending {
		updates["is_active"] = false
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", latest.ID).
		Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
