package service

import (
	"context"
	"log/slog"

	"venturelink/internal/models"
	"venturelink/internal/repository"
)

// NotificationService provides the enriched notification feed and read-state
// toggles.
type NotificationService struct {
	notifRepo   repository.NotificationRepository
	connRepo    repository.ConnectionRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(
	notifRepo repository.NotificationRepository,
	connRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) *NotificationService {
	return &NotificationService{
		notifRepo:   notifRepo,
		connRepo:    connRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// ListForUser returns the actor's newest notifications enriched with sender
// display info and the resolved status of the correlated connection.
// Enrichment is best effort: a missing sender or profile degrades to the raw
// notification rather than failing the listing.
func (s *NotificationService) ListForUser(ctx context.Context, actorID uint) ([]models.NotificationView, error) {
	notifications, err := s.notifRepo.ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for _, notification := range notifications {
		view := models.NotificationView{Notification: notification}
		s.enrichSender(ctx, &view)
		s.enrichConnectionStatus(ctx, actorID, &view)
		views = append(views, view)
	}
	return views, nil
}

func (s *NotificationService) enrichSender(ctx context.Context, view *models.NotificationView) {
	if view.SenderID == nil {
		return
	}
	sender, err := s.userRepo.GetByID(ctx, *view.SenderID)
	if err != nil {
		slog.WarnContext(ctx, "failed to load notification sender", "error", err, "notification_id", view.ID)
		return
	}
	view.SenderUsername = sender.Username
	view.SenderUserType = sender.UserType
	view.SenderName = sender.Username

	info, err := s.profileRepo.DisplayInfoFor(ctx, sender)
	if err != nil {
		slog.WarnContext(ctx, "failed to resolve sender display info", "error", err, "notification_id", view.ID)
		return
	}
	view.SenderName = info.DisplayName
	view.SenderAvatar = info.Avatar
}

// enrichConnectionStatus resolves the live connection status behind a request
// notification so the feed can decide whether it is still actionable. The
// explicit correlation id wins; older rows without one fall back to a pair
// match on (recipient, sender).
func (s *NotificationService) enrichConnectionStatus(ctx context.Context, actorID uint, view *models.NotificationView) {
	if view.Type != models.NotificationTypeConnectionRequest {
		return
	}

	var conn *models.Connection
	var err error
	switch {
	case view.ConnectionID != nil:
		conn, err = s.connRepo.GetByID(ctx, *view.ConnectionID)
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			conn, err = nil, nil
		}
	case view.SenderID != nil:
		conn, err = s.connRepo.FindByPair(ctx, actorID, *view.SenderID)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to resolve notification connection", "error", err, "notification_id", view.ID)
		return
	}
	if conn != nil {
		status := conn.Status
		view.ConnectionStatus = &status
	}
}

// CountUnread returns the actor's unread notification count.
func (s *NotificationService) CountUnread(ctx context.Context, actorID uint) (int64, error) {
	return s.notifRepo.CountUnread(ctx, actorID)
}

// MarkRead marks one of the actor's notifications read. Foreign ids are a
// silent no-op.
func (s *NotificationService) MarkRead(ctx context.Context, actorID, notificationID uint) error {
	return s.notifRepo.MarkRead(ctx, actorID, notificationID)
}

// MarkUnread marks one of the actor's notifications unread.
func (s *NotificationService) MarkUnread(ctx context.Context, actorID, notificationID uint) error {
	return s.notifRepo.MarkUnread(ctx, actorID, notificationID)
}

// MarkAllRead marks every unread notification of the actor read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actorID uint) error {
	return s.notifRepo.MarkAllRead(ctx, actorID)
}
