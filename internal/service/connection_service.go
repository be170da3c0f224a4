package service

import (
	"context"
	"fmt"
	"log/slog"

	"venturelink/internal/models"
	"venturelink/internal/repository"
)

// ConnectionService implements the connection request lifecycle between
// startups and investors: send, cancel, accept, reject, block, and the
// notification records that mirror each transition.
type ConnectionService struct {
	connRepo    repository.ConnectionRepository
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository

	// allowRerequest permits a sender to re-request after a rejection by
	// resetting the rejected record to pending with the new direction.
	allowRerequest bool
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(
	connRepo repository.ConnectionRepository,
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	allowRerequest bool,
) *ConnectionService {
	return &ConnectionService{
		connRepo:       connRepo,
		notifRepo:      notifRepo,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		allowRerequest: allowRerequest,
	}
}

// ConnectionStatusResult is the caller-relative view of the relationship
// between two users.
type ConnectionStatusResult struct {
	Status       models.ConnectionStatus `json:"status"`
	Role         string                  `json:"role,omitempty"`
	ConnectionID uint                    `json:"connection_id,omitempty"`
}

// StatusNone is reported when no connection record exists between a pair.
const StatusNone = "none"

// SendRequest creates a pending connection from the actor to the target,
// superseding any stale request notifications for the pair.
func (s *ConnectionService) SendRequest(ctx context.Context, actorID, targetID uint) (*models.Connection, error) {
	if actorID == targetID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !actor.UserType.CanConnect() || !target.UserType.CanConnect() {
		return nil, models.NewForbiddenError("Only startups and investors can connect")
	}

	existing, err := s.connRepo.FindByPair(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	var conn *models.Connection
	switch {
	case existing == nil:
		conn = &models.Connection{
			SenderID:   actorID,
			ReceiverID: targetID,
			Status:     models.ConnectionStatusPending,
		}
		// A concurrent send for the same pair loses on the unique pair
		// index and surfaces as the already-pending conflict.
		if err := s.connRepo.Create(ctx, conn); err != nil {
			return nil, err
		}
	case existing.Status == models.ConnectionStatusBlocked:
		return nil, models.NewForbiddenError("Cannot connect with this user")
	case existing.Status == models.ConnectionStatusAccepted:
		return nil, models.NewConflictError("Already connected")
	case existing.Status == models.ConnectionStatusPending:
		if existing.SenderID == actorID {
			return nil, models.NewConflictError("Connection request already pending")
		}
		return nil, models.NewConflictError("You already have a pending request from this user")
	case existing.Status == models.ConnectionStatusRejected:
		if !s.allowRerequest {
			return nil, models.NewConflictError("Connection request was rejected")
		}
		if err := s.connRepo.ResetToPending(ctx, existing.ID, actorID, targetID); err != nil {
			return nil, err
		}
		conn, err = s.connRepo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
	}

	s.notifyRequest(ctx, conn, actor)
	return conn, nil
}

// notifyRequest supersedes prior request notifications for the pair and
// writes the fresh one. Best effort: the request already succeeded, a
// notification failure is logged rather than rolled back.
func (s *ConnectionService) notifyRequest(ctx context.Context, conn *models.Connection, actor *models.User) {
	if err := s.notifRepo.SupersedePriorRequests(ctx, conn.ReceiverID, conn.SenderID); err != nil {
		slog.ErrorContext(ctx, "failed to supersede prior request notifications", "error", err, "connection_id", conn.ID)
	}
	notification := &models.Notification{
		UserID:          conn.ReceiverID,
		SenderID:        &conn.SenderID,
		ConnectionID:    &conn.ID,
		Type:            models.NotificationTypeConnectionRequest,
		Message:         fmt.Sprintf("You have a new connection request from %s", actor.Username),
		IsActive:        true,
		ConnectionState: models.StatePtr(models.NotificationStatePending),
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		slog.ErrorContext(ctx, "failed to create request notification", "error", err, "connection_id", conn.ID)
	}
}

// CancelRequest withdraws the actor's own pending request to the target.
func (s *ConnectionService) CancelRequest(ctx context.Context, actorID, targetID uint) error {
	conn, err := s.connRepo.FindExact(ctx, actorID, targetID, models.ConnectionStatusPending)
	if err != nil {
		return err
	}
	if conn == nil {
		return models.NewNotFoundMessageError("Pending request not found")
	}

	if err := s.connRepo.Delete(ctx, conn.ID); err != nil {
		return err
	}

	if err := s.notifRepo.ResolveLatestRequest(ctx, targetID, actorID, models.NotificationStateCancelled); err != nil {
		slog.ErrorContext(ctx, "failed to resolve cancelled request notification", "error", err, "connection_id", conn.ID)
	}
	return nil
}

// resolvePendingReceived matches a pending request addressed to the actor by
// connection id or by sender id. Matching is exact and confined to the
// actor's own pending-received set.
func (s *ConnectionService) resolvePendingReceived(ctx context.Context, actorID, connectionID, senderID uint) (*models.Connection, error) {
	pending, err := s.connRepo.ListPendingReceived(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		conn := &pending[i]
		if connectionID != 0 && conn.ID == connectionID {
			return conn, nil
		}
		if connectionID == 0 && senderID != 0 && conn.SenderID == senderID {
			return conn, nil
		}
	}
	return nil, nil
}

// AcceptRequest accepts a pending request addressed to the actor, identified
// by connection id or sender id. Accepting an already-accepted pair is an
// idempotent success.
func (s *ConnectionService) AcceptRequest(ctx context.Context, actorID, connectionID, senderID uint) (*models.Connection, error) {
	if connectionID == 0 && senderID == 0 {
		return nil, models.NewValidationError("connection_id or sender_id is required")
	}

	conn, err := s.resolvePendingReceived(ctx, actorID, connectionID, senderID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return s.acceptedAlready(ctx, actorID, connectionID, senderID)
	}

	moved, err := s.connRepo.TransitionStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost a race with a concurrent responder; idempotent if the
		// winner also accepted.
		return s.acceptedAlready(ctx, actorID, connectionID, senderID)
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	notification := &models.Notification{
		UserID:       conn.SenderID,
		SenderID:     &actorID,
		ConnectionID: &conn.ID,
		Type:         models.NotificationTypeConnectionAccepted,
		Message:      fmt.Sprintf("%s accepted your connection request", actor.Username),
		IsActive:     true,
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		slog.ErrorContext(ctx, "failed to create accepted notification", "error", err, "connection_id", conn.ID)
	}
	if err := s.notifRepo.ResolveLatestRequest(ctx, actorID, conn.SenderID, models.NotificationStateAccepted); err != nil {
		slog.ErrorContext(ctx, "failed to resolve accepted request notification", "error", err, "connection_id", conn.ID)
	}

	conn.Status = models.ConnectionStatusAccepted
	return conn, nil
}

// acceptedAlready reports idempotent success when the referenced pair is
// already accepted, and not-found otherwise. No duplicate notification is
// written on this path.
func (s *ConnectionService) acceptedAlready(ctx context.Context, actorID, connectionID, senderID uint) (*models.Connection, error) {
	var conn *models.Connection
	var err error
	if senderID != 0 {
		conn, err = s.connRepo.FindByPair(ctx, actorID, senderID)
	} else {
		conn, err = s.connRepo.GetByID(ctx, connectionID)
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			conn, err = nil, nil
		}
	}
	if err != nil {
		return nil, err
	}
	if conn != nil && conn.Status == models.ConnectionStatusAccepted && conn.RoleOf(actorID) != "none" {
		return conn, nil
	}
	return nil, models.NewNotFoundMessageError("Connection request not found")
}

// RejectRequest declines a pending request addressed to the actor.
func (s *ConnectionService) RejectRequest(ctx context.Context, actorID, connectionID, senderID uint) (*models.Connection, error) {
	if connectionID == 0 && senderID == 0 {
		return nil, models.NewValidationError("connection_id or sender_id is required")
	}

	conn, err := s.resolvePendingReceived(ctx, actorID, connectionID, senderID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, models.NewNotFoundMessageError("Connection request not found")
	}

	moved, err := s.connRepo.TransitionStatus(ctx, conn.ID, models.ConnectionStatusPending, models.ConnectionStatusRejected)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, models.NewNotFoundMessageError("Connection request not found")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	notification := &models.Notification{
		UserID:       conn.SenderID,
		SenderID:     &actorID,
		ConnectionID: &conn.ID,
		Type:         models.NotificationTypeConnectionRejected,
		Message:      fmt.Sprintf("%s declined your connection request", actor.Username),
		IsActive:     true,
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		slog.ErrorContext(ctx, "failed to create rejected notification", "error", err, "connection_id", conn.ID)
	}
	if err := s.notifRepo.ResolveLatestRequest(ctx, actorID, conn.SenderID, models.NotificationStateRejected); err != nil {
		slog.ErrorContext(ctx, "failed to resolve rejected request notification", "error", err, "connection_id", conn.ID)
	}

	conn.Status = models.ConnectionStatusRejected
	return conn, nil
}

// BlockUser blocks the target from any prior state, creating a blocked
// record directly when none exists.
func (s *ConnectionService) BlockUser(ctx context.Context, actorID, targetID uint) (*models.Connection, error) {
	if actorID == targetID {
		return nil, models.NewValidationError("Cannot block yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	existing, err := s.connRepo.FindByPair(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.connRepo.UpdateStatus(ctx, existing.ID, models.ConnectionStatusBlocked); err != nil {
			return nil, err
		}
		existing.Status = models.ConnectionStatusBlocked
		return existing, nil
	}

	conn := &models.Connection{
		SenderID:   actorID,
		ReceiverID: targetID,
		Status:     models.ConnectionStatusBlocked,
	}
	if err := s.connRepo.Create(ctx, conn); err != nil {
		// A concurrent write for the pair got there first; block it instead.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			raced, findErr := s.connRepo.FindByPair(ctx, actorID, targetID)
			if findErr != nil {
				return nil, findErr
			}
			if raced != nil {
				if err := s.connRepo.UpdateStatus(ctx, raced.ID, models.ConnectionStatusBlocked); err != nil {
					return nil, err
				}
				raced.Status = models.ConnectionStatusBlocked
				return raced, nil
			}
		}
		return nil, err
	}
	return conn, nil
}

// GetStatus reports the relationship between the actor and the target with
// the actor's role relative to the stored record.
func (s *ConnectionService) GetStatus(ctx context.Context, actorID, targetID uint) (*ConnectionStatusResult, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	conn, err := s.connRepo.FindByPair(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return &ConnectionStatusResult{Status: StatusNone}, nil
	}
	return &ConnectionStatusResult{
		Status:       conn.Status,
		Role:         conn.RoleOf(actorID),
		ConnectionID: conn.ID,
	}, nil
}

// ListConnections returns the actor's accepted connections enriched with
// counterparty display info.
func (s *ConnectionService) ListConnections(ctx context.Context, actorID uint) ([]models.ConnectionSummary, error) {
	conns, err := s.connRepo.ListAccepted(ctx, actorID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConnectionSummary, 0, len(conns))
	for i := range conns {
		conn := &conns[i]
		counterparty := &conn.Sender
		if conn.SenderID == actorID {
			counterparty = &conn.Receiver
		}
		summary := models.ConnectionSummary{
			ConnectionID:   conn.ID,
			Status:         conn.Status,
			CounterpartyID: counterparty.ID,
			Username:       counterparty.Username,
			UserType:       counterparty.UserType,
			DisplayName:    counterparty.Username,
		}
		if info := s.displayInfo(ctx, counterparty); info != nil {
			summary.DisplayName = info.DisplayName
			summary.Avatar = info.Avatar
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListPendingReceived returns the pending requests addressed to the actor.
func (s *ConnectionService) ListPendingReceived(ctx context.Context, actorID uint) ([]models.PendingRequest, error) {
	conns, err := s.connRepo.ListPendingReceived(ctx, actorID)
	if err != nil {
		return nil, err
	}

	requests := make([]models.PendingRequest, 0, len(conns))
	for i := range conns {
		conn := &conns[i]
		request := models.PendingRequest{
			ConnectionID: conn.ID,
			SenderID:     conn.SenderID,
			Username:     conn.Sender.Username,
			UserType:     conn.Sender.UserType,
			DisplayName:  conn.Sender.Username,
			CreatedAt:    conn.CreatedAt,
		}
		if info := s.displayInfo(ctx, &conn.Sender); info != nil {
			request.DisplayName = info.DisplayName
			request.Avatar = info.Avatar
		}
		requests = append(requests, request)
	}
	return requests, nil
}

// displayInfo resolves profile display info, degrading to nil (raw identity)
// so enrichment never fails a listing.
func (s *ConnectionService) displayInfo(ctx context.Context, user *models.User) *models.DisplayInfo {
	info, err := s.profileRepo.DisplayInfoFor(ctx, user)
	if err != nil {
		slog.WarnContext(ctx, "failed to resolve display info", "error", err, "user_id", user.ID)
		return nil
	}
	return info
}
