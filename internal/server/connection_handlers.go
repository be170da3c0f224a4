package server

import (
	"errors"

	"venturelink/internal/models"
	"venturelink/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// connectionActorRequest is the shared request body for endpoints that act on
// a pending request received by the caller. Exactly one of connection_id or
// sender_id identifies the request.
type connectionActorRequest struct {
	ConnectionID uint `json:"connection_id"`
	SenderID     uint `json:"sender_id"`
}

// recordConnectionOutcome maps a handler result onto the connection action metric.
func recordConnectionOutcome(action string, err error) {
	outcome := "ok"
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			outcome = appErr.Code
		} else {
			outcome = "error"
		}
	}
	observability.RecordConnectionAction(action, outcome)
}

// SendConnectionRequest handles POST /api/connections/request
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		TargetUserID uint `json:"target_user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.TargetUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_user_id is required"))
	}

	conn, err := s.connectionService.SendRequest(ctx, userID, req.TargetUserID)
	recordConnectionOutcome("request", err)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	actor, actorErr := s.userRepo.GetByID(ctx, userID)
	if actorErr == nil && actor != nil {
		s.publishUserEvent(req.TargetUserID, EventConnectionRequestReceived, map[string]interface{}{
			"connection_id": conn.ID,
			"sender":        userSummary(*actor),
		})
	}
	s.publishUserEvent(userID, EventConnectionRequestSent, map[string]interface{}{
		"connection_id":  conn.ID,
		"target_user_id": req.TargetUserID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"connection": conn,
	})
}

// CancelConnectionRequest handles POST /api/connections/cancel
func (s *Server) CancelConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		TargetUserID uint `json:"target_user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.TargetUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_user_id is required"))
	}

	err := s.connectionService.CancelRequest(ctx, userID, req.TargetUserID)
	recordConnectionOutcome("cancel", err)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	s.publishUserEvent(req.TargetUserID, EventConnectionRequestCancelled, map[string]interface{}{
		"sender_id": userID,
	})

	return c.JSON(fiber.Map{
		"message": "Connection request cancelled",
	})
}

// AcceptConnectionRequest handles POST /api/connections/accept
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req connectionActorRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	conn, err := s.connectionService.AcceptRequest(ctx, userID, req.ConnectionID, req.SenderID)
	recordConnectionOutcome("accept", err)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	otherID := conn.SenderID
	if otherID == userID {
		otherID = conn.ReceiverID
	}
	actor, actorErr := s.userRepo.GetByID(ctx, userID)
	if actorErr == nil && actor != nil {
		s.publishUserEvent(otherID, EventConnectionRequestAccepted, map[string]interface{}{
			"connection_id": conn.ID,
			"accepted_by":   userSummary(*actor),
		})
	}
	s.publishUserEvent(userID, EventConnectionEstablished, map[string]interface{}{
		"connection_id": conn.ID,
		"user_id":       otherID,
	})

	return c.JSON(fiber.Map{
		"connection": conn,
	})
}

// RejectConnectionRequest handles POST /api/connections/reject
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req connectionActorRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	conn, err := s.connectionService.RejectRequest(ctx, userID, req.ConnectionID, req.SenderID)
	recordConnectionOutcome("reject", err)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	s.publishUserEvent(conn.SenderID, EventConnectionRequestRejected, map[string]interface{}{
		"connection_id": conn.ID,
	})

	return c.JSON(fiber.Map{
		"message": "Connection request rejected",
	})
}

// BlockUser handles POST /api/connections/block
func (s *Server) BlockUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		TargetUserID uint `json:"target_user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.TargetUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_user_id is required"))
	}

	_, err := s.connectionService.BlockUser(ctx, userID, req.TargetUserID)
	recordConnectionOutcome("block", err)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User blocked",
	})
}

// GetConnections handles GET /api/connections/list
func (s *Server) GetConnections(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	connections, err := s.connectionService.ListConnections(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"connections": connections,
	})
}

// GetPendingConnectionRequests handles GET /api/connections/requests
func (s *Server) GetPendingConnectionRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requests, err := s.connectionService.ListPendingReceived(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

// GetConnectionStatus handles GET /api/connections/status/:targetUserId
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "targetUserId")
	if err != nil {
		return nil
	}

	status, err := s.connectionService.GetStatus(ctx, userID, targetID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(status)
}
