package server

import (
	"venturelink/internal/models"
	"venturelink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddDockFile handles POST /api/dock/files
func (s *Server) AddDockFile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Category  string `json:"category"`
		FileName  string `json:"file_name"`
		Mime      string `json:"mime"`
		SizeBytes int64  `json:"size_bytes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	file, err := s.dockService.AddFile(ctx, service.AddFileInput{
		UserID:    userID,
		Category:  models.DockCategory(req.Category),
		FileName:  req.FileName,
		Mime:      req.Mime,
		SizeBytes: req.SizeBytes,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"file": file,
	})
}

// GetMyDockFiles handles GET /api/dock/files
func (s *Server) GetMyDockFiles(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	files, err := s.dockService.ListFiles(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"files": files,
	})
}

// GetUserDockFiles handles GET /api/dock/files/:userId
func (s *Server) GetUserDockFiles(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	files, err := s.dockService.ListFiles(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"files": files,
	})
}

// SetPrimaryDockFile handles POST /api/dock/files/:fileId/primary
func (s *Server) SetPrimaryDockFile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	fileID, err := s.parseID(c, "fileId")
	if err != nil {
		return nil
	}

	if err := s.dockService.SetPrimary(ctx, userID, fileID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Primary file updated",
	})
}

// DeleteDockFile handles DELETE /api/dock/files/:fileId
func (s *Server) DeleteDockFile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	fileID, err := s.parseID(c, "fileId")
	if err != nil {
		return nil
	}

	if err := s.dockService.DeleteFile(ctx, userID, fileID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "File deleted",
	})
}
