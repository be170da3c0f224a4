package server

import (
	"encoding/base64"
	"strings"

	"venturelink/internal/models"
	"venturelink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// maxLogoBytes caps decoded startup logo size at 1 MiB.
const maxLogoBytes = 1 << 20

var allowedLogoMimes = map[string]struct{}{
	"image/png":     {},
	"image/jpeg":    {},
	"image/webp":    {},
	"image/svg+xml": {},
}

// GetMyStartupProfile handles GET /api/profiles/startup/me
func (s *Server) GetMyStartupProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetStartupProfile(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// UpdateMyStartupProfile handles PUT /api/profiles/startup/me
func (s *Server) UpdateMyStartupProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		CompanyName string `json:"company_name"`
		Pitch       string `json:"pitch"`
		Website     string `json:"website"`
		Industry    string `json:"industry"`
		Logo        string `json:"logo"`
		LogoMime    string `json:"logo_mime"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var logo []byte
	if req.Logo != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Logo)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Logo must be base64-encoded"))
		}
		if len(decoded) > maxLogoBytes {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Logo too large (max 1 MiB)"))
		}
		mime := strings.ToLower(req.LogoMime)
		if _, ok := allowedLogoMimes[mime]; !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unsupported logo MIME type"))
		}
		logo = decoded
	}

	profile, err := s.profileService.UpsertStartupProfile(ctx, service.UpdateStartupInput{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Pitch:       req.Pitch,
		Website:     req.Website,
		Industry:    req.Industry,
		Logo:        logo,
		LogoMime:    req.LogoMime,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// GetStartupLogo handles GET /api/profiles/startup/:userId/logo
func (s *Server) GetStartupLogo(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetStartupProfile(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if len(profile.Logo) == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundMessageError("No logo uploaded"))
	}

	mime := profile.LogoMime
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(profile.Logo)
}

// GetMyInvestorProfile handles GET /api/profiles/investor/me
func (s *Server) GetMyInvestorProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetInvestorProfile(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// UpdateMyInvestorProfile handles PUT /api/profiles/investor/me
func (s *Server) UpdateMyInvestorProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name   string `json:"name"`
		Firm   string `json:"firm"`
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpsertInvestorProfile(ctx, service.UpdateInvestorInput{
		UserID: userID,
		Name:   req.Name,
		Firm:   req.Firm,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// ListStartupProfiles handles GET /api/profiles/startups
func (s *Server) ListStartupProfiles(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 50)

	profiles, err := s.profileService.ListStartups(ctx, c.Query("industry"), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profiles": profiles,
	})
}

// ListInvestorProfiles handles GET /api/profiles/investors
func (s *Server) ListInvestorProfiles(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 50)

	profiles, err := s.profileService.ListInvestors(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profiles": profiles,
	})
}

// GetPublicProfile handles GET /api/profiles/:userId
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetPublicProfile(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}
