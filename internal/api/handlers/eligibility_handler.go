package handlers

import (
	"sahayak/internal/dto"
	"sahayak/internal/models"
	"sahayak/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type EligibilityHandler struct {
	schemeService *service.SchemeService
	logger        *zap.Logger
}

func NewEligibilityHandler(schemeService *service.SchemeService, logger *zap.Logger) *EligibilityHandler {
	return &EligibilityHandler{
		schemeService: schemeService,
		logger:        logger,
	}
}

// CheckEligibility godoc
// @Summary Check eligibility against schemes
// @Description Evaluate a user profile against the requested schemes, or all active schemes
// @Tags eligibility
// @Accept json
// @Produce json
// @Param request body dto.EligibilityCheckRequest true "User profile and optional scheme ids"
// @Success 200 {object} dto.EligibilityCheckResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/eligibility/check [post]
func (h *EligibilityHandler) CheckEligibility(c *fiber.Ctx) error {
	var req dto.EligibilityCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := req.UserProfile.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.schemeService.CheckEligibility(c.Context(), &req)
	if err != nil {
		h.logger.Error("Eligibility check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check eligibility",
		})
	}
	return c.JSON(resp)
}

// QuickCheck godoc
// @Summary Quick eligibility check
// @Description Return only high-priority eligible schemes for a profile
// @Tags eligibility
// @Accept json
// @Produce json
// @Param profile body models.UserProfile true "User profile"
// @Success 200 {object} dto.QuickCheckResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/eligibility/quick-check [post]
func (h *EligibilityHandler) QuickCheck(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := profile.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.schemeService.QuickCheck(c.Context(), &profile)
	if err != nil {
		h.logger.Error("Quick eligibility check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check eligibility",
		})
	}
	return c.JSON(resp)
}
