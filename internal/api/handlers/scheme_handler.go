package handlers

import (
	"sahayak/internal/models"
	"sahayak/internal/service"
	"sahayak/pkg/language"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SchemeHandler struct {
	schemeService *service.SchemeService
	summarizer    service.SchemeSummarizer
	logger        *zap.Logger
}

func NewSchemeHandler(schemeService *service.SchemeService, summarizer service.SchemeSummarizer, logger *zap.Logger) *SchemeHandler {
	return &SchemeHandler{
		schemeService: schemeService,
		summarizer:    summarizer,
		logger:        logger,
	}
}

// SearchSchemes godoc
// @Summary Search schemes by profile criteria
// @Description Rank active schemes against sparse search criteria
// @Tags schemes
// @Accept json
// @Produce json
// @Param criteria body models.SchemeSearchCriteria true "Search criteria"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} dto.SchemeSearchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/schemes/search [post]
func (h *SchemeHandler) SearchSchemes(c *fiber.Ctx) error {
	var criteria models.SchemeSearchCriteria
	if err := c.BodyParser(&criteria); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	limit := c.QueryInt("limit", 10)
	return c.JSON(h.schemeService.Search(&criteria, limit))
}

// ListSchemes godoc
// @Summary List active schemes
// @Tags schemes
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.SchemeSearchResponse
// @Router /api/v1/schemes [get]
func (h *SchemeHandler) ListSchemes(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 20)

	schemes, total := h.schemeService.List(skip, limit)
	return c.JSON(fiber.Map{
		"total":   total,
		"schemes": schemes,
	})
}

// GetScheme godoc
// @Summary Get a scheme by id
// @Tags schemes
// @Produce json
// @Param id path string true "Scheme ID"
// @Success 200 {object} models.Scheme
// @Failure 404 {object} map[string]string
// @Router /api/v1/schemes/{id} [get]
func (h *SchemeHandler) GetScheme(c *fiber.Ctx) error {
	scheme := h.schemeService.GetByID(c.Params("id"))
	if scheme == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Scheme not found",
		})
	}
	return c.JSON(scheme)
}

// GetSchemeSummary godoc
// @Summary Get a voice-friendly scheme summary
// @Description Short LLM-generated description of the scheme in the requested language
// @Tags schemes
// @Produce json
// @Param id path string true "Scheme ID"
// @Param language query string false "Language code" default(hi)
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/schemes/{id}/summary [get]
func (h *SchemeHandler) GetSchemeSummary(c *fiber.Ctx) error {
	scheme := h.schemeService.GetByID(c.Params("id"))
	if scheme == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Scheme not found",
		})
	}

	lang := language.Normalize(c.Query("language", "hi"))
	if !language.IsSupported(lang) {
		lang = "hi"
	}

	return c.JSON(fiber.Map{
		"scheme_id": scheme.SchemeID,
		"language":  lang,
		"summary":   h.summarizer.SummarizeScheme(c.Context(), scheme, lang),
	})
}

// GetSchemesByCategory godoc
// @Summary List schemes in a category
// @Tags schemes
// @Produce json
// @Param category path string true "Scheme category"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/schemes/category/{category} [get]
func (h *SchemeHandler) GetSchemesByCategory(c *fiber.Ctx) error {
	category := models.SchemeCategory(c.Params("category"))
	limit := c.QueryInt("limit", 20)

	schemes := h.schemeService.ByCategory(category, limit)
	return c.JSON(fiber.Map{
		"category": category,
		"total":    len(schemes),
		"schemes":  schemes,
	})
}
