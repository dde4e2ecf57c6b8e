package handlers

import (
	"strings"

	"sahayak/internal/dto"
	"sahayak/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Query godoc
// @Summary Process a conversational query
// @Description One chat turn: match schemes, generate a reply, update the session
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatQueryRequest true "User query"
// @Success 200 {object} dto.ChatQueryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/chat/query [post]
func (h *ChatHandler) Query(c *fiber.Ctx) error {
	var req dto.ChatQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}

	resp, err := h.chatService.Handle(c.Context(), &req)
	if err != nil {
		h.logger.Error("Chat query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process query",
		})
	}
	return c.JSON(resp)
}
