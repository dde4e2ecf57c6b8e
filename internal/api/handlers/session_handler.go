package handlers

import (
	"sahayak/internal/dto"
	"sahayak/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SessionHandler struct {
	chatService    *service.ChatService
	sessionService *service.SessionService
	logger         *zap.Logger
}

func NewSessionHandler(chatService *service.ChatService, sessionService *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		chatService:    chatService,
		sessionService: sessionService,
		logger:         logger,
	}
}

// StartSession godoc
// @Summary Start a conversation session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.SessionStartRequest false "Session options"
// @Success 201 {object} dto.SessionStartResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/session/start [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.SessionStartRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	resp, err := h.chatService.Start(c.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to start session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start session",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetStats godoc
// @Summary Session store statistics
// @Tags sessions
// @Produce json
// @Success 200 {object} dto.SessionStatsResponse
// @Router /api/v1/session/stats [get]
func (h *SessionHandler) GetStats(c *fiber.Ctx) error {
	total, active, err := h.sessionService.Stats(c.Context())
	if err != nil {
		h.logger.Error("Failed to collect session stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect session stats",
		})
	}
	return c.JSON(dto.SessionStatsResponse{
		TotalSessions:    total,
		ActiveSessions:   active,
		InactiveSessions: total - active,
	})
}

// GetSession godoc
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.Session
// @Failure 404 {object} map[string]string
// @Router /api/v1/session/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessionService.Get(c.Context(), c.Params("id"))
	if err != nil {
		h.logger.Error("Failed to load session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session",
		})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found or expired",
		})
	}
	return c.JSON(session)
}

// GetHistory godoc
// @Summary Get session message history
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param limit query int false "Maximum messages" default(50)
// @Success 200 {object} dto.SessionHistoryResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/session/{id}/history [get]
func (h *SessionHandler) GetHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	limit := c.QueryInt("limit", 50)

	session, err := h.sessionService.Get(c.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session history",
		})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found or expired",
		})
	}

	messages, err := h.sessionService.History(c.Context(), id, limit)
	if err != nil {
		h.logger.Error("Failed to load session history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session history",
		})
	}
	return c.JSON(dto.SessionHistoryResponse{
		SessionID: id,
		Messages:  messages,
		Total:     len(messages),
	})
}

// EndSession godoc
// @Summary End a session
// @Description Mark the session inactive; its data is purged by the sweeper
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/v1/session/{id} [delete]
func (h *SessionHandler) EndSession(c *fiber.Ctx) error {
	id := c.Params("id")

	ended, err := h.sessionService.End(c.Context(), id)
	if err != nil {
		h.logger.Error("Failed to end session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to end session",
		})
	}
	if !ended {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"session_id": id,
	})
}
