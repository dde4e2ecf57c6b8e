package handlers

import (
	"encoding/base64"
	"strings"

	"sahayak/internal/dto"
	"sahayak/internal/models"
	"sahayak/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VoiceHandler struct {
	speech service.SpeechCodec
	logger *zap.Logger
}

func NewVoiceHandler(speech service.SpeechCodec, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		speech: speech,
		logger: logger,
	}
}

// Transcribe godoc
// @Summary Transcribe audio to text
// @Tags voice
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Base64 encoded audio"
// @Success 200 {object} dto.TranscribeResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/voice/transcribe [post]
func (h *VoiceHandler) Transcribe(c *fiber.Ctx) error {
	var req dto.TranscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil || len(audio) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "audio_base64 must be valid base64 audio data",
		})
	}

	format := req.AudioFormat
	if format == "" {
		format = models.AudioWAV
	}
	lang := req.Language
	if lang == "" {
		lang = "hi"
	}

	transcription, err := h.speech.Transcribe(c.Context(), audio, format, lang)
	if err != nil {
		h.logger.Error("Transcription failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to transcribe audio",
		})
	}

	return c.JSON(dto.TranscribeResponse{
		Success:    true,
		Text:       transcription.Text,
		Language:   transcription.Language,
		Confidence: transcription.Confidence,
	})
}

// Synthesize godoc
// @Summary Synthesize text to speech
// @Tags voice
// @Accept json
// @Produce json
// @Param request body dto.SynthesizeRequest true "Text to speak"
// @Success 200 {object} dto.SynthesizeResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/voice/synthesize [post]
func (h *VoiceHandler) Synthesize(c *fiber.Ctx) error {
	var req dto.SynthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	lang := req.Language
	if lang == "" {
		lang = "hi"
	}

	audio, err := h.speech.Synthesize(c.Context(), req.Text, lang, req.VoiceGender, req.SpeechRate)
	if err != nil {
		h.logger.Error("Synthesis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to synthesize speech",
		})
	}

	return c.JSON(dto.SynthesizeResponse{
		Success:         true,
		AudioURL:        audio.AudioURL,
		DurationSeconds: audio.DurationSeconds,
		Format:          audio.Format,
		SizeBytes:       audio.SizeBytes,
	})
}
