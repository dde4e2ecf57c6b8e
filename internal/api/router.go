package api

import (
	"sahayak/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	schemeHandler *handlers.SchemeHandler,
	eligibilityHandler *handlers.EligibilityHandler,
	sessionHandler *handlers.SessionHandler,
	chatHandler *handlers.ChatHandler,
	voiceHandler *handlers.VoiceHandler,
	audioStoragePath string,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Synthesized audio files referenced by response_audio_url
	if audioStoragePath != "" {
		appLogger.Info("Serving synthesized audio", zap.String("path", audioStoragePath))
		app.Static("/api/v1/audio", audioStoragePath)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "sahayak",
		})
	})

	v1 := app.Group("/api/v1")

	schemes := v1.Group("/schemes")
	schemes.Post("/search", schemeHandler.SearchSchemes)
	schemes.Get("", schemeHandler.ListSchemes)
	schemes.Get("/category/:category", schemeHandler.GetSchemesByCategory)
	schemes.Get("/:id", schemeHandler.GetScheme)
	schemes.Get("/:id/summary", schemeHandler.GetSchemeSummary)

	eligibility := v1.Group("/eligibility")
	eligibility.Post("/check", eligibilityHandler.CheckEligibility)
	eligibility.Post("/quick-check", eligibilityHandler.QuickCheck)

	session := v1.Group("/session")
	session.Post("/start", sessionHandler.StartSession)
	session.Get("/stats", sessionHandler.GetStats)
	session.Get("/:id", sessionHandler.GetSession)
	session.Get("/:id/history", sessionHandler.GetHistory)
	session.Delete("/:id", sessionHandler.EndSession)

	chat := v1.Group("/chat")
	chat.Post("/query", chatHandler.Query)

	// Voice routes are registered only when a speech backend is configured.
	if voiceHandler != nil {
		voice := v1.Group("/voice")
		voice.Post("/transcribe", voiceHandler.Transcribe)
		voice.Post("/synthesize", voiceHandler.Synthesize)
	}

	return app
}
