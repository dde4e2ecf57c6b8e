package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sahayak/internal/api"
	"sahayak/internal/api/handlers"
	"sahayak/internal/repository"
	"sahayak/internal/service"
	"sahayak/pkg/config"
	"sahayak/pkg/logger"

	"go.uber.org/zap"
)

// @title Sahayak API
// @version 1.0
// @description Voice-first assistant for discovering Indian government welfare schemes
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@sahayak.in

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Sahayak service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the scheme catalog
	catalog, err := repository.NewSchemeCatalog(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load scheme catalog", zap.Error(err))
	}
	appLogger.Info("Scheme catalog loaded", zap.Int("schemes", catalog.Count()))

	// Session store
	var sessionRepo repository.SessionRepository
	switch cfg.Session.Store {
	case "redis":
		sessionRepo, err = repository.NewRedisSessionRepository(
			ctx, cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB, cfg.Session.TTL, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	default:
		sessionRepo = repository.NewMemorySessionRepository(appLogger)
	}
	defer sessionRepo.Close()

	// Initialize services
	sessionService := service.NewSessionService(sessionRepo, cfg.Session.TTL, cfg.Session.MaxSessions, appLogger)
	go sessionService.RunSweeper(ctx, cfg.Session.SweepInterval)

	matcherService := service.NewMatcherService(catalog, cfg.Matcher, appLogger)
	eligibilityService := service.NewEligibilityService(catalog, appLogger)
	recommendationService := service.NewRecommendationService(appLogger)
	schemeService := service.NewSchemeService(catalog, matcherService, eligibilityService, recommendationService, appLogger)

	dialogueService, err := service.NewDialogueService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dialogue service", zap.Error(err))
	}
	defer dialogueService.Close()

	// Speech is optional: without GCP credentials the service runs text only.
	var speechCodec service.SpeechCodec
	var voiceHandler *handlers.VoiceHandler
	if cfg.Speech.CredentialsFile != "" {
		speechService, err := service.NewSpeechService(&cfg.Speech, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize speech service", zap.Error(err))
		}
		defer speechService.Close()
		speechCodec = speechService
		voiceHandler = handlers.NewVoiceHandler(speechCodec, appLogger)
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if _, err := speechService.CleanupOldFiles(); err != nil {
						appLogger.Warn("Audio cleanup failed", zap.Error(err))
					}
				}
			}
		}()
	} else {
		appLogger.Warn("GOOGLE_APPLICATION_CREDENTIALS not set, voice endpoints disabled")
	}

	chatService := service.NewChatService(sessionService, matcherService, dialogueService, speechCodec, cfg, appLogger)

	// Initialize handlers
	schemeHandler := handlers.NewSchemeHandler(schemeService, dialogueService, appLogger)
	eligibilityHandler := handlers.NewEligibilityHandler(schemeService, appLogger)
	sessionHandler := handlers.NewSessionHandler(chatService, sessionService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)

	// Setup router
	app := api.SetupRouter(schemeHandler, eligibilityHandler, sessionHandler, chatHandler, voiceHandler, cfg.Speech.AudioStoragePath, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	cancel()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
