package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mailroomhq/mailroom-backend/internal/api"
	"github.com/mailroomhq/mailroom-backend/internal/config"
	"github.com/mailroomhq/mailroom-backend/internal/database"
	"github.com/mailroomhq/mailroom-backend/internal/notification"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
	"github.com/mailroomhq/mailroom-backend/internal/services"
	"github.com/mailroomhq/mailroom-backend/internal/smtp"
	"github.com/mailroomhq/mailroom-backend/internal/websocket"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Mailroom Backend Server...")

	// Load configuration
	cfg, err := config.LoadWithValidation()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg.LogConfig(logger)

	// Connect to the store and run migrations
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.SeedEmployees(db); err != nil {
		slog.Error("failed to seed employee directory", slog.Any("error", err))
		os.Exit(1)
	}

	// Notification center and push hub
	center := notification.NewCenter(logger)
	hub := websocket.NewHub(logger)
	center.SetBroadcaster(hub)
	go hub.Run()

	// HTTP server
	e := api.NewRouter(&api.RouterConfig{
		DB:             db,
		Notifications:  center,
		Hub:            hub,
		Logger:         logger,
		DefaultCarrier: cfg.DefaultCarrier,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.Origins(),
		RateLimit:      int(cfg.RateLimitRequests),
		RateBurst:      cfg.RateLimitBurst,
		EnableAuth:     cfg.APIKey != "",
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		if err := e.Start(addr); err != nil && !strings.Contains(err.Error(), "Server closed") {
			slog.Error("HTTP server stopped", slog.Any("error", err))
		}
	}()

	// SMTP manifest intake
	var smtpServer interface{ Close() error }
	if cfg.IntakeEnabled {
		mailRepo := repository.NewMailRepository(db)
		mailService := services.NewMailService(mailRepo, center, cfg.DefaultCarrier, logger)

		smtpCfg := smtp.LoadServerConfigFromEnv()
		smtpCfg.Addr = fmt.Sprintf(":%d", cfg.SMTPPort)

		server := smtp.NewSecureServer(smtp.NewBackend(mailService, logger), smtpCfg)
		smtpServer = server

		go func() {
			slog.Info("SMTP intake listening", slog.String("addr", smtpCfg.Addr))
			if err := server.ListenAndServe(); err != nil {
				slog.Error("SMTP server stopped", slog.Any("error", err))
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down HTTP server", slog.Any("error", err))
	}
	if smtpServer != nil {
		if err := smtpServer.Close(); err != nil {
			slog.Error("failed to shut down SMTP server", slog.Any("error", err))
		}
	}

	slog.Info("Server stopped")
}

// parseLogLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
