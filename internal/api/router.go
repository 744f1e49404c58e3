// Package api wires the HTTP surface of the mailroom backend
package api

import (
	"log/slog"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mailroomhq/mailroom-backend/internal/api/handlers"
	"github.com/mailroomhq/mailroom-backend/internal/api/middleware"
	"github.com/mailroomhq/mailroom-backend/internal/notification"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
	"github.com/mailroomhq/mailroom-backend/internal/services"
	"github.com/mailroomhq/mailroom-backend/internal/websocket"
	"gorm.io/gorm"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB            *gorm.DB
	Notifications *notification.Center
	Hub           *websocket.Hub
	Logger        *slog.Logger
	// Lifecycle configuration
	DefaultCarrier string // Carrier assigned when a shipped transition names none
	// Security configuration
	APIKey         string   // API key for authentication (empty = disabled)
	AllowedOrigins []string // Allowed CORS origins
	RateLimit      int      // Requests per second (0 = use env default)
	RateBurst      int      // Burst size for rate limiter
	EnableAuth     bool     // Enable API key authentication
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Security Middleware (applied in correct order)
	// 1. Recover from panics
	e.Use(middleware.Recover())

	// 2. Security headers (applied to all responses)
	e.Use(middleware.SecureHeaders())

	// 3. CORS - Set environment variable if origins provided in config
	if len(cfg.AllowedOrigins) > 0 {
		os.Setenv("ALLOWED_ORIGINS", strings.Join(cfg.AllowedOrigins, ","))
	}
	e.Use(middleware.SecureCORS())

	// 4. Rate limiting - use RateLimiterWithConfig if custom values provided
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(float64(cfg.RateLimit), cfg.RateBurst, cfg.Logger))
	} else {
		e.Use(middleware.RateLimiter(cfg.Logger))
	}

	// 5. Request logging
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Initialize repositories
	mailRepo := repository.NewMailRepository(cfg.DB)
	employeeRepo := repository.NewEmployeeRepository(cfg.DB)

	// Initialize services
	mailService := services.NewMailService(mailRepo, cfg.Notifications, cfg.DefaultCarrier, cfg.Logger)
	searchService := services.NewSearchService(mailRepo)
	timelineService := services.NewTimelineService(mailRepo)
	statsService := services.NewStatsService(mailRepo, cfg.Notifications)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	mailHandler := handlers.NewMailHandler(mailRepo, mailService, searchService, timelineService)
	notificationHandler := handlers.NewNotificationHandler(cfg.Notifications)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// Notification push feed
	if cfg.Hub != nil {
		upgrader := websocket.NewSecureUpgrader(cfg.AllowedOrigins, cfg.Logger)
		wsHandler := handlers.NewWSHandler(cfg.Hub, upgrader, cfg.Logger)
		e.GET("/ws", wsHandler.Connect)
	}

	// API routes
	api := e.Group("/api")

	// Apply API key authentication if enabled
	// Set API_KEY env var if provided in config
	if cfg.EnableAuth && cfg.APIKey != "" {
		os.Setenv("API_KEY", cfg.APIKey)
	}
	api.Use(middleware.APIKeyAuth(cfg.Logger))

	// Mail routes
	mail := api.Group("/mail")
	mail.POST("/incoming", mailHandler.CreateIncoming)
	mail.POST("/outgoing", mailHandler.CreateOutgoing)
	mail.GET("", mailHandler.List)
	mail.GET("/search", mailHandler.Search)
	mail.GET("/:id", mailHandler.Get)
	mail.POST("/:id/transition", mailHandler.Transition)
	mail.GET("/:id/timeline", mailHandler.Timeline)

	// Notification routes
	notifications := api.Group("/notifications")
	notifications.GET("", notificationHandler.List)
	notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/clear", notificationHandler.ClearAll)

	// Employee directory routes
	api.GET("/employees", employeeHandler.List)

	// Dashboard stats
	api.GET("/stats", statsHandler.Dashboard)

	return e
}
