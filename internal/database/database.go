package database

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mailroomhq/mailroom-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection pool configuration
const (
	DefaultMaxIdleConns    = 10
	DefaultMaxOpenConns    = 100
	DefaultConnMaxLifetime = time.Hour
	DefaultConnMaxIdleTime = 10 * time.Minute
)

// Connect establishes the database connection. An empty databaseURL selects
// the embedded in-memory SQLite store; a postgres:// URL selects PostgreSQL.
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return connectMemory()
	}

	// Validate SSL mode in production
	env := os.Getenv("APP_ENV")
	if env == "production" {
		if err := validateSSLMode(databaseURL); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	slog.Info("Connected to database successfully")
	return db, nil
}

// connectMemory opens the embedded in-memory store. The connection pool is
// pinned to a single connection so every session sees the same database.
func connectMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db.Exec("PRAGMA foreign_keys = ON")

	slog.Info("Using embedded in-memory store")
	return db, nil
}

// validateSSLMode ensures SSL is enabled in production
func validateSSLMode(databaseURL string) error {
	if strings.Contains(databaseURL, "sslmode=disable") {
		return fmt.Errorf("SSL mode cannot be disabled in production")
	}
	return nil
}

// configureConnectionPool sets up connection pool limits
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(DefaultMaxIdleConns)
	sqlDB.SetMaxOpenConns(DefaultMaxOpenConns)
	sqlDB.SetConnMaxLifetime(DefaultConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(DefaultConnMaxIdleTime)

	return nil
}

// Migrate runs auto-migration for all models
func Migrate(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.MailItem{},
		&models.TimelineEvent{},
		&models.Employee{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

// defaultEmployees is the directory seeded into an empty database
var defaultEmployees = []models.Employee{
	{Name: "John Smith", Department: "Finance", Email: "john.smith@company.com"},
	{Name: "Sarah Johnson", Department: "Legal", Email: "sarah.johnson@company.com"},
	{Name: "Mike Davis", Department: "HR", Email: "mike.davis@company.com"},
	{Name: "Emily Chen", Department: "Marketing", Email: "emily.chen@company.com"},
	{Name: "David Wilson", Department: "IT", Email: "david.wilson@company.com"},
	{Name: "Lisa Anderson", Department: "Operations", Email: "lisa.anderson@company.com"},
	{Name: "Robert Brown", Department: "Finance", Email: "robert.brown@company.com"},
	{Name: "Jennifer Garcia", Department: "HR", Email: "jennifer.garcia@company.com"},
	{Name: "Michael Taylor", Department: "Legal", Email: "michael.taylor@company.com"},
	{Name: "Amanda Martinez", Department: "Marketing", Email: "amanda.martinez@company.com"},
}

// SeedEmployees populates the employee directory if it is empty
func SeedEmployees(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Employee{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}
	if count > 0 {
		return nil
	}

	employees := make([]models.Employee, len(defaultEmployees))
	copy(employees, defaultEmployees)
	if err := db.Create(&employees).Error; err != nil {
		return fmt.Errorf("failed to seed employees: %w", err)
	}

	slog.Info("Seeded employee directory", slog.Int("count", len(defaultEmployees)))
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
