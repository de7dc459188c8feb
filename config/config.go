package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"p9e.in/brokerdesk/pkg/tabular"
)

var DB *gorm.DB

func Connect() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
}

// ListConfig builds the pagination settings for the tabular query service.
// Explicit struct rather than ambient env reads inside the service itself.
func ListConfig() tabular.Config {
	cfg := tabular.Config{DefaultPageSize: 10, MaxPageSize: 100}
	if v, err := strconv.Atoi(os.Getenv("LIST_DEFAULT_PAGE_SIZE")); err == nil && v > 0 {
		cfg.DefaultPageSize = v
	}
	if v, err := strconv.Atoi(os.Getenv("LIST_MAX_PAGE_SIZE")); err == nil && v > 0 {
		cfg.MaxPageSize = v
	}
	return cfg
}
