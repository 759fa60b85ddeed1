package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// RateLimit is a limiter format string like "100-M" (100 requests per minute).
	RateLimit string

	// CORSAllowedOrigins lists the origins allowed by the CORS middleware.
	CORSAllowedOrigins []string

	// StalePendingAfter is how long a PENDING ledger entry may sit before the
	// sweeper fails it.
	StalePendingAfter time.Duration

	// SweepInterval is how often the stale-pending sweeper runs.
	SweepInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("STALE_PENDING_AFTER", "15m")
	viper.SetDefault("SWEEP_INTERVAL", "5m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	stalePendingStr := viper.GetString("STALE_PENDING_AFTER")
	stalePendingAfter, err := time.ParseDuration(stalePendingStr)
	if err != nil {
		stalePendingAfter = 15 * time.Minute
		log.Printf("Warning: Invalid value for STALE_PENDING_AFTER ('%s'). Defaulting to %s.\n", stalePendingStr, stalePendingAfter)
	}
	cfg.StalePendingAfter = stalePendingAfter

	sweepIntervalStr := viper.GetString("SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepIntervalStr)
	if err != nil {
		sweepInterval = 5 * time.Minute
		log.Printf("Warning: Invalid value for SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepIntervalStr, sweepInterval)
	}
	cfg.SweepInterval = sweepInterval

	return cfg, nil
}
