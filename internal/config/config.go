package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vrtu/musharaka/internal/calculations"
	"github.com/vrtu/musharaka/pkg/utils"
)

// Config holds the server configuration
type Config struct {
	Port                 int
	LogLevel             string
	MaxPropertyPrice     float64
	MaxAdditionalPayment float64
	MaxBedrooms          int
	ConventionalRate     float64
	OTELEndpoint         string
	OTELServiceName      string
	DatabaseURL          string
	RedisAddr            string
	CacheTTL             time.Duration
	CORSOrigins          []string
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnvInt("PORT", 8000),
		LogLevel:             getEnvString("LOG_LEVEL", "INFO"),
		MaxPropertyPrice:     getEnvFloat("MAX_PROPERTY_PRICE", 1e9),
		MaxAdditionalPayment: getEnvFloat("MAX_ADDITIONAL_PAYMENT", 1e8),
		MaxBedrooms:          getEnvInt("MAX_BEDROOMS", 50),
		ConventionalRate:     getEnvFloat("CONVENTIONAL_RATE", calculations.DefaultConventionalRate),
		OTELEndpoint:         getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:      getEnvString("OTEL_SERVICE_NAME", "musharaka-calculator"),
		DatabaseURL:          getEnvString("DATABASE_URL", ""),
		RedisAddr:            getEnvString("REDIS_ADDR", ""),
		CacheTTL:             time.Duration(getEnvInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
		CORSOrigins:          getEnvList("CORS_ORIGINS", []string{"*"}),
	}

	if !utils.IsFinite(cfg.ConventionalRate) || cfg.ConventionalRate < 0 || cfg.ConventionalRate > 1 {
		return nil, fmt.Errorf("CONVENTIONAL_RATE must be a fraction in [0; 1], got %v", cfg.ConventionalRate)
	}

	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.SlogLevel()}))
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
