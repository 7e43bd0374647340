// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	AppPort                 string `mapstructure:"app_port" validate:"required"`
	DatabaseURL             string `mapstructure:"db_url" validate:"required"`
	FrontendURL             string `mapstructure:"frontend_url"`
	RabbitMQURL             string `mapstructure:"rabbitmq_url" validate:"omitempty,url"`
	LogLevel                string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	ListIncludeAvailability bool   `mapstructure:"list_include_availability"`
}

// Load reads envFile (if it exists) into the process environment and then
// builds the Config from environment variables over defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("DB_URL", "")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LIST_INCLUDE_AVAILABILITY", false)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// FiberLogLevel maps LogLevel onto fiber's logger levels.
func (c *Config) FiberLogLevel() log.Level {
	switch c.LogLevel {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
