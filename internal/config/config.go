package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Forward  ForwardConfig
	Webhook  WebhookConfig
	AppEnv   string
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type ForwardConfig struct {
	EndpointURL string
	TimeoutMS   int
}

type WebhookConfig struct {
	Secret      string // empty disables signature verification
	LogPayloads bool   // raw payload logging, honored in development only
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Forward: ForwardConfig{
			EndpointURL: getEnv("ACCOUNTING_API_URL", ""),
			TimeoutMS:   getEnvAsInt("FORWARD_TIMEOUT_MS", 5000),
		},
		Webhook: WebhookConfig{
			Secret:      getEnv("WEBHOOK_SECRET", ""),
			LogPayloads: getEnvAsBool("LOG_PAYLOADS", false),
		},
		AppEnv:   getEnv("APP_ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Forward.EndpointURL == "" {
		return fmt.Errorf("ACCOUNTING_API_URL is required")
	}
	if _, err := url.ParseRequestURI(c.Forward.EndpointURL); err != nil {
		return fmt.Errorf("ACCOUNTING_API_URL is not a valid URL: %w", err)
	}

	if c.Forward.TimeoutMS <= 0 {
		return fmt.Errorf("FORWARD_TIMEOUT_MS must be positive")
	}

	if c.AppEnv != "production" && c.AppEnv != "development" {
		return fmt.Errorf("invalid app env: %s (must be production or development)", c.AppEnv)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Development reports whether the service runs in development mode.
// Development mode disables outbound TLS verification and exposes error
// details in 500 responses.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
