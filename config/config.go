package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string        `env:"DATABASE_URL" envDefault:"file::memory:?cache=shared"`
	Port               string        `env:"PORT" envDefault:"8080"`
	GoEnv              string        `env:"GO_ENV" envDefault:"development"`
	Auth0Domain        string        `env:"AUTH0_DOMAIN"`
	Auth0Audience      string        `env:"AUTH0_AUDIENCE"`
	AWSRegion          string        `env:"AWS_REGION" envDefault:"ap-southeast-1"`
	AWSS3Bucket        string        `env:"AWS_S3_BUCKET"`
	AWSAccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins        []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MockLatency        time.Duration `env:"MOCK_LATENCY" envDefault:"0s"`
	SeedFixtures       bool          `env:"SEED_FIXTURES" envDefault:"true"`
	APIBaseURL         string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	APIToken           string        `env:"API_TOKEN"`
}

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	// Try to load environment-specific file first, then fall back to .env.
	// Variables already set in the environment always win.
	envFile := fmt.Sprintf(".env.%s", goEnv)
	if err := godotenv.Load(envFile); err != nil {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// Validate checks that all configuration values are usable
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if c.MockLatency < 0 {
		return fmt.Errorf("MOCK_LATENCY cannot be negative")
	}
	if (c.Auth0Domain == "") != (c.Auth0Audience == "") {
		return fmt.Errorf("AUTH0_DOMAIN and AUTH0_AUDIENCE must be set together")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// AuthEnabled reports whether JWT validation is configured
func (c *Config) AuthEnabled() bool {
	return c.Auth0Domain != ""
}

// UsesS3 reports whether uploads go to S3 rather than local disk
func (c *Config) UsesS3() bool {
	return c.AWSS3Bucket != ""
}

// GetConfig returns the loaded configuration
func GetConfig() *Config {
	return appConfig
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(cfg *Config) {
	appConfig = cfg
}
