package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. VGSALES_PORT.
const Prefix = "VGSALES"

// Config holds everything the server and CLI need to run.
type Config struct {
	DataFile string `envconfig:"DATA_FILE" default:"./vgsales.csv" validate:"required"`
	Port     int    `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error off"`

	PublisherThreshold int  `envconfig:"PUBLISHER_THRESHOLD" default:"100" validate:"min=0"`
	PlatformThreshold  int  `envconfig:"PLATFORM_THRESHOLD" default:"20" validate:"min=0"`
	TopK               int  `envconfig:"TOP_K" default:"10" validate:"min=1"`
	SeriesWrapAround   bool `envconfig:"SERIES_WRAP_AROUND" default:"true"`

	// RateLimitRPS of 0 disables the limiter.
	RateLimitRPS float64  `envconfig:"RATE_LIMIT_RPS" default:"20" validate:"min=0"`
	CORSOrigins  []string `envconfig:"CORS_ORIGINS" default:"*" validate:"min=1"`
}

// Load reads an optional .env file, then the environment, and validates
// the result. Variables already set in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
