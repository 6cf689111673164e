// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration.
type Config struct {
	SpannerDB       string        `envconfig:"SPANNER_DATABASE" default:"projects/test-project/instances/dev-instance/databases/storefront-db"`
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:"8080"`
	CatalogBaseURL  string        `envconfig:"CATALOG_BASE_URL"  default:"http://localhost:8000/api"`
	PaymentsBaseURL string        `envconfig:"PAYMENTS_BASE_URL" default:"http://localhost:8000/api"`
	SuccessURL      string        `envconfig:"CHECKOUT_SUCCESS_URL" default:"http://localhost:3000/checkout/success"`
	CancelURL       string        `envconfig:"CHECKOUT_CANCEL_URL"  default:"http://localhost:3000/cart"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	CartTTL         time.Duration `envconfig:"CART_TTL"  default:"720h"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load(logger *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Warn("error loading .env file, continuing")
		}
	} else {
		logger.Info("loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LogrusLevel parses the configured level, falling back to info.
func (c *Config) LogrusLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
