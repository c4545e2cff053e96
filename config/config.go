package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Authentication providers.
const (
	AuthProviderStatic = "static"
	AuthProviderKratos = "kratos"
)

// minTokenSecretBytes is the HS256 key size floor.
const minTokenSecretBytes = 32

// Config holds the application configuration
type Config struct {
	Port     string `env:"PORT" envDefault:"8888"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CatalogBaseURL   string        `env:"CATALOG_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	CatalogTimeout   time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	CatalogRateLimit float64       `env:"CATALOG_RATE_LIMIT" envDefault:"0"` // requests per second, 0 disables
	CatalogRateBurst int           `env:"CATALOG_RATE_BURST" envDefault:"10"`

	AuthProvider string `env:"AUTH_PROVIDER" envDefault:"static"`
	AuthUsers    string `env:"AUTH_USERS" envDefault:"test:test"` // user:password pairs, comma separated

	TokenSecret     string `env:"TOKEN_SECRET"`
	TokenSecretFile string `env:"TOKEN_SECRET_FILE,file"`
	TokenIssuer     string `env:"TOKEN_ISSUER" envDefault:"pokedex-hub"`

	KratosURL     string        `env:"KRATOS_URL" envDefault:"http://kratos:4433"`
	KratosTimeout time.Duration `env:"KRATOS_TIMEOUT" envDefault:"5s"`

	RateLimitPerMinute      int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	LoginRateLimitPerMinute int `env:"LOGIN_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// A mounted secret file wins over the plain variable
	if secret := strings.TrimSpace(cfg.TokenSecretFile); secret != "" {
		cfg.TokenSecret = secret
	}
	cfg.TokenSecretFile = ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT cannot be empty")
	}

	u, err := url.Parse(c.CatalogBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CATALOG_BASE_URL must be an absolute URL, got %q", c.CatalogBaseURL)
	}

	if c.CatalogTimeout <= 0 {
		return errors.New("CATALOG_TIMEOUT must be positive")
	}

	if c.CatalogRateLimit < 0 {
		return errors.New("CATALOG_RATE_LIMIT cannot be negative")
	}

	if c.RateLimitPerMinute <= 0 || c.LoginRateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE and LOGIN_RATE_LIMIT_PER_MINUTE must be positive")
	}

	switch c.AuthProvider {
	case AuthProviderStatic:
		if len(c.TokenSecret) < minTokenSecretBytes {
			return fmt.Errorf("TOKEN_SECRET must be at least %d bytes", minTokenSecretBytes)
		}
	case AuthProviderKratos:
		if c.KratosURL == "" {
			return errors.New("KRATOS_URL cannot be empty")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be %q or %q, got %q", AuthProviderStatic, AuthProviderKratos, c.AuthProvider)
	}

	return nil
}
