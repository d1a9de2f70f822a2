package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-insecure-change-me"

// CORS lists the cross-origin options. "*" allows everything.
type CORS struct {
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
	AllowedMethods   []string `env:"ALLOWED_METHODS" envDefault:"*"`
	AllowedHeaders   []string `env:"ALLOWED_HEADERS" envDefault:"*"`
	AllowCredentials bool     `env:"ALLOW_CREDENTIALS" envDefault:"true"`
}

// Service holds the settings every HTTP service shares.
type Service struct {
	ServerPort int    `env:"PORT"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	CORS       CORS   `envPrefix:"CORS_"`
}

// Production reports whether APP_ENV is "production".
func (s Service) Production() bool {
	return s.AppEnv == "production"
}

// Config holds the backend configuration.
type Config struct {
	Service

	DatabaseURL              string `env:"DATABASE_URL" envDefault:"sqlite:///./cortexai_dev.db"`
	JWTSecret                string `env:"JWT_SECRET"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"60"`
	BcryptCost               int    `env:"BCRYPT_COST" envDefault:"10"`
}

// AccessTokenTTL is the lifetime of issued bearer tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// Load loads the backend configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Service:   Service{ServerPort: 8000},
		JWTSecret: DefaultJWTSecret,
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadService loads the shared settings of a standalone service listening
// on defaultPort unless PORT says otherwise.
func LoadService(defaultPort int) (*Service, error) {
	cfg := &Service{ServerPort: defaultPort}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Service) validate() error {
	if s.ServerPort <= 0 || s.ServerPort > 65535 {
		return fmt.Errorf("invalid PORT %d", s.ServerPort)
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Service.validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Production() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %d", c.AccessTokenExpireMinutes)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("invalid BCRYPT_COST %d", c.BcryptCost)
	}
	return nil
}
