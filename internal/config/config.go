package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

// DefaultAdminPassword is the well-known seed credential. It exists for parity
// with the original deployment and is a standing security concern: any
// production install must override ADMIN_PASSWORD.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type Config struct {
	Port             int    `env:"PORT" envDefault:"8080"`
	DatabaseURL      string `env:"DATABASE_URL,required"`
	RedisURL         string `env:"REDIS_URL,required"`
	AdminUsername    string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword    string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	SessionTTLHours  int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
	StaticDir        string `env:"STATIC_DIR" envDefault:"static"`
	FormRateLimit    int    `env:"FORM_RATE_LIMIT_PER_MIN" envDefault:"5"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	MinPasswordChars int    `env:"MIN_PASSWORD_CHARS" envDefault:"6"`
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	if c.MinPasswordChars < 1 {
		return fmt.Errorf("MIN_PASSWORD_CHARS must be positive")
	}

	if c.AdminPassword == DefaultAdminPassword {
		if isProduction {
			log.Warn().Msg("ADMIN_PASSWORD is the well-known default in production: set a strong password")
		} else {
			log.Warn().Msg("ADMIN_PASSWORD is the well-known default; fine for local development only")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
