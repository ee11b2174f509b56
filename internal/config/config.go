// internal/config/config.go
//
// Server configuration parsed from environment variables.
// main loads .env via godotenv first, so local development needs no shell
// exports.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr           string `env:"PORT" envDefault:"5175"`
	DBPath         string `env:"DB_PATH" envDefault:"data/globle.db"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"globle_token"`
	Production     bool   `env:"PRODUCTION" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
