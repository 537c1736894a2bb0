package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config agrupa la configuración de runtime, toda desde env vars.
type Config struct {
	Port               string
	MarketplaceBaseURL string
	JWTSecret          string
	HTTPTimeout        time.Duration
}

// Load lee la configuración del environment con validación mínima.
func Load() (Config, error) {
	cfg := Config{
		Port:               fallback(os.Getenv("PORT"), "8080"),
		MarketplaceBaseURL: strings.TrimSpace(os.Getenv("MARKETPLACE_BASE_URL")),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}

	seconds := fallback(os.Getenv("HTTP_TIMEOUT_SECONDS"), "10")
	if n, err := strconv.Atoi(seconds); err == nil && n > 0 {
		cfg.HTTPTimeout = time.Duration(n) * time.Second
	} else {
		cfg.HTTPTimeout = 10 * time.Second
	}

	if cfg.MarketplaceBaseURL == "" {
		return Config{}, errors.New("MARKETPLACE_BASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress devuelve el host:port donde escucha el server.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
