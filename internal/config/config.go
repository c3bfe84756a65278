package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all externally supplied settings, loaded once at startup and
// passed by reference to the components that need them.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	AllowedOrigin string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

const (
	defaultPort   = "8080"
	defaultDBPath = "app.db"
	defaultOrigin = "http://localhost:5173"
)

// Load reads configuration from the environment. The signing secret is
// required; everything else falls back to a sane default.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("FRONTEND_URL", defaultOrigin)

	cfg := &Config{
		Port:          v.GetString("PORT"),
		DBPath:        v.GetString("DB_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		AllowedOrigin: v.GetString("FRONTEND_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}
