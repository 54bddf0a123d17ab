// Package config loads application settings from Viper with sensible
// defaults. Values come from the config file or PENNYFLOW_ environment
// variables; flags bound by the commands take precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hollis/pennyflow/internal/common"
)

// Config holds everything the server and CLI commands need.
type Config struct {
	DatabasePath string
	ListenAddr   string
	JWTSecret    string
	TokenTTL     time.Duration
}

// Load reads the configuration from Viper.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: viper.GetString("database.path"),
		ListenAddr:   viper.GetString("server.addr"),
		JWTSecret:    viper.GetString("auth.jwt_secret"),
		TokenTTL:     viper.GetDuration("auth.token_ttl"),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "$HOME/.local/share/pennyflow/pennyflow.db"
	}
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return cfg, nil
}

// RequireJWTSecret returns the JWT secret or an error the command can
// surface. Only the server needs it; offline commands work without one.
func (c *Config) RequireJWTSecret() (string, error) {
	if c.JWTSecret == "" {
		return "", fmt.Errorf("%w: auth.jwt_secret (set PENNYFLOW_AUTH_JWT_SECRET)", common.ErrMissingConfig)
	}
	return c.JWTSecret, nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
