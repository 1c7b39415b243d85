package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds overrides read from the environment.
type Env struct {
	User       string `env:"FILC_USER"`
	ConfigPath string `env:"FILC_CONFIG"`
	DBPath     string `env:"FILC_DB"`
	LogLevel   string `env:"FILC_LOG_LEVEL"`
	NoColor    string `env:"NO_COLOR"`
}

// LoadEnv parses the FILC_* environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ConfigPathOr returns the config path override or def.
func (e Env) ConfigPathOr(def string) string {
	if e.ConfigPath != "" {
		return e.ConfigPath
	}
	return def
}

// DBPathOr returns the database path override or def.
func (e Env) DBPathOr(def string) string {
	if e.DBPath != "" {
		return e.DBPath
	}
	return def
}

// ColorDisabled follows the NO_COLOR convention: any non-empty value disables color.
func (e Env) ColorDisabled() bool {
	return e.NoColor != ""
}
