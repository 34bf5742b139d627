package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	EnvProject  = "GITSNAP_PROJECT"
	EnvLogLevel = "GITSNAP_LOG_LEVEL"
	EnvStyle    = "GITSNAP_STYLE"

	DefaultProjectPath = "."
	DefaultLogLevel    = "warn"
	DefaultStyle       = "catppuccin-frappe"
)

// AppConfig はアプリケーション全体の設定を保持します
type AppConfig struct {
	ProjectPath string
	LogLevel    string
	Style       string
}

// LoadConfig は環境変数からアプリケーションの設定を読み込みます
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		ProjectPath: envOr(EnvProject, DefaultProjectPath),
		LogLevel:    envOr(EnvLogLevel, DefaultLogLevel),
		Style:       envOr(EnvStyle, DefaultStyle),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags may have overridden.
func (c *AppConfig) Validate() error {
	if c.ProjectPath == "" {
		return fmt.Errorf("project path must not be empty")
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
