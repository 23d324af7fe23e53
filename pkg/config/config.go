package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Theme    ThemeConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.ensurePath(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BOOKHAVEN_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"BOOKHAVEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOKHAVEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Path string `envconfig:"BOOKHAVEN_STORAGE_PATH"`

	MaxOpenConns    int           `envconfig:"BOOKHAVEN_STORAGE_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"BOOKHAVEN_STORAGE_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"BOOKHAVEN_STORAGE_CONN_MAX_LIFETIME" default:"1h"`
}

type ThemeConfig struct {
	Default string `envconfig:"BOOKHAVEN_THEME_DEFAULT" default:"light"`
}

// DefaultDark reports whether the configured default theme is the dark variant.
func (t ThemeConfig) DefaultDark() bool {
	return strings.EqualFold(strings.TrimSpace(t.Default), "dark")
}

type CheckoutConfig struct {
	ResetDelay time.Duration `envconfig:"BOOKHAVEN_CHECKOUT_RESET_DELAY" default:"3s"`
}

func (s *StorageConfig) ensurePath() error {
	if s.Path != "" {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("either %s or a resolvable home directory is required: %w", EnvStoragePath, err)
	}

	s.Path = filepath.Join(home, ".bookhaven", "bookhaven.db")
	return nil
}
