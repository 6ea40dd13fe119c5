package main

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/adness/starburst/pkg/db"
	"github.com/adness/starburst/pkg/logger"
	"github.com/adness/starburst/pkg/redis"
)

const envDevelopment = "development"

// Config is parsed from environment variables. An optional YAML file holds
// the same keys; the process environment takes precedence over it.
type Config struct {
	Env          string `env:"STARBURST_ENV" envDefault:"production"`
	Address      string `env:"ADDRESS" envDefault:":3000"`
	CookieSecret string `env:"COOKIE_SECRET"`
	PublicDir    string `env:"PUBLIC_DIR"`
	AssetsDir    string `env:"ASSETS_DIR"`
	ContentDir   string `env:"CONTENT_DIR"`
	TrustProxy   bool   `env:"TRUST_PROXY" envDefault:"false"`

	Redis    redis.Config
	Database db.Config
	Sentry   logger.SentryConfig
}

var ErrNoCookieSecret = errors.New("config: COOKIE_SECRET is required outside development")

// devCookieSecret signs cookies in development when none is configured.
const devCookieSecret = "starburst-development-cookie-secret"

// Development reports whether the diagnostic error page is enabled.
func (c Config) Development() bool {
	return c.Env == envDevelopment
}

// loadConfig merges the file at path (when set) under environ and parses
// the result.
func loadConfig(path string, environ map[string]string) (Config, error) {
	vars := make(map[string]string)
	if path != "" {
		file, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		maps.Copy(vars, file)
	}
	maps.Copy(vars, environ)

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.Sentry.Environment == "" {
		cfg.Sentry.Environment = cfg.Env
	}
	if cfg.CookieSecret == "" {
		if !cfg.Development() {
			return Config{}, ErrNoCookieSecret
		}
		cfg.CookieSecret = devCookieSecret
	}
	return cfg, nil
}

// readConfigFile decodes a flat YAML mapping of environment keys.
func readConfigFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case nil:
			continue
		case map[string]any, []any:
			return nil, fmt.Errorf("config: parse %s: %s must be a scalar", path, k)
		}
		vars[k] = fmt.Sprint(v)
	}
	return vars, nil
}
