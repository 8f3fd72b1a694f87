// Package config loads the listing service settings from .env files and the process environment.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"github.com/theplant/facet"
	"github.com/theplant/facet/gormfilter"
)

const (
	defaultFileName         = ".env"
	defaultOverrideFileName = ".local.env"
)

// Config is the listing service configuration.
type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	LogLevel        zapcore.Level
	FetchTimeout    time.Duration
	Limits          facet.Limits
	MaxFilterFields int
}

// Complexity returns the filter complexity limits derived from MaxFilterFields.
func (c *Config) Complexity() *gormfilter.ComplexityLimits {
	limits := *gormfilter.DefaultLimits
	if c.MaxFilterFields > 0 {
		limits.MaxTotalFields = c.MaxFilterFields
	}
	return &limits
}

// Load reads folder/.env, then folder/.local.env over it; variables already set
// in the process environment take precedence over both files.
// Missing files are fine, unreadable ones are not.
func Load(folder string) (*Config, error) {
	env := map[string]string{}
	for _, name := range []string{defaultFileName, defaultOverrideFileName} {
		content, err := godotenv.Read(filepath.Join(folder, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", name)
		}
		for k, v := range content {
			env[k] = v
		}
	}
	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return env[key]
	}
	return parse(get)
}

func parse(get func(key string) string) (*Config, error) {
	c := &Config{
		HTTPAddr:     or(get("HTTP_ADDR"), ":8080"),
		DatabaseDSN:  get("DATABASE_DSN"),
		FetchTimeout: facet.DefaultFetchTimeout,
	}

	if err := c.LogLevel.UnmarshalText([]byte(or(get("LOG_LEVEL"), "info"))); err != nil {
		return nil, errors.Wrap(err, "LOG_LEVEL")
	}

	if v := get("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrap(err, "FETCH_TIMEOUT")
		}
		if d <= 0 {
			return nil, errors.Errorf("FETCH_TIMEOUT must be positive, got %s", v)
		}
		c.FetchTimeout = d
	}

	defaultLimit, err := intOr(get("DEFAULT_LIMIT"), facet.DefaultLimits.Default)
	if err != nil {
		return nil, errors.Wrap(err, "DEFAULT_LIMIT")
	}
	maxLimit, err := intOr(get("MAX_LIMIT"), max(facet.DefaultLimits.Max, defaultLimit))
	if err != nil {
		return nil, errors.Wrap(err, "MAX_LIMIT")
	}
	if defaultLimit <= 0 || maxLimit < defaultLimit {
		return nil, errors.Errorf("invalid limits: DEFAULT_LIMIT=%d MAX_LIMIT=%d", defaultLimit, maxLimit)
	}
	c.Limits = facet.EnsureLimits(defaultLimit, maxLimit)

	c.MaxFilterFields, err = intOr(get("MAX_FILTER_FIELDS"), 0)
	if err != nil {
		return nil, errors.Wrap(err, "MAX_FILTER_FIELDS")
	}
	return c, nil
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}
