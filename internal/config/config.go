// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

// Package config loads server configuration from defaults, an optional
// YAML file, environment variables, and command-line flags, in that
// order of precedence (later sources win).
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config holds all settings for the wordhoard server.
type Config struct {
	// Listen is the HTTP API listen address.
	Listen string `koanf:"listen" json:"listen,omitempty" jsonschema:"default=:8000,description=HTTP API listen address"`

	// MetricsListen is the observability server listen address.
	// Empty disables the observability server.
	MetricsListen string `koanf:"metrics_listen" json:"metrics_listen,omitempty" jsonschema:"description=Metrics and health probe listen address (empty disables)"`

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `koanf:"database_url" json:"database_url,omitempty" jsonschema:"description=PostgreSQL connection URL"`

	// TokenSecret signs and verifies bearer tokens. Required.
	TokenSecret string `koanf:"token_secret" json:"token_secret,omitempty" jsonschema:"description=HMAC secret for bearer tokens"`

	// TokenTTL is the bearer token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl" json:"token_ttl,omitempty" jsonschema:"type=string,description=Bearer token lifetime as a Go duration,default=24h"`

	// LogFormat is "json" or "text".
	LogFormat string `koanf:"log_format" json:"log_format,omitempty" jsonschema:"enum=json,enum=text,default=json"`
}

// defaults returns the baseline configuration.
func defaults() Config {
	return Config{
		Listen:    ":8000",
		TokenTTL:  24 * time.Hour,
		LogFormat: "json",
	}
}

// Validate checks that the configuration is complete enough to start.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return oops.Code("CONFIG_INVALID").Errorf("listen address is required")
	}
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database URL is required")
	}
	if c.TokenSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("token secret is required")
	}
	if c.TokenTTL <= 0 {
		return oops.Code("CONFIG_INVALID").With("token_ttl", c.TokenTTL.String()).Errorf("token TTL must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").With("log_format", c.LogFormat).Errorf("log format must be json or text")
	}
	return nil
}

// envOverrides maps environment variables onto config keys. DATABASE_URL
// matches the conventional name used by hosting platforms.
var envOverrides = map[string]string{
	"DATABASE_URL":           "database_url",
	"WORDHOARD_TOKEN_SECRET": "token_secret",
	"WORDHOARD_LISTEN":       "listen",
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty or the file does not exist), environment variables, and
// finally flags. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Missing config files are fine; env and flags can carry everything.
		case err != nil:
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		default:
			if err := ValidateSchema(data); err != nil {
				return Config{}, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
			}
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
			}
		}
	}

	for env, key := range envOverrides {
		if v := os.Getenv(env); v != "" {
			if err := k.Set(key, v); err != nil {
				return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("env", env).Wrap(err)
			}
		}
	}

	if flags != nil {
		// Flag names use dashes, config keys use underscores.
		p := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
			return strings.ReplaceAll(key, "-", "_"), value
		})
		if err := k.Load(p, nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
