package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PROMOCAL_CONFIG is set
//  3. env (prefix PROMOCAL_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PROMOCAL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PROMOCAL_ADDR, PROMOCAL_DB_PATH, ...
	// Map env keys like PROMOCAL_SESSION_TTL_HOURS -> session_ttl_hours,
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("PROMOCAL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "promocal_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.SessionTTLHours <= 0 {
		return nil, fmt.Errorf("%w: session_ttl_hours must be positive", ErrInvalidConfig)
	}
	if cfg.LLMTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: llm_timeout_seconds must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
