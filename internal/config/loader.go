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
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if BOUNTY_CONFIG is set
//  3. env (prefix BOUNTY_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("BOUNTY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BOUNTY_ADDR, BOUNTY_MAX_SCREENSHOTS, ...
	// Map env keys like BOUNTY_MAX_SCREENSHOTS -> max_screenshots (flat keys),
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("BOUNTY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bounty_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DataFile == "" {
		return fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
	}
	if c.MaxScreenshots < 1 {
		return fmt.Errorf("%w: max_screenshots must be at least 1", ErrInvalidConfig)
	}
	if c.MessageLimit < 200 {
		return fmt.Errorf("%w: message_limit must be at least 200", ErrInvalidConfig)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: page_size must be at least 1", ErrInvalidConfig)
	}
	if c.OCRTimeoutMS < 1 {
		return fmt.Errorf("%w: ocr_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
