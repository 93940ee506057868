package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const weightSumEpsilon = 1e-9

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SERENE_CONFIG is set
//  3. env (prefix SERENE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SERENE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SERENE_ADDR, SERENE_URGENCY_HIGH, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SERENE_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "serene_")
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

// validate rejects configurations the engine's invariants forbid.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	sum := c.RelevanceWeight + c.PersonalizationWeight + c.EffectivenessWeight + c.VarietyWeight
	if math.Abs(sum-1.0) >= weightSumEpsilon {
		return fmt.Errorf("%w: scoring weights sum to %.4f, want 1.0", ErrInvalidConfig, sum)
	}
	if c.RelevanceWeight < 0 || c.PersonalizationWeight < 0 || c.EffectivenessWeight < 0 || c.VarietyWeight < 0 {
		return fmt.Errorf("%w: scoring weights must be non-negative", ErrInvalidConfig)
	}
	if c.SecondaryThreshold < 0 || c.SecondaryThreshold > 1 {
		return fmt.Errorf("%w: secondary_threshold must be in [0, 1]", ErrInvalidConfig)
	}
	if c.UrgencyMedium <= 0 || c.UrgencyHigh <= c.UrgencyMedium || c.UrgencyHigh > 1 {
		return fmt.Errorf("%w: urgency thresholds must satisfy 0 < medium < high <= 1", ErrInvalidConfig)
	}
	if c.VarietyPenalty < 0 || c.VarietyPenalty > 1 || c.VarietyDecay <= 0 || c.VarietyDecay >= 1 {
		return fmt.Errorf("%w: variety penalty must be in [0, 1] and decay in (0, 1)", ErrInvalidConfig)
	}
	if c.BenefitLimit < 1 || c.DefaultRecommendations < 1 || c.MaxRecommendations < c.DefaultRecommendations {
		return fmt.Errorf("%w: recommendation counts must be positive and max >= default", ErrInvalidConfig)
	}
	return nil
}
