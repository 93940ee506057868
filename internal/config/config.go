// Package config defines service configuration structures and loading hooks.
//
// Every tunable the engine exposes lives here: classification thresholds,
// the crisis-keyword set, the scoring weight vector, the variety-penalty
// curve, and the service-shell knobs. Values are fixed constants at runtime
// but overridable at load time for tuning.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SecondaryThreshold is the minimum normalized category score for a
	// secondary concern.
	SecondaryThreshold float64 `koanf:"secondary_threshold"`

	// UrgencyHigh and UrgencyMedium are the severity cutoffs for the
	// urgency level.
	UrgencyHigh   float64 `koanf:"urgency_high"`
	UrgencyMedium float64 `koanf:"urgency_medium"`

	// CrisisKeywords overrides the built-in crisis-keyword set when
	// non-empty.
	CrisisKeywords []string `koanf:"crisis_keywords"`

	// Scoring weight vector; must sum to 1.0.
	RelevanceWeight       float64 `koanf:"relevance_weight"`
	PersonalizationWeight float64 `koanf:"personalization_weight"`
	EffectivenessWeight   float64 `koanf:"effectiveness_weight"`
	VarietyWeight         float64 `koanf:"variety_weight"`

	// VarietyPenalty and VarietyDecay shape the recency penalty curve.
	VarietyPenalty float64 `koanf:"variety_penalty"`
	VarietyDecay   float64 `koanf:"variety_decay"`

	// BenefitLimit caps benefit strings per recommendation.
	BenefitLimit int `koanf:"benefit_limit"`

	// DefaultRecommendations is used when a caller asks for none;
	// MaxRecommendations caps what a caller may ask for.
	DefaultRecommendations int `koanf:"default_recommendations"`
	MaxRecommendations     int `koanf:"max_recommendations"`

	// FeedbackQueueSize bounds the in-memory feedback queue.
	FeedbackQueueSize int `koanf:"feedback_queue_size"`

	// WorkerCount sets the number of feedback workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the feedback idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// RecentHistorySize bounds the per-user recent-session list.
	RecentHistorySize int `koanf:"recent_history_size"`
}

// New creates a Config with the deployed defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9090",
		SecondaryThreshold:     0.3,
		UrgencyHigh:            0.8,
		UrgencyMedium:          0.5,
		RelevanceWeight:        0.40,
		PersonalizationWeight:  0.25,
		EffectivenessWeight:    0.20,
		VarietyWeight:          0.15,
		VarietyPenalty:         0.9,
		VarietyDecay:           0.5,
		BenefitLimit:           3,
		DefaultRecommendations: 5,
		MaxRecommendations:     20,
		FeedbackQueueSize:      10_000,
		WorkerCount:            runtime.NumCPU(),
		DedupeSize:             50_000,
		RecentHistorySize:      10,
	}
}
