// Package model contains domain records passed between layers.
package model

import "time"

// Category is a mental/emotional concern label from the closed lexicon set.
type Category string

// Concern categories. GeneralWellness is the sentinel returned when no
// category produces a positive score.
const (
	CategoryAnger      Category = "anger"
	CategoryAnxiety    Category = "anxiety"
	CategoryDepression Category = "depression"
	CategoryInsomnia   Category = "insomnia"
	CategoryStress     Category = "stress"

	GeneralWellness Category = "general_wellness"
)

// Urgency is a coarse triage signal derived from severity and crisis keywords.
type Urgency string

// Urgency levels.
const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Level describes meditation difficulty and user experience.
type Level string

// Experience levels, ordered beginner < intermediate < advanced.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// DurationBucket groups session lengths into coarse preference buckets.
type DurationBucket string

// Duration buckets: short covers up to 10 minutes, medium 11-20, long 21+.
const (
	DurationShort  DurationBucket = "short"
	DurationMedium DurationBucket = "medium"
	DurationLong   DurationBucket = "long"
)

// BucketForDuration maps a session length in minutes to its bucket.
func BucketForDuration(minutes int) DurationBucket {
	switch {
	case minutes <= 10:
		return DurationShort
	case minutes <= 20:
		return DurationMedium
	default:
		return DurationLong
	}
}

// Assessment captures the classifier's view of one piece of text.
// It is created fresh per classification call and never mutated.
type Assessment struct {
	PrimaryConcern    Category           `json:"primary_concern"`
	SecondaryConcerns []Category         `json:"secondary_concerns"`
	SeverityScore     float64            `json:"severity_score"`
	Urgency           Urgency            `json:"urgency_level"`
	MatchedKeywords   map[string]float64 `json:"matched_keywords"`
	AnalyzedAt        time.Time          `json:"analyzed_at"`
}

// PreferenceProfile is a read-only snapshot of a user's personalization data.
// Missing fields are tolerated as empty; the engine never requires them.
type PreferenceProfile struct {
	UserID             string             `json:"user_id"`
	PreferredTypes     []string           `json:"preferred_types"`
	PreferredDurations []DurationBucket   `json:"preferred_durations"`
	ExperienceLevel    Level              `json:"experience_level"`
	RecentSessionIDs   []string           `json:"recent_session_ids"`
	PastRatings        map[string]float64 `json:"past_ratings"`
	CompletionCounts   map[string]int     `json:"completion_counts"`
	LastUpdated        time.Time          `json:"last_updated"`
}

// CatalogEntry describes one guided meditation available for recommendation.
type CatalogEntry struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Type               string     `json:"type"`
	Level              Level      `json:"level"`
	DurationMinutes    int        `json:"duration_minutes"`
	TargetStates       []Category `json:"target_states"`
	Tags               []string   `json:"tags"`
	Benefits           []string   `json:"benefits"`
	EffectivenessScore float64    `json:"effectiveness_score"`
}

// Recommendation is a scored catalog entry with a human-readable rationale.
type Recommendation struct {
	Entry                CatalogEntry `json:"meditation"`
	RelevanceScore       float64      `json:"relevance_score"`
	PersonalizationScore float64      `json:"personalization_score"`
	EffectivenessScore   float64      `json:"effectiveness_score"`
	VarietyScore         float64      `json:"variety_score"`
	TotalScore           float64      `json:"total_score"`
	Explanation          string       `json:"explanation"`
	Benefits             []string     `json:"benefits"`
}

// FeedbackEvent records whether a recommendation was accepted and how it was
// rated. It flows one way, from callers into the feedback sink.
type FeedbackEvent struct {
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	MeditationID string    `json:"meditation_id"`
	Accepted     bool      `json:"accepted"`
	Rating       *float64  `json:"rating,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
