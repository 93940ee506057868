// Package assess classifies free-form conversational text into a mental
// state assessment using the weighted keyword lexicon. Classification is a
// pure function over its inputs: no I/O, no shared mutable state, and the
// same text always produces the same assessment.
package assess

import (
	"strings"
	"time"

	"github.com/okian/serene/internal/domain/lexicon"
	"github.com/okian/serene/internal/domain/model"
)

// Default classification thresholds.
const (
	defaultSecondaryThreshold = 0.3
	defaultHighUrgency        = 0.8
	defaultMediumUrgency      = 0.5
)

// Classifier turns raw text into an Assessment.
type Classifier interface {
	// Classify never fails; empty or keyword-less input yields the
	// general_wellness sentinel with zero severity and low urgency.
	Classify(text string) model.Assessment
}

// Option applies a configuration option to the KeywordClassifier.
type Option func(*KeywordClassifier)

// WithLexicon sets the lexicon to classify against.
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(c *KeywordClassifier) {
		if lex != nil {
			c.lexicon = lex
		}
	}
}

// WithSecondaryThreshold sets the minimum normalized score for a category to
// appear as a secondary concern.
func WithSecondaryThreshold(t float64) Option {
	return func(c *KeywordClassifier) {
		if t >= 0 && t <= 1 {
			c.secondaryThreshold = t
		}
	}
}

// WithUrgencyThresholds sets the severity cutoffs for high and medium
// urgency. Ignored unless 0 < medium < high <= 1.
func WithUrgencyThresholds(high, medium float64) Option {
	return func(c *KeywordClassifier) {
		if medium > 0 && high > medium && high <= 1 {
			c.highUrgency = high
			c.mediumUrgency = medium
		}
	}
}

// WithClock sets the timestamp source, used by tests for determinism.
func WithClock(now func() time.Time) Option {
	return func(c *KeywordClassifier) {
		if now != nil {
			c.now = now
		}
	}
}

// KeywordClassifier implements Classifier over a static lexicon.
type KeywordClassifier struct {
	lexicon            *lexicon.Lexicon
	secondaryThreshold float64
	highUrgency        float64
	mediumUrgency      float64
	now                func() time.Time
}

// NewKeywordClassifier creates a classifier with the default lexicon and
// thresholds, then applies options.
func NewKeywordClassifier(opts ...Option) *KeywordClassifier {
	c := &KeywordClassifier{
		lexicon:            lexicon.New(),
		secondaryThreshold: defaultSecondaryThreshold,
		highUrgency:        defaultHighUrgency,
		mediumUrgency:      defaultMediumUrgency,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scores the text against every category and derives the primary
// and secondary concerns, severity, and urgency.
//
// Keyword matching is substring presence on the lowercased text; repeated
// occurrences of a keyword count once. Raw category scores are normalized by
// the category's lexicon size so that a category wins by the proportion of
// its lexicon matched, not by lexicon size. Categories are evaluated in
// alphabetical order, which makes the flat matched-keyword map deterministic
// when a keyword belongs to several categories (last category written wins)
// and doubles as the documented tie-break for the primary concern.
func (c *KeywordClassifier) Classify(text string) model.Assessment {
	normalized := strings.ToLower(text)

	matched := make(map[string]float64)
	scores := make(map[model.Category]float64)

	for _, cat := range c.lexicon.Categories() {
		keywords := c.lexicon.Keywords(cat)
		raw := 0.0
		for kw, weight := range keywords {
			if strings.Contains(normalized, kw) {
				raw += weight
				matched[kw] = weight
			}
		}
		if size := c.lexicon.Size(cat); size > 0 {
			scores[cat] = raw / float64(size)
		}
	}

	primary := model.GeneralWellness
	best := 0.0
	for _, cat := range c.lexicon.Categories() {
		// Strict inequality keeps the alphabetical tie-break.
		if scores[cat] > best {
			best = scores[cat]
			primary = cat
		}
	}

	var secondaries []model.Category
	if primary != model.GeneralWellness {
		for _, cat := range c.lexicon.Categories() {
			if cat != primary && scores[cat] > c.secondaryThreshold {
				secondaries = append(secondaries, cat)
			}
		}
	}

	severity := 0.0
	if primary != model.GeneralWellness {
		severity = best
	}

	return model.Assessment{
		PrimaryConcern:    primary,
		SecondaryConcerns: secondaries,
		SeverityScore:     severity,
		Urgency:           c.urgency(normalized, severity),
		MatchedKeywords:   matched,
		AnalyzedAt:        c.now(),
	}
}

// urgency maps severity to a triage level. Crisis keywords are an
// OR-override: any hit in the raw text elevates urgency to high even when
// severity alone would not.
func (c *KeywordClassifier) urgency(normalized string, severity float64) model.Urgency {
	for _, kw := range c.lexicon.CrisisKeywords() {
		if strings.Contains(normalized, kw) {
			return model.UrgencyHigh
		}
	}
	switch {
	case severity > c.highUrgency:
		return model.UrgencyHigh
	case severity > c.mediumUrgency:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}
