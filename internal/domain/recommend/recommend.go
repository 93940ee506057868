// Package recommend ranks catalog entries against an assessment and a
// preference profile. Ranking is a pure function over its inputs; the engine
// holds only read-only configuration and is safe for concurrent use.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/serene/internal/domain/lexicon"
	"github.com/okian/serene/internal/domain/model"
)

// Default scoring configuration.
const (
	defaultVarietyPenalty = 0.9
	defaultVarietyDecay   = 0.5
	defaultBenefitLimit   = 3

	// Personalization factor weights, summing to 1.
	typeFactorWeight     = 0.30
	durationFactorWeight = 0.25
	levelFactorWeight    = 0.25
	ratingFactorWeight   = 0.20

	// Level compatibility: exact match, adjacent level, distant level.
	levelExactScore    = 1.0
	levelAdjacentScore = 0.6
	levelDistantScore  = 0.2

	// Neutral rating factor when the user has never rated the entry.
	neutralRatingScore = 0.5

	weightSumEpsilon = 1e-9
)

// Weights is the totalScore weight vector. The four components must sum
// to 1.0.
type Weights struct {
	Relevance       float64
	Personalization float64
	Effectiveness   float64
	Variety         float64
}

// DefaultWeights is the deployed weight vector.
func DefaultWeights() Weights {
	return Weights{
		Relevance:       0.40,
		Personalization: 0.25,
		Effectiveness:   0.20,
		Variety:         0.15,
	}
}

// Valid reports whether every weight is non-negative and the vector sums
// to 1.0.
func (w Weights) Valid() bool {
	if w.Relevance < 0 || w.Personalization < 0 || w.Effectiveness < 0 || w.Variety < 0 {
		return false
	}
	sum := w.Relevance + w.Personalization + w.Effectiveness + w.Variety
	return math.Abs(sum-1.0) < weightSumEpsilon
}

// Engine computes ranked recommendations.
type Engine struct {
	weights        Weights
	varietyPenalty float64
	varietyDecay   float64
	benefitLimit   int
	lexicon        *lexicon.Lexicon
}

// NewEngine creates an engine with the default configuration, then applies
// options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:        DefaultWeights(),
		varietyPenalty: defaultVarietyPenalty,
		varietyDecay:   defaultVarietyDecay,
		benefitLimit:   defaultBenefitLimit,
		lexicon:        lexicon.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the engine's weight vector.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Rank scores every catalog entry and returns at most max recommendations,
// ordered by total score descending. Ties break by effectiveness descending,
// then by entry id ascending, so repeated calls over the same inputs return
// the same list. Returns ErrEmptyCatalog when the catalog has no entries.
func (e *Engine) Rank(assessment model.Assessment, profile model.PreferenceProfile, catalog []model.CatalogEntry, max int) ([]model.Recommendation, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if max < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, max)
	}

	recs := make([]model.Recommendation, 0, len(catalog))
	for _, entry := range catalog {
		rel := e.relevance(entry, assessment)
		pers := e.personalization(entry, profile)
		variety := e.variety(entry, profile)

		rec := model.Recommendation{
			Entry:                entry,
			RelevanceScore:       rel,
			PersonalizationScore: pers,
			EffectivenessScore:   entry.EffectivenessScore,
			VarietyScore:         variety,
			TotalScore: e.weights.Relevance*rel +
				e.weights.Personalization*pers +
				e.weights.Effectiveness*entry.EffectivenessScore +
				e.weights.Variety*variety,
		}
		rec.Explanation = e.explain(rec, assessment)
		rec.Benefits = e.benefits(entry)
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].TotalScore != recs[j].TotalScore {
			return recs[i].TotalScore > recs[j].TotalScore
		}
		if recs[i].EffectivenessScore != recs[j].EffectivenessScore {
			return recs[i].EffectivenessScore > recs[j].EffectivenessScore
		}
		return recs[i].Entry.ID < recs[j].Entry.ID
	})

	if len(recs) > max {
		recs = recs[:max]
	}
	return recs, nil
}

// relevance measures the overlap between the entry's declared targets (and
// type) and the detected concerns. A primary-concern match counts twice a
// secondary match; the sum is normalized to [0, 1] against the best possible
// overlap for this assessment.
func (e *Engine) relevance(entry model.CatalogEntry, a model.Assessment) float64 {
	targets := make(map[model.Category]bool, len(entry.TargetStates)+1)
	for _, t := range entry.TargetStates {
		targets[t] = true
	}
	targets[model.Category(entry.Type)] = true

	points := 0.0
	if targets[a.PrimaryConcern] {
		points += 2
	}
	for _, c := range a.SecondaryConcerns {
		if targets[c] {
			points++
		}
	}

	denom := 2.0 + float64(len(a.SecondaryConcerns))
	return math.Min(points/denom, 1.0)
}

// personalization blends preferred type, preferred duration bucket,
// experience-level compatibility, and any prior rating into one [0, 1]
// factor.
func (e *Engine) personalization(entry model.CatalogEntry, p model.PreferenceProfile) float64 {
	typeScore := 0.0
	for _, t := range p.PreferredTypes {
		if t == entry.Type {
			typeScore = 1.0
			break
		}
	}

	durationScore := 0.0
	bucket := model.BucketForDuration(entry.DurationMinutes)
	for _, b := range p.PreferredDurations {
		if b == bucket {
			durationScore = 1.0
			break
		}
	}

	ratingScore := neutralRatingScore
	if r, ok := p.PastRatings[entry.ID]; ok {
		ratingScore = math.Max(0, math.Min(r/5.0, 1.0))
	}

	return typeFactorWeight*typeScore +
		durationFactorWeight*durationScore +
		levelFactorWeight*levelCompat(entry.Level, p.ExperienceLevel) +
		ratingFactorWeight*ratingScore
}

// levelCompat scores how well an entry's level fits the user's experience:
// exact match scores highest, an adjacent level partial, a distant level
// lowest. Unknown levels are treated as beginner.
func levelCompat(entry, user model.Level) float64 {
	diff := levelIndex(entry) - levelIndex(user)
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return levelExactScore
	case 1:
		return levelAdjacentScore
	default:
		return levelDistantScore
	}
}

func levelIndex(l model.Level) int {
	switch l {
	case model.LevelIntermediate:
		return 1
	case model.LevelAdvanced:
		return 2
	default:
		return 0
	}
}

// variety starts from 1.0 and subtracts a recency-decayed penalty when the
// entry appears in the profile's recent sessions. Index 0 is the most recent
// session and carries the full penalty; older sessions decay geometrically.
// Never goes below 0.
func (e *Engine) variety(entry model.CatalogEntry, p model.PreferenceProfile) float64 {
	for i, id := range p.RecentSessionIDs {
		if id == entry.ID {
			penalty := e.varietyPenalty * math.Pow(e.varietyDecay, float64(i))
			return math.Max(0, 1.0-penalty)
		}
	}
	return 1.0
}

// explain names the sub-score that contributed most to the total, weighted.
// Contribution ties resolve in the fixed order relevance, personalization,
// effectiveness, variety.
func (e *Engine) explain(rec model.Recommendation, a model.Assessment) string {
	contributions := []struct {
		value float64
		text  string
	}{
		{e.weights.Relevance * rec.RelevanceScore, relevanceExplanation(a.PrimaryConcern)},
		{e.weights.Personalization * rec.PersonalizationScore, "Matches your preferred practice style and experience level"},
		{e.weights.Effectiveness * rec.EffectivenessScore, "Highly rated by people working through similar concerns"},
		{e.weights.Variety * rec.VarietyScore, "Something fresh you haven't practiced recently"},
	}

	best := contributions[0]
	for _, c := range contributions[1:] {
		if c.value > best.value {
			best = c
		}
	}
	return best.text
}

func relevanceExplanation(primary model.Category) string {
	if primary == model.GeneralWellness {
		return "A well-rounded practice for general wellness"
	}
	concern := strings.ReplaceAll(string(primary), "_", " ")
	return fmt.Sprintf("Specifically designed to help with %s", concern)
}

// benefits merges the per-type static benefit list with any benefits tagged
// on the entry, deduplicated in order, capped at the configured limit.
func (e *Engine) benefits(entry model.CatalogEntry) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, e.benefitLimit)
	for _, b := range append(append([]string(nil), e.lexicon.Benefits(entry.Type)...), entry.Benefits...) {
		if seen[b] || len(out) >= e.benefitLimit {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
