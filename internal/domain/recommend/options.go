package recommend

import "github.com/okian/serene/internal/domain/lexicon"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights sets the four sub-score weights. Ignored unless every weight
// is non-negative and the vector sums to 1.0.
func WithWeights(relevance, personalization, effectiveness, variety float64) Option {
	return func(e *Engine) {
		w := Weights{
			Relevance:       relevance,
			Personalization: personalization,
			Effectiveness:   effectiveness,
			Variety:         variety,
		}
		if w.Valid() {
			e.weights = w
		}
	}
}

// WithVarietyPenalty sets the initial recency penalty and its decay factor.
// The entry most recently seen is penalized by penalty, the next by
// penalty*decay, and so on.
func WithVarietyPenalty(penalty, decay float64) Option {
	return func(e *Engine) {
		if penalty >= 0 && penalty <= 1 && decay > 0 && decay < 1 {
			e.varietyPenalty = penalty
			e.varietyDecay = decay
		}
	}
}

// WithBenefitLimit caps the number of benefit strings per recommendation.
func WithBenefitLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.benefitLimit = n
		}
	}
}

// WithLexicon sets the lexicon used for per-type benefit lists.
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(e *Engine) {
		if lex != nil {
			e.lexicon = lex
		}
	}
}
