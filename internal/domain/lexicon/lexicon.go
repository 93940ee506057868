// Package lexicon holds the static, versioned keyword data the classifier
// and scoring engine read: per-category keyword weights, the crisis-keyword
// set, and per-type benefit lists. Pure data, safe for unsynchronized
// concurrent reads.
package lexicon

import (
	"sort"

	"github.com/okian/serene/internal/domain/model"
)

// Version identifies the deployed lexicon revision.
const Version = "2024.2"

// Lexicon maps concern categories to weighted keywords. Weights are in
// (0, 1]; multi-word phrases carry more weight than single words.
type Lexicon struct {
	categories map[model.Category]map[string]float64
	crisis     []string
	benefits   map[string][]string
}

// Option applies a configuration option to a Lexicon.
type Option func(*Lexicon)

// WithCategory replaces the keyword weights for one category. Useful for
// tuning without a redeploy; weights outside (0, 1] are dropped.
func WithCategory(c model.Category, keywords map[string]float64) Option {
	return func(l *Lexicon) {
		kept := make(map[string]float64, len(keywords))
		for kw, w := range keywords {
			if w > 0 && w <= 1 {
				kept[kw] = w
			}
		}
		if len(kept) > 0 {
			l.categories[c] = kept
		}
	}
}

// WithCrisisKeywords replaces the crisis-keyword set.
func WithCrisisKeywords(keywords []string) Option {
	return func(l *Lexicon) {
		if len(keywords) > 0 {
			l.crisis = append([]string(nil), keywords...)
		}
	}
}

// New builds a Lexicon with the default data, then applies options.
func New(opts ...Option) *Lexicon {
	l := &Lexicon{
		categories: defaultCategories(),
		crisis:     append([]string(nil), defaultCrisisKeywords...),
		benefits:   defaultBenefits,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Categories returns the category names in alphabetical order. The order is
// the documented evaluation order and the classifier's tie-break order.
func (l *Lexicon) Categories() []model.Category {
	out := make([]model.Category, 0, len(l.categories))
	for c := range l.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Keywords returns the keyword->weight map for a category. Callers must not
// mutate the returned map.
func (l *Lexicon) Keywords(c model.Category) map[string]float64 {
	return l.categories[c]
}

// Size returns the number of keywords registered for a category.
func (l *Lexicon) Size(c model.Category) int {
	return len(l.categories[c])
}

// CrisisKeywords returns the crisis-keyword set. These are checked against
// raw text and can elevate urgency regardless of severity.
func (l *Lexicon) CrisisKeywords() []string {
	return l.crisis
}

// Benefits returns the static benefit strings for a meditation type.
func (l *Lexicon) Benefits(meditationType string) []string {
	return l.benefits[meditationType]
}

// defaultCategories returns the deployed keyword weights. Single words sit
// around 0.4-0.9 by how strongly they indicate the category; phrases are
// weighted near the top of the range.
func defaultCategories() map[model.Category]map[string]float64 {
	return map[model.Category]map[string]float64{
		model.CategoryAnxiety: {
			"anxious":             0.9,
			"worried":             0.7,
			"nervous":             0.6,
			"panic":               0.9,
			"fear":                0.6,
			"overwhelm":           0.7,
			"racing thoughts":     0.8,
			"can't breathe":       0.9,
			"heart racing":        0.8,
			"sweating":            0.4,
			"trembling":           0.5,
			"what if":             0.3,
			"i'm scared":          0.7,
			"can't stop thinking": 0.7,
			"worst case":          0.4,
			"freaking out":        0.8,
		},
		model.CategoryDepression: {
			"sad":                   0.7,
			"depressed":             0.9,
			"hopeless":              0.9,
			"empty":                 0.6,
			"numb":                  0.6,
			"worthless":             0.9,
			"guilty":                0.5,
			"tired":                 0.4,
			"exhausted":             0.5,
			"lonely":                0.6,
			"no point":              0.8,
			"give up":               0.7,
			"can't go on":           0.9,
			"hate myself":           0.9,
			"better off without me": 1.0,
		},
		model.CategoryStress: {
			"stressed":       0.9,
			"pressure":       0.6,
			"deadline":       0.5,
			"overloaded":     0.7,
			"overwhelm":      0.8,
			"busy":           0.4,
			"rushing":        0.4,
			"juggling":       0.5,
			"demands":        0.5,
			"too much":       0.6,
			"can't handle":   0.8,
			"falling behind": 0.6,
			"no time":        0.5,
			"burning out":    0.8,
		},
		model.CategoryAnger: {
			"angry":      0.9,
			"furious":    0.9,
			"mad":        0.6,
			"pissed":     0.7,
			"frustrated": 0.6,
			"irritated":  0.5,
			"annoyed":    0.5,
			"rage":       0.9,
			"fed up":     0.6,
			"had enough": 0.6,
			"lose it":    0.7,
			"blow up":    0.7,
		},
		model.CategoryInsomnia: {
			"can't sleep":         0.9,
			"insomnia":            0.9,
			"awake":               0.4,
			"tired":               0.5,
			"exhausted":           0.5,
			"sleepless":           0.8,
			"restless":            0.6,
			"up all night":        0.8,
			"mind racing":         0.7,
			"tossing and turning": 0.8,
		},
	}
}

// defaultCrisisKeywords can flip urgency to high on their own. Kept separate
// from the category lexicons on purpose.
var defaultCrisisKeywords = []string{
	"hopeless",
	"worthless",
	"panic",
	"rage",
	"suicide",
	"self harm",
	"kill myself",
	"end my life",
	"want to die",
}

// defaultBenefits maps meditation types to short benefit statements shown
// alongside recommendations.
var defaultBenefits = map[string][]string{
	"breathing":              {"Quickly calms the nervous system", "Can be done anywhere, anytime"},
	"body_scan":              {"Releases physical tension", "Builds awareness of stress held in the body"},
	"loving_kindness":        {"Cultivates self-compassion", "Softens harsh self-talk"},
	"mindfulness":            {"Brings you to the present moment", "Trains attention gently"},
	"visualization":          {"Uses imagination for healing", "Creates a sense of safety"},
	"progressive_relaxation": {"Relaxes muscle groups one by one", "Prepares the body for rest"},
	"movement":               {"Grounds you through gentle motion", "Releases restless energy"},
	"mantra":                 {"Steadies attention with repetition", "Quiets a busy mind"},
	"zen":                    {"Builds equanimity through stillness", "Deepens concentration"},
}
