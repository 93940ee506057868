package catalog

import "github.com/okian/serene/internal/domain/model"

// SampleEntries returns the built-in meditation set. It seeds the in-memory
// store and doubles as the last-resort fallback source when no catalog is
// available at all.
func SampleEntries() []model.CatalogEntry {
	return []model.CatalogEntry{
		{
			ID:                 "med-001",
			Name:               "Box Breathing for Calm",
			Type:               "breathing",
			Level:              model.LevelBeginner,
			DurationMinutes:    5,
			TargetStates:       []model.Category{model.CategoryAnxiety, model.CategoryStress},
			Tags:               []string{"quick", "calming"},
			Benefits:           []string{"Works in under five minutes"},
			EffectivenessScore: 0.85,
		},
		{
			ID:                 "med-002",
			Name:               "Body Scan for Deep Rest",
			Type:               "body_scan",
			Level:              model.LevelBeginner,
			DurationMinutes:    15,
			TargetStates:       []model.Category{model.CategoryInsomnia, model.CategoryStress},
			Tags:               []string{"evening", "rest"},
			EffectivenessScore: 0.80,
		},
		{
			ID:                 "med-003",
			Name:               "Loving Kindness Practice",
			Type:               "loving_kindness",
			Level:              model.LevelIntermediate,
			DurationMinutes:    12,
			TargetStates:       []model.Category{model.CategoryDepression, model.CategoryAnger},
			Tags:               []string{"compassion"},
			EffectivenessScore: 0.78,
		},
		{
			ID:                 "med-004",
			Name:               "Mindful Morning Reset",
			Type:               "mindfulness",
			Level:              model.LevelBeginner,
			DurationMinutes:    10,
			TargetStates:       []model.Category{model.CategoryStress, model.CategoryAnxiety, model.GeneralWellness},
			Tags:               []string{"morning", "focus"},
			EffectivenessScore: 0.82,
		},
		{
			ID:                 "med-005",
			Name:               "Progressive Muscle Release",
			Type:               "progressive_relaxation",
			Level:              model.LevelBeginner,
			DurationMinutes:    18,
			TargetStates:       []model.Category{model.CategoryInsomnia, model.CategoryAnxiety},
			Tags:               []string{"evening", "tension"},
			EffectivenessScore: 0.76,
		},
		{
			ID:                 "med-006",
			Name:               "Visualization: Safe Harbor",
			Type:               "visualization",
			Level:              model.LevelIntermediate,
			DurationMinutes:    14,
			TargetStates:       []model.Category{model.CategoryStress, model.CategoryInsomnia},
			Tags:               []string{"imagery"},
			EffectivenessScore: 0.72,
		},
		{
			ID:                 "med-007",
			Name:               "Walking Meditation",
			Type:               "movement",
			Level:              model.LevelBeginner,
			DurationMinutes:    20,
			TargetStates:       []model.Category{model.CategoryDepression, model.CategoryAnger},
			Tags:               []string{"outdoor", "gentle"},
			EffectivenessScore: 0.70,
		},
		{
			ID:                 "med-008",
			Name:               "Mantra for a Quiet Mind",
			Type:               "mantra",
			Level:              model.LevelIntermediate,
			DurationMinutes:    10,
			TargetStates:       []model.Category{model.CategoryDepression, model.GeneralWellness},
			Tags:               []string{"repetition"},
			EffectivenessScore: 0.68,
		},
		{
			ID:                 "med-009",
			Name:               "Zen Sitting Practice",
			Type:               "zen",
			Level:              model.LevelAdvanced,
			DurationMinutes:    30,
			TargetStates:       []model.Category{model.GeneralWellness},
			Tags:               []string{"stillness", "long"},
			EffectivenessScore: 0.74,
		},
		{
			ID:                 "med-010",
			Name:               "Cooling the Fire",
			Type:               "breathing",
			Level:              model.LevelIntermediate,
			DurationMinutes:    8,
			TargetStates:       []model.Category{model.CategoryAnger, model.CategoryStress},
			Tags:               []string{"quick"},
			Benefits:           []string{"Interrupts the anger spiral early"},
			EffectivenessScore: 0.79,
		},
	}
}
