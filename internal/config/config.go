// Package config provides YAML-based configuration loading and difficulty
// management for chicken invaders.
package config

// InvadersConfig contains all tunable values for a run.
type InvadersConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Speeds     SpeedsConfig     `yaml:"speeds"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig bounds the playfield derived from the terminal size.
type PlayfieldConfig struct {
	MinWidth   float64 `yaml:"min_width"`
	MaxWidth   float64 `yaml:"max_width"`
	MinHeight  float64 `yaml:"min_height"`
	MaxHeight  float64 `yaml:"max_height"`
	BaseWidth  float64 `yaml:"base_width"`  // reference width for speed scaling
	BaseHeight float64 `yaml:"base_height"` // reference height for speed scaling
	CellWidth  float64 `yaml:"cell_width"`  // playfield px per terminal column
	CellHeight float64 `yaml:"cell_height"` // playfield px per terminal row
}

// SpeedsConfig holds speeds at the base playfield size.
type SpeedsConfig struct {
	Player   float64 `yaml:"player"`    // px/s
	Bullet   float64 `yaml:"bullet"`    // px/s
	Chicken  float64 `yaml:"chicken"`   // formation speed factor
	Egg      float64 `yaml:"egg"`       // px/s
	FireRate float64 `yaml:"fire_rate"` // ms between shots
}

// GameplayConfig holds formation and run rules.
type GameplayConfig struct {
	Lives          int     `yaml:"lives"`
	ChickenRows    int     `yaml:"chicken_rows"`
	MaxChickenCols int     `yaml:"max_chicken_cols"`
	ColumnWidth    float64 `yaml:"column_width"`   // px of playfield per chicken column
	CampaignWaves  int     `yaml:"campaign_waves"` // waves to clear in campaign mode
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or ms at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and
// means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
