package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the built-in configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Playfield: PlayfieldConfig{
			MinWidth:   320,
			MaxWidth:   1920,
			MinHeight:  480,
			MaxHeight:  1080,
			BaseWidth:  800,
			BaseHeight: 600,
			CellWidth:  10,
			CellHeight: 20,
		},
		Speeds: SpeedsConfig{
			Player:   350,
			Bullet:   500,
			Chicken:  30,
			Egg:      120,
			FireRate: 150,
		},
		Gameplay: GameplayConfig{
			Lives:          5,
			ChickenRows:    4,
			MaxChickenCols: 12,
			ColumnWidth:    80,
			CampaignWaves:  20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
