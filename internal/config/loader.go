package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the configuration file name looked up in each directory.
const ConfigFile = "invaders.yaml"

// LoadInvaders loads the game configuration.
// Search order: customPath -> ~/.invaders/configs/invaders.yaml ->
// ./configs/invaders.yaml -> embedded default.
// Files only need the keys they change; everything else keeps its default.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	return loadInvaders(customPath, userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile))
}

func loadInvaders(customPath, userPath, localPath string) (InvadersConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userPath, localPath} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays YAML onto the built-in defaults and validates the result.
func parse(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports values the game cannot run with.
func (c InvadersConfig) Validate() error {
	var errs []error
	p := c.Playfield
	if p.MinWidth <= 0 || p.MinWidth > p.MaxWidth {
		errs = append(errs, fmt.Errorf("playfield width range [%v, %v] is invalid", p.MinWidth, p.MaxWidth))
	}
	if p.MinHeight <= 0 || p.MinHeight > p.MaxHeight {
		errs = append(errs, fmt.Errorf("playfield height range [%v, %v] is invalid", p.MinHeight, p.MaxHeight))
	}
	if p.BaseWidth <= 0 || p.BaseHeight <= 0 {
		errs = append(errs, errors.New("playfield base size must be positive"))
	}
	if p.CellWidth <= 0 || p.CellHeight <= 0 {
		errs = append(errs, errors.New("playfield cell size must be positive"))
	}
	if c.Speeds.Chicken <= 0 {
		errs = append(errs, errors.New("chicken speed must be positive"))
	}
	if c.Speeds.FireRate < 0 {
		errs = append(errs, errors.New("fire rate cannot be negative"))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, errors.New("lives must be positive"))
	}
	if c.Gameplay.ChickenRows <= 0 || c.Gameplay.MaxChickenCols <= 0 || c.Gameplay.ColumnWidth <= 0 {
		errs = append(errs, errors.New("formation rows, columns and column width must be positive"))
	}
	if c.Gameplay.CampaignWaves < 0 {
		errs = append(errs, errors.New("campaign waves cannot be negative"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "configs", filename)
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config as loaded.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 7
		cfg.Speeds.Egg = 100
		cfg.Gameplay.CampaignWaves = 10
	case DifficultyHard:
		cfg.Gameplay.Lives = 3
		cfg.Speeds.Egg = 160
		cfg.Gameplay.CampaignWaves = 30
	}
}
