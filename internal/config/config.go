// Package config provides YAML-based game configuration loading and
// difficulty presets for the sushi tower game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

// SushiConfig contains all configuration for the sushi tower game.
type SushiConfig struct {
	Tower        TowerConfig        `yaml:"tower"`
	Health       HealthConfig       `yaml:"health"`
	Generator    GeneratorConfig    `yaml:"generator"`
	Presentation PresentationConfig `yaml:"presentation"`
}

// TowerConfig defines the tower size.
type TowerConfig struct {
	SeedPieces      int `yaml:"seed_pieces"`
	GeneratedPieces int `yaml:"generated_pieces"`
}

// HealthConfig defines the health meter tuning.
type HealthConfig struct {
	Initial      float64 `yaml:"initial"`
	GainPerHit   float64 `yaml:"gain_per_hit"`
	DecayPerTick float64 `yaml:"decay_per_tick"`
}

// GeneratorConfig defines the random piece split.
type GeneratorConfig struct {
	LeftProbability  float64 `yaml:"left_probability"`
	RightProbability float64 `yaml:"right_probability"`
}

// PresentationConfig holds rendering-only settings. None of these affect
// the game rules.
type PresentationConfig struct {
	DropStepHeight int `yaml:"drop_step_height"` // Rows per stacked piece
	FlipTicks      int `yaml:"flip_ticks"`
	DropTicks      int `yaml:"drop_ticks"`
	PunchTicks     int `yaml:"punch_ticks"`
}

// Rules converts the config into core rules.
func (c SushiConfig) Rules() core.Rules {
	return core.Rules{
		SeedPieces:       c.Tower.SeedPieces,
		GeneratedPieces:  c.Tower.GeneratedPieces,
		InitialHealth:    c.Health.Initial,
		HealthGain:       c.Health.GainPerHit,
		HealthDecay:      c.Health.DecayPerTick,
		LeftProbability:  c.Generator.LeftProbability,
		RightProbability: c.Generator.RightProbability,
	}
}

// FromRules builds a config around the given rules with default
// presentation settings.
func FromRules(r core.Rules) SushiConfig {
	cfg := DefaultSushiConfig()
	cfg.Tower = TowerConfig{SeedPieces: r.SeedPieces, GeneratedPieces: r.GeneratedPieces}
	cfg.Health = HealthConfig{Initial: r.InitialHealth, GainPerHit: r.HealthGain, DecayPerTick: r.HealthDecay}
	cfg.Generator = GeneratorConfig{LeftProbability: r.LeftProbability, RightProbability: r.RightProbability}
	return cfg
}

// Validate checks the rules and the presentation settings.
func (c SushiConfig) Validate() error {
	var errs []error
	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Presentation.DropStepHeight < 1 {
		errs = append(errs, fmt.Errorf("drop_step_height must be >= 1, got %d", c.Presentation.DropStepHeight))
	}
	if c.Presentation.FlipTicks < 0 || c.Presentation.DropTicks < 0 || c.Presentation.PunchTicks < 0 {
		errs = append(errs, errors.New("animation ticks must be >= 0"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyZen    DifficultyPreset = "zen" // No health decay
)

// ParsePreset converts a flag value to a preset. Empty means "use the
// config as loaded".
func ParsePreset(v string) (DifficultyPreset, error) {
	switch DifficultyPreset(v) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyZen:
		return DifficultyPreset(v), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or zen)", v)
}

// DecayMultiplier returns the factor applied to decay_per_tick.
func DecayMultiplier(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.6
	case DifficultyHard:
		return 1.5
	case DifficultyZen:
		return 0
	default:
		return 1
	}
}

// ApplySushiPreset modifies the config based on a difficulty preset.
func ApplySushiPreset(cfg *SushiConfig, preset DifficultyPreset) {
	cfg.Health.DecayPerTick *= DecayMultiplier(preset)

	// Hard mode also refills less per hit
	if preset == DifficultyHard {
		cfg.Health.GainPerHit *= 0.8
	}
}
