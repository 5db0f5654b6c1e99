package config

import (
	_ "embed"
)

//go:embed defaults/sushi.yaml
var defaultSushiYAML []byte

// DefaultSushiConfig returns the hard-coded default configuration. It matches
// the embedded defaults/sushi.yaml.
func DefaultSushiConfig() SushiConfig {
	return SushiConfig{
		Tower: TowerConfig{
			SeedPieces:      2,
			GeneratedPieces: 10,
		},
		Health: HealthConfig{
			Initial:      1.0,
			GainPerHit:   0.1,
			DecayPerTick: 0.01,
		},
		Generator: GeneratorConfig{
			LeftProbability:  0.45,
			RightProbability: 0.45,
		},
		Presentation: PresentationConfig{
			DropStepHeight: 1,
			FlipTicks:      12,
			DropTicks:      6,
			PunchTicks:     8,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSushiYAML
}
