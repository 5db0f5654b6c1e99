package core

import (
	"errors"
	"fmt"
)

// Rules holds the tunable constants of a session.
type Rules struct {
	SeedPieces       int     // Fixed pieces placed at setup (none, right, ...)
	GeneratedPieces  int     // Random pieces appended after the seed pieces
	InitialHealth    float64 // Health at session start
	HealthGain       float64 // Added on every survived tap, clamped to 1
	HealthDecay      float64 // Subtracted on every playing tick
	LeftProbability  float64 // Chance of a left piece after a neutral one
	RightProbability float64 // Chance of a right piece after a neutral one
}

// DefaultRules returns the classic tuning.
func DefaultRules() Rules {
	return Rules{
		SeedPieces:       2,
		GeneratedPieces:  10,
		InitialHealth:    1.0,
		HealthGain:       0.1,
		HealthDecay:      0.01,
		LeftProbability:  0.45,
		RightProbability: 0.45,
	}
}

// TowerLength is the constant tower length during play.
func (r Rules) TowerLength() int {
	return r.SeedPieces + r.GeneratedPieces
}

// NoneProbability is the remainder left after the left and right chances.
func (r Rules) NoneProbability() float64 {
	return 1 - r.LeftProbability - r.RightProbability
}

// seedSides returns the sides of the fixed setup pieces. The first two are
// none then right; any extra seed pieces alternate none/playable so the
// setup never stacks two armed pieces.
func (r Rules) seedSides() []Side {
	sides := make([]Side, 0, r.SeedPieces)
	for i := 0; i < r.SeedPieces; i++ {
		if i%2 == 0 {
			sides = append(sides, SideNone)
		} else {
			sides = append(sides, SideRight)
		}
	}
	return sides
}

// Validate reports every inconsistent field.
func (r Rules) Validate() error {
	var errs []error
	if r.SeedPieces < 0 {
		errs = append(errs, fmt.Errorf("seed pieces must be >= 0, got %d", r.SeedPieces))
	}
	if r.GeneratedPieces < 0 {
		errs = append(errs, fmt.Errorf("generated pieces must be >= 0, got %d", r.GeneratedPieces))
	}
	if r.TowerLength() < 1 {
		errs = append(errs, errors.New("tower must hold at least one piece"))
	}
	if r.InitialHealth <= 0 || r.InitialHealth > 1 {
		errs = append(errs, fmt.Errorf("initial health must be in (0, 1], got %v", r.InitialHealth))
	}
	if r.HealthGain < 0 {
		errs = append(errs, fmt.Errorf("health gain must be >= 0, got %v", r.HealthGain))
	}
	if r.HealthDecay < 0 {
		errs = append(errs, fmt.Errorf("health decay must be >= 0, got %v", r.HealthDecay))
	}
	if r.LeftProbability < 0 || r.RightProbability < 0 {
		errs = append(errs, errors.New("side probabilities must be >= 0"))
	}
	if r.LeftProbability+r.RightProbability > 1 {
		errs = append(errs, fmt.Errorf("left+right probability must be <= 1, got %v",
			r.LeftProbability+r.RightProbability))
	}
	return errors.Join(errs...)
}
