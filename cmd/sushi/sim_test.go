package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/sushi-tower/internal/config"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
	"github.com/vovakirdan/sushi-tower/internal/replay"
)

func TestCheckSimOptions(t *testing.T) {
	normal := config.DefaultSushiConfig()
	easy := config.DefaultSushiConfig()
	config.ApplySushiPreset(&easy, config.DifficultyEasy)
	zen := config.DefaultSushiConfig()
	config.ApplySushiPreset(&zen, config.DifficultyZen)

	tests := []struct {
		name     string
		policy   string
		taps     int
		tapEvery int
		rules    core.Rules
		wantErr  string
	}{
		{"defaults", "greedy", 0, 15, normal.Rules(), ""},
		{"greedy keeps up", "greedy", 0, 10, normal.Rules(), "never runs out"},
		{"easy", "greedy", 0, 15, easy.Rules(), "never runs out"},
		{"zen", "greedy", 0, 15, zen.Rules(), "never runs out"},
		{"zen with tap limit", "greedy", 500, 15, zen.Rules(), ""},
		{"random always ends", "random", 0, 10, zen.Rules(), ""},
		{"negative tap-every", "greedy", 0, -1, normal.Rules(), "--tap-every"},
		{"negative taps", "greedy", -3, 15, normal.Rules(), "--taps"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := checkSimOptions(tc.policy, tc.taps, tc.tapEvery, tc.rules)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultSimRunEnds(t *testing.T) {
	rules := config.DefaultSushiConfig().Rules()
	tapEvery := simCmd.Flags().Lookup("tap-every").DefValue
	if tapEvery != "15" {
		t.Fatalf("default --tap-every = %s, want 15", tapEvery)
	}

	j := replay.Autoplay(replay.AutoplayOptions{
		Variant:  "sushi",
		Seed:     42,
		Rules:    rules,
		Policy:   replay.Greedy(),
		TapEvery: 15,
	})
	if !j.Finished {
		t.Fatalf("default bot run should end by itself, stopped after %d taps", len(j.Taps))
	}
}
