package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseSushi(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML should parse: %v", err)
	}
	if cfg != DefaultSushiConfig() {
		t.Errorf("embedded defaults drifted:\n got %+v\nwant %+v", cfg, DefaultSushiConfig())
	}
}

func TestDefaultRules(t *testing.T) {
	r := DefaultSushiConfig().Rules()

	if r.TowerLength() != 12 {
		t.Errorf("tower length = %d, expected 12", r.TowerLength())
	}
	if r.HealthGain != 0.1 || r.HealthDecay != 0.01 {
		t.Errorf("unexpected health tuning: %+v", r)
	}
	if p := r.NoneProbability(); p < 0.0999 || p > 0.1001 {
		t.Errorf("none probability = %v, expected 0.10", p)
	}
}

func TestLoadSushiCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yml := "health:\n  decay_per_tick: 0.02\ngenerator:\n  left_probability: 0.3\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSushi(path)
	if err != nil {
		t.Fatalf("LoadSushi() failed: %v", err)
	}
	if cfg.Health.DecayPerTick != 0.02 {
		t.Errorf("decay = %v, expected 0.02", cfg.Health.DecayPerTick)
	}
	if cfg.Generator.LeftProbability != 0.3 {
		t.Errorf("left probability = %v, expected 0.3", cfg.Generator.LeftProbability)
	}
	// Unset keys keep defaults
	if cfg.Tower.GeneratedPieces != 10 {
		t.Errorf("generated pieces = %d, expected default 10", cfg.Tower.GeneratedPieces)
	}
}

func TestLoadSushiErrors(t *testing.T) {
	if _, err := LoadSushi(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	yml := "generator:\n  left_probability: 0.7\n  right_probability: 0.7\n"
	if err := os.WriteFile(invalid, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSushi(invalid)
	if err == nil {
		t.Fatal("probabilities above 1 should fail validation")
	}
	if !strings.Contains(err.Error(), "probability") {
		t.Errorf("error should mention the probability, got %v", err)
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(broken, []byte("tower: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSushi(broken); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadSushiFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadSushi("")
	if err != nil {
		t.Fatalf("LoadSushi() failed: %v", err)
	}
	if cfg != DefaultSushiConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		decay  float64
	}{
		{DifficultyEasy, 0.006},
		{DifficultyNormal, 0.01},
		{DifficultyHard, 0.015},
		{DifficultyZen, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSushiConfig()
			ApplySushiPreset(&cfg, tc.preset)
			if d := cfg.Health.DecayPerTick - tc.decay; d > 1e-9 || d < -1e-9 {
				t.Errorf("decay = %v, expected %v", cfg.Health.DecayPerTick, tc.decay)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config should stay valid: %v", err)
			}
		})
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("empty preset should be accepted, got %q %v", p, err)
	}
}

func TestRulesRoundTrip(t *testing.T) {
	cfg := DefaultSushiConfig()
	cfg.Health.DecayPerTick = 0.03
	if got := FromRules(cfg.Rules()); got != cfg {
		t.Errorf("FromRules(Rules()) = %+v, expected %+v", got, cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SUSHI_DB=/tmp/from-env.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDB, "")
	os.Unsetenv(EnvDB)

	if err := LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv() failed: %v", err)
	}
	if got := EnvOr(EnvDB, "fallback"); got != "/tmp/from-env.db" {
		t.Errorf("EnvOr() = %q, expected value from .env", got)
	}

	if err := LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env should not fail: %v", err)
	}
	if got := EnvOr("SUSHI_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("EnvOr() = %q, expected fallback", got)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.sushi/runs.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".sushi", "runs.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute paths should be unchanged, got %q", got)
	}
}
