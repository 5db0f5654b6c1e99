package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sushi-tower/internal/config"
	"github.com/vovakirdan/sushi-tower/internal/core"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi"
	"github.com/vovakirdan/sushi-tower/internal/platform/tui"
	"github.com/vovakirdan/sushi-tower/internal/registry"
	"github.com/vovakirdan/sushi-tower/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: sushi).

Controls:
  Left/A/H    - Chop from the left
  Right/D/L   - Chop from the right
  Enter/Space - Play
  R           - Retry (after game over)
  P           - Pause
  Ctrl+S      - Screenshot to ~/.sushi/screenshots
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Health decays at 60% speed
  normal - Rules as configured
  hard   - 150% decay, smaller refill per hit
  zen    - No decay

Finished runs are recorded to the runs database unless --record=false.
Logs go to ~/.sushi/sushi.log.

Examples:
  sushi play
  sushi play --difficulty hard
  sushi play sushi_zen
  sushi play --config ./my-sushi.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagRecord, "record", true, "Record finished runs to the database")
}

// addGameFlags registers the config flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, zen")
}

// applyGameFlags validates the config flags and hands them to the game.
func applyGameFlags() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadSushi(flagConfig); err != nil {
			return err
		}
	}
	sushi.SetConfigPath(flagConfig)
	sushi.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(sushi.ModeClassic)
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'sushi list' to see available modes", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog := tuiLogger()
	defer closeLog()

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
			// Continue without storage - game still works
			store = nil
		} else {
			defer store.Close()
		}
	}

	logger.Info("starting game", "game", gameID, "difficulty", flagDifficulty)
	if err := tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Record: flagRecord,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
