package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sushi-tower/internal/platform/tui"
	"github.com/vovakirdan/sushi-tower/internal/registry"
	"github.com/vovakirdan/sushi-tower/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode or the replay
browser. Press Esc in a paused or finished game to return to the menu.

Examples:
  sushi menu
  sushi menu --fps 30
  sushi menu --db ./runs.db`,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog := tuiLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, store != nil)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsReplays:
			goBack, err := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(menuResult.GameID)
			if err != nil {
				return err
			}
			model, err := tui.RunGame(game, cfg, tui.Options{
				Store:  store,
				Logger: logger,
				Record: true,
				Menu:   true,
			})
			if err != nil {
				return fmt.Errorf("error running game: %w", err)
			}
			if !model.BackToMenu() {
				return nil
			}
		}
	}
}
