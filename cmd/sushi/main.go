// sushi is a terminal sushi tower game: chop the bottom piece from the side
// without chopsticks before the health meter runs out.
//
// Usage:
//
//	sushi list               - List game modes
//	sushi play [mode]        - Play a mode (default: sushi)
//	sushi menu               - Start menu to pick a mode or browse replays
//	sushi serve              - Start SSH server for remote play
//	sushi sim                - Run a headless bot game
//	sushi replays            - Browse recorded runs
//	sushi replay <id>        - Re-simulate and verify a recorded run
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.sushi/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sushi-tower/internal/config"
	// Import games to register them
	_ "github.com/vovakirdan/sushi-tower/internal/games/sushi"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sushi",
	Short: "Sushi Tower - chop the tower, dodge the chopsticks",
	Long: `Sushi Tower is a terminal reflex game. Tap left or right to knock the
bottom piece off the tower. Never stand on the side its chopsticks stick
out of, and keep chopping before your health runs out.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  menu     - Interactive mode picker and replay browser
  serve    - Start SSH server for remote play
  sim      - Run a headless bot game
  replays  - List recorded runs
  replay   - Verify a recorded run

Environment (also read from ./.env):
  SUSHI_DB, SUSHI_CONFIG, SUSHI_SSH_ADDR, SUSHI_LOG_LEVEL

Examples:
  sushi play
  sushi play sushi_zen
  sushi serve --ssh :2222
  sushi sim --seed 7 --policy random
  sushi replay 1f2e3d4c`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sushi/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// applyEnv loads ./.env and fills flags the user did not set from the
// environment.
func applyEnv(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	envFlag(cmd, "db", config.EnvDB, &flagDBPath)
	envFlag(cmd, "log-level", config.EnvLogLevel, &flagLogLevel)
	envFlag(cmd, "config", config.EnvConfig, &flagConfig)
	envFlag(cmd, "ssh", config.EnvSSHAddr, &flagSSHAddr)

	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return nil
}

// envFlag copies an environment variable into target when the command has
// the flag and it was not given on the command line.
func envFlag(cmd *cobra.Command, name, env string, target *string) {
	f := cmd.Flags().Lookup(name)
	if f == nil || f.Changed {
		return
	}
	*target = config.EnvOr(env, *target)
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// openLogFile opens the log file used while the alt screen owns the
// terminal. The caller closes it.
func openLogFile() (*os.File, error) {
	path, err := config.ExpandHome(filepath.Join("~", config.HomeDir, "sushi.log"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// tuiLogger returns a file logger for TUI commands, or a discarding one
// if the file cannot be opened.
func tuiLogger() (*log.Logger, func()) {
	f, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "sushi"), func() { f.Close() }
}
