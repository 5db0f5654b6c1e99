package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sushi-tower/internal/platform/tui"
	"github.com/vovakirdan/sushi-tower/internal/replay"
	"github.com/vovakirdan/sushi-tower/internal/storage"
)

var (
	flagReplaysLimit int
	flagReplaysPlain bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded runs",
	Long: `Browse recorded runs in an interactive table.

Keys:
  Up/Down    - Select a run
  Enter/V    - Re-simulate and verify the selected run
  X/Delete   - Delete the selected run
  Esc/B      - Back
  Q          - Quit

With --plain, or when stdout is not a terminal, prints the list instead.

Examples:
  sushi replays
  sushi replays --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate and verify a recorded run",
	Long: `Re-simulate a recorded run from its seed, rules and taps and check that
it reaches the same score and ending. Any unique prefix of the run ID works.

Examples:
  sushi replay 1f2e3d4c`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of runs to list")
	replaysCmd.Flags().BoolVar(&flagReplaysPlain, "plain", false, "Print a plain table instead of the browser")
}

func runReplays(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	if flagReplaysPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		runs, err := store.RecentRuns(flagReplaysLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), runsTable(runs))
		return nil
	}

	cfg := runtimeConfig()
	_, err = tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
	return err
}

// runsTable renders runs as a bordered text table.
func runsTable(runs []storage.RunSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN", "MODE", "SCORE", "TAPS", "END", "DATE")
	for _, row := range tui.RunRows(runs) {
		t.Row(row...)
	}
	return t.String()
}

func runReplay(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	id, err := store.ResolveID(args[0])
	if err != nil {
		return err
	}
	j, err := store.LoadRun(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s, seed %d, %d taps)\n", j.ID, j.Variant, j.Seed, len(j.Taps))

	res, err := replay.Verify(j)
	if err != nil {
		return fmt.Errorf("run %s does not verify: %w", shortID(j.ID), err)
	}
	if j.Finished {
		fmt.Fprintf(out, "Verified: score %d, %s after %d ticks\n", res.Score, res.Reason, res.Ticks)
	} else {
		fmt.Fprintf(out, "Verified: score %d, quit after %d ticks\n", res.Score, res.Ticks)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
