package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sushi-tower/internal/config"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
	"github.com/vovakirdan/sushi-tower/internal/replay"
	"github.com/vovakirdan/sushi-tower/internal/storage"
)

var (
	flagSimTaps     int
	flagSimPolicy   string
	flagSimTapEvery int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless bot game",
	Long: `Play a run without a terminal UI using a simple bot.

Policies:
  greedy - Always chop away from the front piece's chopsticks
  random - Chop a random side every time

The bot taps once every --tap-every playing ticks. A greedy bot only loses
by running out of health, which needs the decay between two taps to
outweigh the refill of one tap (more than 10 ticks with the default rules).
Without --taps such a bot is rejected; any run stops after 10000 taps.

Examples:
  sushi sim
  sushi sim --seed 7 --policy random
  sushi sim --difficulty zen --taps 500
  sushi sim --save --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	addGameFlags(simCmd)
	simCmd.Flags().IntVar(&flagSimTaps, "taps", 0, "Stop after this many taps (0 = until game over)")
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", "greedy", "Bot policy: greedy, random")
	simCmd.Flags().IntVar(&flagSimTapEvery, "tap-every", 15, "Playing ticks between taps")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the run to the database")
}

func runSim(cmd *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	sc, err := config.LoadSushi(flagConfig)
	if err != nil {
		return err
	}
	if preset != "" {
		config.ApplySushiPreset(&sc, preset)
	}
	if err := checkSimOptions(flagSimPolicy, flagSimTaps, flagSimTapEvery, sc.Rules()); err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	policy, err := replay.ParsePolicy(flagSimPolicy, seed)
	if err != nil {
		return err
	}

	variant := string(sushi.ModeClassic)
	if preset == config.DifficultyZen {
		variant = string(sushi.ModeZen)
	}

	logger := newLogger(os.Stderr, "sushi-sim")
	logger.Info("starting bot", "policy", flagSimPolicy, "seed", seed, "difficulty", preset)

	start := time.Now()
	j := replay.Autoplay(replay.AutoplayOptions{
		Variant:  variant,
		Seed:     seed,
		Rules:    sc.Rules(),
		Policy:   policy,
		MaxTaps:  flagSimTaps,
		TapEvery: flagSimTapEvery,
	}, eventLogger(logger))
	logger.Debug("run simulated", "duration", time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:    %s\n", j.ID)
	fmt.Fprintf(out, "Seed:   %d\n", j.Seed)
	fmt.Fprintf(out, "Score:  %d\n", j.Score)
	fmt.Fprintf(out, "Taps:   %d\n", len(j.Taps))
	fmt.Fprintf(out, "Ticks:  %d\n", j.Ticks)
	if j.Finished {
		fmt.Fprintf(out, "Ended:  %s\n", j.Reason)
	} else {
		fmt.Fprintln(out, "Ended:  tap limit")
	}

	if !flagSimSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()
	if err := store.SaveRun(j); err != nil {
		return fmt.Errorf("cannot save run: %w", err)
	}
	fmt.Fprintf(out, "Saved to %s\n", flagDBPath)
	return nil
}

// checkSimOptions rejects bot settings that would never finish a run.
func checkSimOptions(policy string, taps, tapEvery int, rules core.Rules) error {
	if tapEvery < 0 {
		return fmt.Errorf("--tap-every must not be negative")
	}
	if taps < 0 {
		return fmt.Errorf("--taps must not be negative")
	}
	if policy == "greedy" && taps == 0 && replay.Endless(rules, tapEvery) {
		return fmt.Errorf("a greedy bot tapping every %d ticks never runs out of health with these rules, set --taps or raise --tap-every", tapEvery)
	}
	return nil
}

// eventLogger reports core events: every event at debug level, the end of
// the run at info.
func eventLogger(logger *log.Logger) core.Listener {
	return core.ListenerFunc(func(e core.Event) {
		switch ev := e.(type) {
		case core.GameOverEntered:
			logger.Info("game over", "reason", ev.Reason, "score", ev.Score)
		case core.PieceResolved:
			logger.Debug("piece resolved", "id", ev.PieceID, "side", ev.Side, "exit", ev.Exit)
		case core.PieceAppended:
			logger.Debug("piece appended", "id", ev.Piece.ID, "side", ev.Piece.Side, "index", ev.Index)
		case core.PhaseChanged:
			logger.Debug("phase changed", "from", ev.From, "to", ev.To)
		case core.ScoreChanged:
			logger.Debug("score", "value", ev.Score)
		case core.CharacterSideChanged:
			logger.Debug("tap", "side", ev.Side)
		}
	})
}
