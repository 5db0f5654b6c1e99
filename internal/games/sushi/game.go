// Package sushi adapts the sushi tower core to the arcade platform: it maps
// actions to taps, owns the session lifecycle and renders the tower.
package sushi

import (
	"github.com/vovakirdan/sushi-tower/internal/config"
	platformcore "github.com/vovakirdan/sushi-tower/internal/core"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
	"github.com/vovakirdan/sushi-tower/internal/registry"
	"github.com/vovakirdan/sushi-tower/internal/replay"
)

// Mode represents the game variant.
type Mode string

const (
	ModeClassic Mode = "sushi"
	ModeZen     Mode = "sushi_zen" // No health decay
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Minimum terminal size for the tower, HUD and character.
const (
	minScreenW = 32
	minScreenH = 16
)

// Game implements the sushi tower game for the platform.
type Game struct {
	mode Mode
	cfg  config.SushiConfig

	// Current session
	machine  *core.Machine
	recorder *replay.Recorder
	anim     *Animator
	seed     int64 // Seed of the current session
	reason   core.GameOverReason
	session  int64 // Sessions started since Reset

	baseSeed int64
	restart  bool // RestartRequested seen during this step
	ended    bool // GameOverEntered seen during this step

	// Finished run waiting to be collected by the host
	finished    replay.Journal
	hasFinished bool

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates the classic game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewZen creates the zen game, where health never decays.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

func init() {
	registry.Register("Chop the tower, dodge the chopsticks", func() registry.Game {
		return New()
	})
	registry.Register("No health decay, just rhythm", func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Sushi Tower (Zen)"
	}
	return "Sushi Tower"
}

// Reset loads the configuration and starts a fresh session on the title
// screen.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	// Load game config
	sc, err := config.LoadSushi(configPath)
	if err != nil {
		sc = config.DefaultSushiConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplySushiPreset(&sc, difficultyPreset)
	}
	if g.mode == ModeZen {
		config.ApplySushiPreset(&sc, config.DifficultyZen)
	}
	g.cfg = sc

	g.baseSeed = cfg.Seed
	g.session = 0
	g.paused = false
	g.hasFinished = false
	g.finished = replay.Journal{}
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.newSession()
}

// Resize updates the layout without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// newSession discards the current machine and builds a new one. Each
// session gets its own seed derived from the base seed.
func (g *Game) newSession() {
	g.seed = g.baseSeed + g.session
	g.session++

	g.anim = NewAnimator(g.cfg.Presentation)
	g.machine = core.NewMachine(g.cfg.Rules(), core.NewRand(g.seed), g.anim)
	g.recorder = replay.NewRecorder(g.ID(), g.seed, g.machine)
	// After the recorder, so finished journals are complete
	g.machine.Subscribe(core.ListenerFunc(g.onEvent))
	g.restart = false
}

func (g *Game) onEvent(e core.Event) {
	switch ev := e.(type) {
	case core.RestartRequested:
		g.restart = true
	case core.GameOverEntered:
		g.reason = ev.Reason
		g.finished = g.recorder.Journal()
		g.hasFinished = true
		g.ended = true
	}
}

// Step applies the frame's actions in order, then advances one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	g.ended = false
	for _, action := range in.Actions {
		g.apply(action)
	}

	if !g.paused {
		g.machine.Tick()
		g.anim.Update()
	}

	return platformcore.StepResult{State: g.State(), RunEnded: g.ended}
}

// apply handles one platform action.
func (g *Game) apply(action platformcore.Action) {
	phase := g.machine.Phase()

	switch action {
	case platformcore.ActionPause:
		if phase == core.PhaseReady || phase == core.PhasePlaying {
			g.paused = !g.paused
		}
		return
	}

	if g.paused {
		return
	}

	switch action {
	case platformcore.ActionConfirm, platformcore.ActionRestart:
		if action == platformcore.ActionRestart && phase != core.PhaseGameOver {
			return
		}
		g.machine.PlayPressed()
		if g.restart {
			g.newSession()
			g.machine.PlayPressed()
		}
	case platformcore.ActionLeft:
		g.machine.Tap(core.SideLeft)
	case platformcore.ActionRight:
		g.machine.Tap(core.SideRight)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.machine.Score(),
		GameOver: g.machine.Phase() == core.PhaseGameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Machine exposes the current session's state machine.
func (g *Game) Machine() *core.Machine {
	return g.machine
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}

// TakeFinishedRun returns the journal of the last finished session once.
func (g *Game) TakeFinishedRun() (replay.Journal, bool) {
	if !g.hasFinished {
		return replay.Journal{}, false
	}
	g.hasFinished = false
	return g.finished, true
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/A/H: Left | →/D/L: Right | Enter: Play | P: Pause | Q: Quit"
}
