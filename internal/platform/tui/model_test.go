package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sushi-tower/internal/core"
	"github.com/vovakirdan/sushi-tower/internal/games/sushi"
	"github.com/vovakirdan/sushi-tower/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 42}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newSushiModel(t *testing.T, opts Options) GameModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	opts.Logger = log.New(io.Discard)
	m := NewGameModel(sushi.New(), testConfig(), opts)
	m.Init()
	return m
}

func send(t *testing.T, m GameModel, msgs ...tea.Msg) GameModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		gm, ok := next.(GameModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = gm
	}
	return m
}

// crashRun plays the seeded opening into the chopsticks.
func crashRun(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return send(t, m,
		tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{},
		runeKey('a'), TickMsg{},
		runeKey('d'), TickMsg{},
	)
}

func TestGameModelArchivesFinishedRun(t *testing.T) {
	store := openStore(t)
	m := newSushiModel(t, Options{Store: store, Record: true})

	m = crashRun(t, m)
	if !m.gameState.GameOver {
		t.Fatal("run should be over")
	}
	if m.SavedRuns() != 1 {
		t.Errorf("SavedRuns() = %d, want 1", m.SavedRuns())
	}

	// More ticks do not archive twice
	m = send(t, m, TickMsg{}, TickMsg{})
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("stored runs = %d, want 1", len(runs))
	}
	if runs[0].Variant != "sushi" || runs[0].Score != 1 || runs[0].Reason != "collision" {
		t.Errorf("unexpected run %+v", runs[0])
	}

	// Retry and crash again records a second run
	m = send(t, m, runeKey('r'), TickMsg{})
	if m.gameState.GameOver {
		t.Fatal("retry should start a new session")
	}
	m = send(t, m, runeKey('a'), TickMsg{}, runeKey('d'), TickMsg{})
	if m.SavedRuns() != 2 {
		t.Errorf("SavedRuns() after retry = %d, want 2", m.SavedRuns())
	}
}

func TestGameModelRecordDisabled(t *testing.T) {
	store := openStore(t)
	m := newSushiModel(t, Options{Store: store, Record: false})

	m = crashRun(t, m)
	if m.SavedRuns() != 0 {
		t.Errorf("SavedRuns() = %d, want 0", m.SavedRuns())
	}
}

func TestGameModelWithoutStore(t *testing.T) {
	m := newSushiModel(t, Options{Record: true})
	m = crashRun(t, m)
	if !m.gameState.GameOver || m.SavedRuns() != 0 {
		t.Error("run should end without storage")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newSushiModel(t, Options{})

	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	m := newSushiModel(t, Options{Menu: true})

	// Back is ignored while playing
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored mid-run")
	}

	m = send(t, m, runeKey('p'), TickMsg{}, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestGameModelResizeKeepsSession(t *testing.T) {
	m := newSushiModel(t, Options{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('a'), TickMsg{})

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
	if m.game.State().Score != 1 {
		t.Error("resize should not restart the run")
	}
}

func TestGameModelView(t *testing.T) {
	m := newSushiModel(t, Options{})

	view := m.View()
	for _, want := range []string{"SUSHI TOWER", "chop left"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
