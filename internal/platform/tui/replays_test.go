package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
	"github.com/vovakirdan/sushi-tower/internal/replay"
	"github.com/vovakirdan/sushi-tower/internal/storage"
)

func seedRuns(t *testing.T, store *storage.Store, n int) {
	t.Helper()
	for i := range n {
		j := replay.Autoplay(replay.AutoplayOptions{
			Variant: "sushi",
			Seed:    int64(i + 1),
			Rules:   core.DefaultRules(),
			Policy:  replay.Random(int64(i + 1)),
		})
		if err := store.SaveRun(j); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
}

func sendReplays(t *testing.T, m ReplaysModel, msgs ...tea.Msg) ReplaysModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ReplaysModel)
	}
	return m
}

func TestReplaysVerifyAndDelete(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store, 2)

	m := NewReplaysModel(store, 100, 30)
	if len(m.table.Rows()) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.table.Rows()))
	}

	m = sendReplays(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.HasPrefix(m.Status(), "✓") {
		t.Errorf("verify status = %q", m.Status())
	}

	m = sendReplays(t, m, runeKey('x'))
	if !strings.HasPrefix(m.Status(), "deleted") {
		t.Errorf("delete status = %q", m.Status())
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("rows after delete = %d, want 1", len(m.table.Rows()))
	}
}

func TestReplaysBackAndQuit(t *testing.T) {
	store := openStore(t)

	m := sendReplays(t, NewReplaysModel(store, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}

	m = sendReplays(t, NewReplaysModel(store, 80, 24), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestReplaysEmptyStates(t *testing.T) {
	if view := NewReplaysModel(nil, 80, 24).View(); !strings.Contains(view, "not available") {
		t.Error("nil store should say storage is unavailable")
	}

	store := openStore(t)
	if view := NewReplaysModel(store, 80, 24).View(); !strings.Contains(view, "No runs recorded yet") {
		t.Error("empty store should say no runs")
	}
}

func TestRunRows(t *testing.T) {
	created := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)
	rows := RunRows([]storage.RunSummary{
		{ID: "0123456789abcdef", Variant: "sushi", Score: 12, Taps: 13, Finished: true, Reason: "starved", CreatedAt: created},
		{ID: "abc", Variant: "sushi_zen", Score: 3, Taps: 3},
	})

	want := []string{"01234567", "sushi", "12", "13", "starved", "Mar 05 14:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][0] != "abc" || rows[1][4] != "quit" {
		t.Errorf("unfinished row = %v", rows[1])
	}
}
