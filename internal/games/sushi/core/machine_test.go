package core_test

import (
	"testing"

	"github.com/vovakirdan/sushi-tower/internal/games/sushi/core"
)

// newReady returns a machine already moved to the ready phase.
func newReady(t *testing.T, rng core.RandomSource, listeners ...core.Listener) *core.Machine {
	t.Helper()
	m := core.NewMachine(core.DefaultRules(), rng, listeners...)
	if !m.PlayPressed() {
		t.Fatal("PlayPressed from title should move to ready")
	}
	return m
}

func TestNewMachineSetup(t *testing.T) {
	m := core.NewMachine(core.DefaultRules(), core.NewRand(42))

	if m.Phase() != core.PhaseTitle {
		t.Errorf("initial phase should be title, got %v", m.Phase())
	}
	if m.Tower().Len() != 12 {
		t.Errorf("tower length should be 12, got %d", m.Tower().Len())
	}
	if got := m.Tower().At(0).Side; got != core.SideNone {
		t.Errorf("index 0 should be none, got %v", got)
	}
	if got := m.Tower().At(1).Side; got != core.SideRight {
		t.Errorf("index 1 should be right, got %v", got)
	}
	if m.Health() != 1.0 {
		t.Errorf("initial health should be 1.0, got %v", m.Health())
	}
	if m.Score() != 0 {
		t.Errorf("initial score should be 0, got %d", m.Score())
	}
	if m.CharacterSide() != core.SideLeft {
		t.Errorf("character should start on the left, got %v", m.CharacterSide())
	}
}

func TestSetupEmitsAppendedEvents(t *testing.T) {
	rec := &core.Recorder{}
	core.NewMachine(core.DefaultRules(), core.NewRand(1), rec)

	if len(rec.Events) != 12 {
		t.Fatalf("expected 12 events, got %d", len(rec.Events))
	}
	for i, e := range rec.Events {
		pa, ok := e.(core.PieceAppended)
		if !ok {
			t.Fatalf("event %d: expected PieceAppended, got %T", i, e)
		}
		if pa.Index != i {
			t.Errorf("event %d: expected index %d, got %d", i, i, pa.Index)
		}
	}
}

func TestTapIgnoredOutsideReadyAndPlaying(t *testing.T) {
	m := core.NewMachine(core.DefaultRules(), core.NewRand(1))
	before := m.Tower().Pieces()

	res := m.Tap(core.SideRight)

	if res.Accepted {
		t.Error("tap in title should not be accepted")
	}
	if m.Phase() != core.PhaseTitle {
		t.Errorf("phase should stay title, got %v", m.Phase())
	}
	if m.CharacterSide() != core.SideLeft {
		t.Error("character should not move in title")
	}
	if len(m.Tower().Pieces()) != len(before) || m.Tower().At(0) != before[0] {
		t.Error("tower should not change in title")
	}
}

func TestTickIgnoredOutsidePlaying(t *testing.T) {
	m := newReady(t, core.NewRand(1))

	for i := 0; i < 500; i++ {
		m.Tick()
	}

	if m.Health() != 1.0 {
		t.Errorf("ready phase should not decay health, got %v", m.Health())
	}
	if m.Ticks() != 0 {
		t.Errorf("ready phase should not count ticks, got %d", m.Ticks())
	}
}

func TestFirstTapStartsPlaying(t *testing.T) {
	m := newReady(t, core.NewRand(1))

	// Front piece is none, any side survives
	res := m.Tap(core.SideLeft)

	if !res.Accepted || res.Matched {
		t.Fatalf("expected accepted non-fatal tap, got %+v", res)
	}
	if m.Phase() != core.PhasePlaying {
		t.Errorf("phase should be playing, got %v", m.Phase())
	}
}

func TestTapHitScenario(t *testing.T) {
	m := newReady(t, core.NewRand(3))
	m.Tap(core.SideLeft) // Clear the neutral seed piece; front is now the right seed piece

	// Drain some health so the gain is visible
	for i := 0; i < 30; i++ {
		m.Tick()
	}
	health := m.Health()
	score := m.Score()

	res := m.Tap(core.SideLeft)

	if res.Matched {
		t.Fatal("left player against right piece should survive")
	}
	if res.Piece.Side != core.SideRight {
		t.Errorf("resolved piece should be right, got %v", res.Piece.Side)
	}
	if m.Score() != score+1 {
		t.Errorf("score should be %d, got %d", score+1, m.Score())
	}
	if diff := m.Health() - (health + 0.1); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("health should be %v, got %v", health+0.1, m.Health())
	}
	if m.Tower().Len() != 12 {
		t.Errorf("tower length should stay 12, got %d", m.Tower().Len())
	}
}

func TestHealthGainIsCapped(t *testing.T) {
	m := newReady(t, core.NewRand(1))
	m.Tap(core.SideLeft)

	if m.Health() != 1.0 {
		t.Errorf("health should be capped at 1.0, got %v", m.Health())
	}
}

func TestTapDeathScenario(t *testing.T) {
	rec := &core.Recorder{}
	m := newReady(t, core.NewRand(5), rec)
	m.Tap(core.SideLeft) // Front becomes the right seed piece

	before := m.Tower().Pieces()
	health, score := m.Health(), m.Score()
	rec.Reset()

	res := m.Tap(core.SideRight)

	if !res.Matched {
		t.Fatal("right player against right piece should die")
	}
	if m.Phase() != core.PhaseGameOver {
		t.Errorf("phase should be gameOver, got %v", m.Phase())
	}
	if m.Health() != health || m.Score() != score {
		t.Errorf("meters should be frozen, got health %v score %d", m.Health(), m.Score())
	}
	after := m.Tower().Pieces()
	if len(after) != len(before) {
		t.Fatalf("tower length changed from %d to %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("piece %d changed on death", i)
		}
	}

	gameOvers := rec.Count(func(e core.Event) bool {
		g, ok := e.(core.GameOverEntered)
		return ok && g.Reason == core.ReasonCollision
	})
	if gameOvers != 1 {
		t.Errorf("expected one collision game over event, got %d", gameOvers)
	}
	scoreEvents := rec.Count(func(e core.Event) bool {
		_, ok := e.(core.ScoreChanged)
		return ok
	})
	if scoreEvents != 0 {
		t.Errorf("death should not emit score changes, got %d", scoreEvents)
	}
}

func TestStarvationScenario(t *testing.T) {
	m := newReady(t, core.NewRand(1))
	m.Tap(core.SideLeft)

	ended := 0
	for i := 1; i <= 101; i++ {
		if m.Tick() {
			ended = i
			break
		}
	}

	if ended == 0 {
		t.Fatal("101 ticks from full health should end the game")
	}
	if ended < 100 {
		t.Errorf("game ended too early at tick %d", ended)
	}
	if m.Phase() != core.PhaseGameOver {
		t.Errorf("phase should be gameOver, got %v", m.Phase())
	}
	if m.Health() >= 0 {
		t.Errorf("raw health should be below zero, got %v", m.Health())
	}
	if m.DisplayHealth() != 0 {
		t.Errorf("display health should clamp to 0, got %v", m.DisplayHealth())
	}

	// Frozen after game over
	frozen := m.Health()
	m.Tick()
	m.Tap(core.SideLeft)
	if m.Health() != frozen {
		t.Errorf("health changed after game over: %v -> %v", frozen, m.Health())
	}
}

func TestTowerLengthConstantWhilePlaying(t *testing.T) {
	m := newReady(t, core.NewRand(2024))

	for i := 0; i < 500 && m.Phase() != core.PhaseGameOver; i++ {
		front, _ := m.Tower().Front()
		side := front.Side.Opposite()
		if side == core.SideNone {
			side = core.SideLeft
		}
		m.Tap(side)
		if m.Tower().Len() != 12 {
			t.Fatalf("tap %d: tower length %d, expected 12", i, m.Tower().Len())
		}
		if h := m.Health(); h < 0 || h > 1 {
			t.Fatalf("tap %d: health %v out of range", i, h)
		}
	}

	if m.Phase() != core.PhasePlaying {
		t.Errorf("a perfect player should still be playing, got %v", m.Phase())
	}
	if m.Score() != 500 {
		t.Errorf("expected score 500, got %d", m.Score())
	}
}

func TestPieceResolvedExitIsOppositeOfStance(t *testing.T) {
	rec := &core.Recorder{}
	m := newReady(t, core.NewRand(1), rec)
	rec.Reset()

	m.Tap(core.SideRight)

	var resolved *core.PieceResolved
	for _, e := range rec.Events {
		if pr, ok := e.(core.PieceResolved); ok {
			resolved = &pr
		}
	}
	if resolved == nil {
		t.Fatal("expected a PieceResolved event")
	}
	if resolved.Exit != core.SideLeft {
		t.Errorf("exit should be left for a right stance, got %v", resolved.Exit)
	}
}

func TestPlayPressedAfterGameOverRequestsRestart(t *testing.T) {
	rec := &core.Recorder{}
	m := newReady(t, core.NewRand(1), rec)
	m.Tap(core.SideLeft)
	m.Tap(core.SideRight) // Dies on the right seed piece
	rec.Reset()

	if m.PlayPressed() {
		t.Error("PlayPressed after game over should not change phase")
	}
	if m.Phase() != core.PhaseGameOver {
		t.Errorf("machine must not resurrect itself, got %v", m.Phase())
	}
	if len(rec.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(rec.Events))
	}
	if _, ok := rec.Events[0].(core.RestartRequested); !ok {
		t.Errorf("expected RestartRequested, got %T", rec.Events[0])
	}
}

func TestPlayPressedWhilePlayingIsNoop(t *testing.T) {
	m := newReady(t, core.NewRand(1))
	if m.PlayPressed() {
		t.Error("PlayPressed in ready should be a no-op")
	}
	m.Tap(core.SideLeft)
	if m.PlayPressed() {
		t.Error("PlayPressed in playing should be a no-op")
	}
	if m.Phase() != core.PhasePlaying {
		t.Errorf("phase should stay playing, got %v", m.Phase())
	}
}

func TestTapNonePanics(t *testing.T) {
	m := newReady(t, core.NewRand(1))
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a none tap")
		}
	}()
	m.Tap(core.SideNone)
}

func TestMachineDeterminism(t *testing.T) {
	run := func() (int, []core.Piece) {
		m := core.NewMachine(core.DefaultRules(), core.NewRand(777))
		m.PlayPressed()
		for i := 0; i < 50 && m.Phase() != core.PhaseGameOver; i++ {
			if i%2 == 0 {
				m.Tap(core.SideLeft)
			} else {
				m.Tap(core.SideRight)
			}
			m.Tick()
		}
		return m.Score(), m.Tower().Pieces()
	}

	s1, p1 := run()
	s2, p2 := run()
	if s1 != s2 {
		t.Errorf("scores differ: %d vs %d", s1, s2)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("towers diverge at %d", i)
		}
	}
}

func TestInvalidRulesPanic(t *testing.T) {
	rules := core.DefaultRules()
	rules.LeftProbability = 0.8
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid rules")
		}
	}()
	core.NewMachine(rules, core.NewRand(1))
}
