package core

// TapResult describes how a tap was handled.
type TapResult struct {
	Accepted bool  // False when the phase ignores taps
	Matched  bool  // The tap collided with an armed piece
	Piece    Piece // The front piece that was resolved
}

// Machine is the authoritative state controller for one game session.
// A restart never reuses a Machine: hosts construct a new one.
type Machine struct {
	rules     Rules
	phase     Phase
	health    float64
	score     int
	ticks     int // Ticks spent in the playing phase
	tower     *Tower
	character *Character
	events    emitter
}

// NewMachine builds a session in the title phase with a freshly seeded
// tower: the fixed seed pieces followed by the generated ones.
func NewMachine(rules Rules, rng RandomSource, listeners ...Listener) *Machine {
	if err := rules.Validate(); err != nil {
		panic("sushi: invalid rules: " + err.Error())
	}

	m := &Machine{
		rules:     rules,
		phase:     PhaseTitle,
		health:    rules.InitialHealth,
		tower:     NewTower(rules, rng),
		character: NewCharacter(),
		events:    emitter{listeners: listeners},
	}
	m.tower.emit = m.events.emit
	m.character.emit = m.events.emit

	for _, side := range rules.seedSides() {
		m.tower.Append(side)
	}
	if rules.GeneratedPieces > 0 {
		m.tower.AppendRandom(rules.GeneratedPieces)
	}

	return m
}

// Subscribe adds a listener for subsequent events.
func (m *Machine) Subscribe(l Listener) {
	m.events.listeners = append(m.events.listeners, l)
}

// Phase returns the active phase.
func (m *Machine) Phase() Phase { return m.phase }

// Health returns the raw health value. After a starvation game over it may
// be slightly below zero.
func (m *Machine) Health() float64 { return m.health }

// DisplayHealth returns health clamped to [0, 1] for meters.
func (m *Machine) DisplayHealth() float64 {
	return clamp01(m.health)
}

// Score returns the number of pieces cleared.
func (m *Machine) Score() int { return m.score }

// Ticks returns the number of ticks applied while playing.
func (m *Machine) Ticks() int { return m.ticks }

// Rules returns the tuning the session was built with.
func (m *Machine) Rules() Rules { return m.rules }

// Tower exposes the tower for read access. Callers must not mutate it.
func (m *Machine) Tower() *Tower { return m.tower }

// CharacterSide returns the character's stance.
func (m *Machine) CharacterSide() Side { return m.character.Side() }

// State returns a snapshot of the player's meters.
func (m *Machine) State() PlayerState {
	return PlayerState{
		Health:        m.health,
		Score:         m.score,
		CharacterSide: m.character.Side(),
	}
}

// PlayPressed handles the play button. From title it moves to ready. After
// game over it requests a restart, which the host fulfils by building a new
// machine. Returns true if the phase changed.
func (m *Machine) PlayPressed() bool {
	switch m.phase {
	case PhaseTitle:
		m.setPhase(PhaseReady)
		return true
	case PhaseGameOver:
		m.events.emit(RestartRequested{})
	}
	return false
}

// Tap resolves a left or right tap. Taps outside ready/playing are ignored.
func (m *Machine) Tap(side Side) TapResult {
	if !side.Playable() {
		panic("sushi: tap side must be left or right, got " + side.String())
	}
	if !m.phase.AcceptsTaps() {
		return TapResult{}
	}

	// First accepted tap starts the game
	if m.phase == PhaseReady {
		m.setPhase(PhasePlaying)
	}

	m.character.SetSide(side)
	res := m.tower.ResolveFront(side)

	if res.Matched {
		m.gameOver(ReasonCollision)
		return TapResult{Accepted: true, Matched: true, Piece: res.Front}
	}

	m.health = clamp01(m.health + m.rules.HealthGain)
	m.score++

	m.events.emit(PieceResolved{PieceID: res.Front.ID, Side: res.Front.Side, Exit: side.Opposite()})
	m.events.emit(HealthChanged{Health: m.health})
	m.events.emit(ScoreChanged{Score: m.score})

	return TapResult{Accepted: true, Piece: res.Front}
}

// Tick applies one step of health decay while playing. Returns true if the
// tick ended the game.
func (m *Machine) Tick() bool {
	if m.phase != PhasePlaying {
		return false
	}

	m.ticks++
	m.health -= m.rules.HealthDecay
	m.events.emit(HealthChanged{Health: m.health})

	if m.health < 0 {
		m.gameOver(ReasonStarved)
		return true
	}
	return false
}

func (m *Machine) gameOver(reason GameOverReason) {
	m.setPhase(PhaseGameOver)
	m.events.emit(GameOverEntered{Reason: reason, Score: m.score})
}

func (m *Machine) setPhase(p Phase) {
	from := m.phase
	m.phase = p
	m.events.emit(PhaseChanged{From: from, To: p})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
