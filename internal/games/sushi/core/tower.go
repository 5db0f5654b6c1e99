package core

import "fmt"

// ResolveResult is the outcome of resolving the front piece.
type ResolveResult struct {
	Matched bool  // Front piece was armed on the player's side (death)
	Front   Piece // The piece that was resolved
}

// Tower owns the ordered stack of pieces, bottom (index 0) to top.
type Tower struct {
	pieces []Piece
	nextID uint64
	rng    RandomSource
	rules  Rules
	emit   func(Event)
}

// NewTower creates an empty tower drawing sides from rng.
func NewTower(rules Rules, rng RandomSource) *Tower {
	if rng == nil {
		panic("sushi: tower needs a random source")
	}
	return &Tower{
		pieces: make([]Piece, 0, rules.TowerLength()+1),
		nextID: 1,
		rng:    rng,
		rules:  rules,
		emit:   func(Event) {},
	}
}

// Len returns the number of pieces in the tower.
func (t *Tower) Len() int {
	return len(t.pieces)
}

// Front returns the piece at index 0, the next one to resolve.
func (t *Tower) Front() (Piece, bool) {
	if len(t.pieces) == 0 {
		return Piece{}, false
	}
	return t.pieces[0], true
}

// Top returns the most recently appended piece.
func (t *Tower) Top() (Piece, bool) {
	if len(t.pieces) == 0 {
		return Piece{}, false
	}
	return t.pieces[len(t.pieces)-1], true
}

// At returns the piece at stack index i.
func (t *Tower) At(i int) Piece {
	return t.pieces[i]
}

// Pieces returns a copy of the stack, bottom first.
func (t *Tower) Pieces() []Piece {
	out := make([]Piece, len(t.pieces))
	copy(out, t.pieces)
	return out
}

// Append pushes a piece with the given side on top of the tower.
func (t *Tower) Append(side Side) Piece {
	p := Piece{ID: t.nextID, Side: side}
	t.nextID++
	t.pieces = append(t.pieces, p)
	t.emit(PieceAppended{Piece: p, Index: len(t.pieces) - 1})
	return p
}

// AppendRandom appends count pieces one at a time. A piece following an
// armed piece is always neutral; otherwise the side is drawn from the
// configured left/right/none split.
func (t *Tower) AppendRandom(count int) {
	if count <= 0 {
		panic(fmt.Sprintf("sushi: AppendRandom count must be positive, got %d", count))
	}
	for i := 0; i < count; i++ {
		t.Append(t.nextSide())
	}
}

// nextSide picks the side of the next generated piece.
func (t *Tower) nextSide() Side {
	if top, ok := t.Top(); ok && top.Side != SideNone {
		return SideNone
	}

	r := t.rng.Float64()
	switch {
	case r < t.rules.LeftProbability:
		return SideLeft
	case r < t.rules.LeftProbability+t.rules.RightProbability:
		return SideRight
	default:
		return SideNone
	}
}

// ResolveFront compares the front piece against the player's side. A match
// leaves the tower untouched. Otherwise the front piece is removed, the rest
// shift down and one random piece is appended so the length stays constant.
func (t *Tower) ResolveFront(player Side) ResolveResult {
	if len(t.pieces) == 0 {
		panic("sushi: ResolveFront on an empty tower")
	}

	front := t.pieces[0]
	if front.Side == player {
		return ResolveResult{Matched: true, Front: front}
	}

	copy(t.pieces, t.pieces[1:])
	t.pieces = t.pieces[:len(t.pieces)-1]
	t.AppendRandom(1)

	return ResolveResult{Matched: false, Front: front}
}
