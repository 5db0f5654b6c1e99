package core

// Character tracks which side the player stands on.
type Character struct {
	side Side
	emit func(Event)
}

// NewCharacter returns a character standing on the left.
func NewCharacter() *Character {
	return &Character{side: SideLeft, emit: func(Event) {}}
}

// Side returns the current stance.
func (c *Character) Side() Side {
	return c.side
}

// SetSide moves the character. Only left and right are valid stances.
func (c *Character) SetSide(side Side) {
	if !side.Playable() {
		panic("sushi: character side must be left or right, got " + side.String())
	}
	c.side = side
	c.emit(CharacterSideChanged{Side: side})
}
