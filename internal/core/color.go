package core

// Color is the foreground color of a screen cell. The terminal host maps
// each value to an ANSI 256-color style.
type Color uint8

const (
	ColorDefault     Color = iota
	ColorRed               // Game over tint
	ColorGreen             // Health above half
	ColorYellow            // Score, low health, hints
	ColorBrightRed         // Critical health
	ColorBrightWhite       // Titles and the character
	ColorOrange            // Rice body of a piece
	ColorPink              // Fish topping
	ColorBrown             // Chopsticks
	ColorGray              // Control hints
)
