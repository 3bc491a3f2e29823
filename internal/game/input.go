package game

// Key is a symbolic key identifier delivered by an input frontend.
type Key uint8

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
)

// String returns human-readable key name
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeySpace:
		return "space"
	case KeyEscape:
		return "escape"
	default:
		return "other"
	}
}

// MapKey translates an arrow key into a movement direction.
//
// It returns false ("no change") for non-arrow keys and for the exact
// reverse of last, the direction actually applied on the previous tick.
// Pressing the current direction is accepted and simply re-confirms it.
func MapKey(key Key, last Direction) (Direction, bool) {
	var d Direction
	switch key {
	case KeyUp:
		d = Up
	case KeyDown:
		d = Down
	case KeyLeft:
		d = Left
	case KeyRight:
		d = Right
	default:
		return Direction{}, false
	}

	if d == last.Opposite() {
		return Direction{}, false
	}
	return d, true
}

// IsRestartKey reports whether key restarts a finished round.
func IsRestartKey(key Key, gameOver bool) bool {
	return gameOver && key == KeySpace
}
