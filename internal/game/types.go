package game

import "fmt"

// Position is a board cell. Col grows to the right, Row grows downward.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Add returns the position one step along d.
func (p Position) Add(d Direction) Position {
	return Position{Col: p.Col + d.DCol, Row: p.Row + d.DRow}
}

// String returns "(col,row)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Direction is a unit movement vector. Only Up, Down, Left and Right are valid.
type Direction struct {
	DCol int `json:"dCol"`
	DRow int `json:"dRow"`
}

var (
	Up    = Direction{DCol: 0, DRow: -1}
	Down  = Direction{DCol: 0, DRow: 1}
	Left  = Direction{DCol: -1, DRow: 0}
	Right = Direction{DCol: 1, DRow: 0}
)

// Opposite returns the reversed vector.
func (d Direction) Opposite() Direction {
	return Direction{DCol: -d.DCol, DRow: -d.DRow}
}

// IsZero reports whether d is the zero vector.
func (d Direction) IsZero() bool {
	return d.DCol == 0 && d.DRow == 0
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Board is the grid the snake lives on.
type Board struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// Contains reports whether p lies on the board.
func (b Board) Contains(p Position) bool {
	return p.Col >= 0 && p.Col < b.Cols && p.Row >= 0 && p.Row < b.Rows
}

// Center returns the start cell of a new round.
func (b Board) Center() Position {
	return Position{Col: b.Cols / 2, Row: b.Rows / 2}
}

// Cells returns the total number of cells.
func (b Board) Cells() int {
	return b.Cols * b.Rows
}
