package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cobra/internal/game"
)

// keyFromMsg translates a terminal key press into the engine's key set.
func keyFromMsg(msg tea.KeyMsg) game.Key {
	switch msg.Type {
	case tea.KeyUp:
		return game.KeyUp
	case tea.KeyDown:
		return game.KeyDown
	case tea.KeyLeft:
		return game.KeyLeft
	case tea.KeyRight:
		return game.KeyRight
	case tea.KeySpace:
		return game.KeySpace
	case tea.KeyEsc, tea.KeyCtrlC:
		return game.KeyEscape
	}

	switch msg.String() {
	case " ":
		return game.KeySpace
	case "q":
		return game.KeyEscape
	}
	return game.KeyOther
}
