package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cobra/internal/game"
	"cobra/internal/render"
)

// Each board cell is two terminal columns wide so it looks square.
const (
	cellSnake = "██"
	cellFood  = "██"
	cellEmpty = "  "
)

type styles struct {
	board  lipgloss.Style
	snake  lipgloss.Style
	head   lipgloss.Style
	food   lipgloss.Style
	score  lipgloss.Style
	banner lipgloss.Style
	help   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Background(lipgloss.Color("#222222")),
		snake:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		head:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d0d0")),
		food:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		score:  lipgloss.NewStyle().Bold(true),
		banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f")),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (m Model) View() string {
	snap := m.snap
	if snap == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.score.Render(fmt.Sprintf("Score: %d", snap.Score)))
	b.WriteString("\n")
	b.WriteString(m.styles.board.Render(m.drawBoard(snap)))
	b.WriteString("\n")

	if banner := render.Banner(snap); banner != "" {
		b.WriteString(m.styles.banner.Render(banner))
		b.WriteString(m.styles.help.Render("  space: restart  esc: quit"))
	} else {
		b.WriteString(m.styles.help.Render("arrows: steer  esc: quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// drawBoard renders the grid row by row.
func (m Model) drawBoard(snap *game.Snapshot) string {
	body := make(map[game.Position]bool, len(snap.Snake))
	for _, seg := range snap.Snake {
		body[seg] = true
	}
	head := snap.Head()

	rows := make([]string, snap.Board.Rows)
	var line strings.Builder
	for row := 0; row < snap.Board.Rows; row++ {
		line.Reset()
		for col := 0; col < snap.Board.Cols; col++ {
			p := game.Position{Col: col, Row: row}
			switch {
			case p == head:
				line.WriteString(m.styles.head.Render(cellSnake))
			case body[p]:
				line.WriteString(m.styles.snake.Render(cellSnake))
			case p == snap.Food && !snap.Won:
				line.WriteString(m.styles.food.Render(cellFood))
			default:
				line.WriteString(cellEmpty)
			}
		}
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}
