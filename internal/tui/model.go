package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cobra/internal/game"
)

// Session is the game the model drives. *app.App satisfies it, so the
// terminal and window frontends share one tick and input path.
type Session interface {
	// HandleKey applies a key and reports whether the state changed
	HandleKey(key game.Key) bool
	// Tick advances one step and returns the published snapshot
	Tick() *game.Snapshot
	// Current returns the latest published snapshot
	Current() *game.Snapshot
	TickInterval() time.Duration
}

// Model is the Bubble Tea model wrapping a game session.
type Model struct {
	session  Session
	interval time.Duration

	snap   *game.Snapshot
	styles styles
}

// NewModel creates a model for session.
func NewModel(session Session) Model {
	interval := session.TickInterval()
	if interval <= 0 {
		interval = time.Second / 8
	}

	return Model{
		session:  session,
		interval: interval,
		snap:     session.Current(),
		styles:   defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := keyFromMsg(msg)
		if key == game.KeyEscape {
			return m, tea.Quit
		}
		if m.session.HandleKey(key) {
			m.snap = m.session.Current()
		}
		return m, nil

	case TickMsg:
		m.snap = m.session.Tick()
		return m, tickCmd(m.interval)
	}
	return m, nil
}

// Snapshot returns the state the view is drawn from.
func (m Model) Snapshot() *game.Snapshot {
	return m.snap
}
