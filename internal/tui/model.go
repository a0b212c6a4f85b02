package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/tracker"
	"github.com/julianstephens/microhabit/internal/tui/components/today"
)

const tabCount = 3

// habitRatedMsg carries the result of a persisted rating back into Update
type habitRatedMsg struct {
	outcome tracker.Outcome
	err     error
}

type Model struct {
	ctx        context.Context
	tracker    *tracker.Tracker
	state      constants.SessionState
	keys       KeyMap
	help       help.Model
	todayModel today.Model
	// month shown on the history tab
	historyYear  int
	historyMonth time.Month
	status       string
	err          error
	quitting     bool
	width        int
	height       int
}

func NewModel(ctx context.Context, t *tracker.Tracker) Model {
	now := t.Now()
	return Model{
		ctx:          ctx,
		tracker:      t,
		state:        constants.StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		todayModel:   today.New(t.Today(), 0, 0),
		historyYear:  now.Year(),
		historyMonth: now.Month(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		keys = append(keys, m.keys.Rate)
	case constants.StateHistory:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return m.todayModel.Init()
}

// rate persists a rating off the update loop
func (m Model) rate(habitID string, stars int) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.tracker.Rate(m.ctx, habitID, stars)
		return habitRatedMsg{outcome: outcome, err: err}
	}
}

// ratedStatus describes a rating result for the status line
func (m Model) ratedStatus(outcome tracker.Outcome) string {
	status := fmt.Sprintf("%+d points", outcome.PointsDelta)
	if outcome.LeveledUp() {
		status += fmt.Sprintf("  🎉 Level %d!", outcome.Level)
	}
	for _, id := range outcome.NewBadges {
		if def, ok := m.tracker.Evaluator().ByID(id); ok {
			status += fmt.Sprintf("  🏅 %s", def.Name)
		}
	}
	return status
}

func (m *Model) shiftMonth(delta int) {
	first := time.Date(m.historyYear, m.historyMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.historyYear, m.historyMonth = first.Year(), first.Month()
}

// Run starts the full-screen interface and blocks until the user quits
func Run(ctx context.Context, t *tracker.Tracker) error {
	p := tea.NewProgram(NewModel(ctx, t), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
