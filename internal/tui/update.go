package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, help and status line
		m.todayModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case today.RateHabitMsg:
		return m, m.rate(msg.ID, msg.Stars)

	case habitRatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = m.ratedStatus(msg.outcome)
		m.todayModel.SetSummary(m.tracker.Today())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}

		if m.state == constants.StateHistory {
			switch {
			case key.Matches(msg, m.keys.PrevMonth):
				m.shiftMonth(-1)
			case key.Matches(msg, m.keys.NextMonth):
				m.shiftMonth(1)
			}
			return m, nil
		}
	}

	if m.state == constants.StateToday {
		var cmd tea.Cmd
		m.todayModel, cmd = m.todayModel.Update(msg)
		return m, cmd
	}
	return m, nil
}
