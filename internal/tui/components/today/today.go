package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/tracker"
)

// RateHabitMsg asks the parent model to persist a rating
type RateHabitMsg struct {
	ID    string
	Stars int
}

type Item struct {
	Status tracker.HabitStatus
}

func (i Item) Title() string {
	return i.Status.Habit.Icon + " " + i.Status.Habit.Name
}

func (i Item) Description() string {
	if !i.Status.Logged {
		return strings.Repeat("☆", constants.MaxStars) + "  not rated"
	}
	desc := fmt.Sprintf("%s%s  %d pts",
		strings.Repeat("★", i.Status.Stars),
		strings.Repeat("☆", constants.MaxStars-i.Status.Stars),
		i.Status.Points)
	if i.Status.Streak > 0 {
		desc += fmt.Sprintf("  🔥 %d", i.Status.Streak)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Status.Habit.Name }

type KeyMap struct {
	Rate key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Rate: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5"),
			key.WithHelp("0-5", "rate"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(summary tracker.TodaySummary, width, height int) Model {
	l := list.New(items(summary), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Rate}
	}
	return Model{list: l, keys: keys}
}

func items(summary tracker.TodaySummary) []list.Item {
	out := make([]list.Item, len(summary.Habits))
	for i, s := range summary.Habits {
		out[i] = Item{Status: s}
	}
	return out
}

func (m *Model) SetSummary(summary tracker.TodaySummary) {
	m.list.SetItems(items(summary))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Selected returns the highlighted habit status
func (m Model) Selected() (tracker.HabitStatus, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return tracker.HabitStatus{}, false
	}
	return item.Status, true
}

// NextStars applies a key press to the current rating. Pressing the value a
// habit already has clears it back to zero.
func NextStars(status tracker.HabitStatus, pressed int) int {
	if status.Logged && status.Stars == pressed {
		return 0
	}
	return pressed
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Rate) {
		status, ok := m.Selected()
		if !ok {
			return m, nil
		}
		pressed := int(msg.String()[0] - '0')
		stars := NextStars(status, pressed)
		return m, func() tea.Msg {
			return RateHabitMsg{ID: status.Habit.ID, Stars: stars}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
