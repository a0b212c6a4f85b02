package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/microhabit/internal/constants"
)

var tabTitles = []string{"Today", "History", "Profile"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateHistory:
		content = m.viewHistory()
	case constants.StateProfile:
		content = m.viewProfile()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func progressBar(percent float64, width int) string {
	filled := max(0, min(int(percent/100*float64(width)), width))
	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) viewToday() string {
	summary := m.tracker.Today()
	header := headerStyle.Render(fmt.Sprintf("%d/%d points", summary.DailyPoints, summary.MaxPoints)) +
		"  " + progressBar(summary.Progress, 20)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.todayModel.View()))
}

var heat = []string{"·", "░", "▒", "▓", "█"}

func heatCell(intensity float64) string {
	if intensity <= 0 {
		return mutedStyle.Render(heat[0])
	}
	i := max(1, min(int(intensity*float64(len(heat)-1)+0.5), len(heat)-1))
	return successStyle.Render(heat[i])
}

func (m Model) viewHistory() string {
	hist := m.tracker.History(m.historyYear, m.historyMonth)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d", hist.Month, hist.Year)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	offset := (int(time.Date(hist.Year, hist.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))
	for i, day := range hist.Days {
		b.WriteString(heatCell(day.Intensity))
		if (offset+i+1)%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n\n")

	snap := m.tracker.Snapshot()
	for _, h := range snap.Habits {
		fmt.Fprintf(&b, "%s %-22s 🔥 %d\n", h.Icon, h.Name, hist.Streaks[h.ID])
	}
	return docStyle.Render(b.String())
}

func (m Model) viewProfile() string {
	stats := m.tracker.Stats()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Level %d", stats.Profile.Level)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d points to level %d\n\n",
		progressBar(stats.LevelProgress, 20), stats.PointsForNextLevel, stats.Profile.Level+1)
	fmt.Fprintf(&b, "Total points   %d\n", stats.Profile.TotalPoints)
	fmt.Fprintf(&b, "Total stars    %d\n", stats.TotalStars)
	fmt.Fprintf(&b, "Days logged    %d\n", stats.DaysLogged)
	fmt.Fprintf(&b, "Best streak    %d\n", stats.BestStreak)
	fmt.Fprintf(&b, "This month     %.0f%%\n\n", stats.Consistency)

	b.WriteString(headerStyle.Render(fmt.Sprintf("Badges %d/%d", stats.BadgesEarned, stats.BadgesTotal)))
	b.WriteString("\n")
	for _, def := range m.tracker.Evaluator().Catalog() {
		if stats.Profile.HasBadge(def.ID) {
			fmt.Fprintf(&b, "%s %s\n", def.Icon, def.Name)
		} else {
			b.WriteString(mutedStyle.Render("🔒 "+def.Name) + "\n")
		}
	}
	return docStyle.Render(b.String())
}
