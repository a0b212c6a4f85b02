package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/microhabit/internal/constants"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

// stars renders a 0-5 rating as filled and empty stars
func stars(n int) string {
	n = max(constants.MinStars, min(n, constants.MaxStars))
	return starStyle.Render(strings.Repeat("★", n)) + mutedStyle.Render(strings.Repeat("☆", constants.MaxStars-n))
}

// bar renders a percentage as a fixed-width progress bar
func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
