package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
)

type HistoryCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month." short:"m"`
}

// intensityLevels maps a day's completion ratio to a heatmap cell
var intensityLevels = []string{"·", "░", "▒", "▓", "█"}

func intensityCell(intensity float64) string {
	if intensity <= 0 {
		return mutedStyle.Render(intensityLevels[0])
	}
	i := int(intensity*float64(len(intensityLevels)-1) + 0.5)
	i = max(1, min(i, len(intensityLevels)-1))
	return successStyle.Render(intensityLevels[i])
}

func (c *HistoryCmd) Run(ctx *Context) error {
	t, err := ctx.requireOnboarded()
	if err != nil {
		return err
	}

	year, month := t.Now().Year(), t.Now().Month()
	if c.Month != "" {
		m, err := time.Parse(constants.MonthFormat, c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", c.Month)
		}
		year, month = m.Year(), m.Month()
	}

	hist := t.History(year, month)
	out := ctx.out()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s %d", hist.Month, hist.Year)))
	fmt.Fprintln(out, mutedStyle.Render("Mo Tu We Th Fr Sa Su"))

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Monday-first offset
	offset := (int(first.Weekday()) + 6) % 7
	var row strings.Builder
	row.WriteString(strings.Repeat("   ", offset))
	for i, day := range hist.Days {
		row.WriteString(intensityCell(day.Intensity))
		row.WriteString("  ")
		if (offset+i+1)%7 == 0 {
			fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
	}

	fmt.Fprintln(out)
	active := 0
	for _, day := range hist.Days {
		if len(day.Logs) > 0 {
			active++
		}
	}
	fmt.Fprintf(out, "Days logged: %d/%d\n", active, len(hist.Days))

	snap := t.Snapshot()
	if len(hist.Streaks) > 0 {
		fmt.Fprintln(out, "Current streaks:")
		for _, h := range snap.Habits {
			fmt.Fprintf(out, "  %s %-22s 🔥 %d\n", h.Icon, h.Name, hist.Streaks[h.ID])
		}
	}
	return nil
}
