package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	t, err := ctx.requireOnboarded()
	if err != nil {
		return err
	}

	summary := t.Today()
	out := ctx.out()

	date, err := time.Parse(constants.DateFormat, summary.Date)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, titleStyle.Render("Today, "+date.Format(constants.DisplayDateFormat)))
	fmt.Fprintln(out)

	for i, s := range summary.Habits {
		rating := mutedStyle.Render("not rated")
		if s.Logged {
			rating = fmt.Sprintf("%s %3d pts", stars(s.Stars), s.Points)
		}
		streak := ""
		if s.Streak > 0 {
			streak = fmt.Sprintf("  🔥 %d", s.Streak)
		}
		fmt.Fprintf(out, "%d. %s %-22s %s%s\n", i+1, s.Habit.Icon, s.Habit.Name, rating, streak)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %3.0f%%  %d/%d points, %d/%d rated\n",
		bar(summary.Progress, 20), summary.Progress,
		summary.DailyPoints, summary.MaxPoints,
		summary.Completed, len(summary.Habits))
	return nil
}
