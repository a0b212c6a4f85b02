package cli

import (
	"fmt"

	"github.com/julianstephens/microhabit/internal/constants"
)

type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *Context) error {
	t, err := ctx.requireOnboarded()
	if err != nil {
		return err
	}

	stats := t.Stats()
	out := ctx.out()

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Level %d", stats.Profile.Level)))
	fmt.Fprintf(out, "%s %3.0f%%  %d points to level %d\n",
		bar(stats.LevelProgress, 20), stats.LevelProgress,
		stats.PointsForNextLevel, stats.Profile.Level+1)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total points:        %d\n", stats.Profile.TotalPoints)
	fmt.Fprintf(out, "Total stars:         %d\n", stats.TotalStars)
	fmt.Fprintf(out, "Days logged:         %d\n", stats.DaysLogged)
	fmt.Fprintf(out, "Best current streak: %d\n", stats.BestStreak)
	fmt.Fprintf(out, "Monthly consistency: %.0f%%\n", stats.Consistency)
	fmt.Fprintf(out, "Badges:              %d/%d\n", stats.BadgesEarned, stats.BadgesTotal)
	fmt.Fprintf(out, "Member since:        %s\n", stats.Profile.CreatedAt.Format(constants.DisplayDateFormat))
	return nil
}

type BadgesCmd struct{}

func (c *BadgesCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	profile := t.Snapshot().Profile
	out := ctx.out()
	fmt.Fprintln(out, titleStyle.Render("Badges"))
	for _, def := range t.Evaluator().Catalog() {
		if profile.HasBadge(def.ID) {
			fmt.Fprintf(out, "✓ %s %-20s %s\n", def.Icon, def.Name, def.Description)
		} else {
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("🔒 %-20s %s", def.Name, def.Description)))
		}
	}
	return nil
}
