package cli

import (
	"fmt"

	"github.com/julianstephens/microhabit/internal/models"
)

type RateCmd struct {
	Habit string `arg:"" help:"Habit number, id or name."`
	Stars int    `arg:"" help:"Stars from 0 to 5."`
}

func (c *RateCmd) Run(ctx *Context) error {
	if err := models.ValidateStars(c.Stars); err != nil {
		return err
	}

	t, err := ctx.requireOnboarded()
	if err != nil {
		return err
	}

	habit, err := ResolveHabit(t.Snapshot().Habits, c.Habit)
	if err != nil {
		return err
	}

	outcome, err := t.Rate(ctx.context(), habit.ID, c.Stars)
	if err != nil {
		return err
	}

	out := ctx.out()
	verb := "Updated"
	if outcome.Created {
		verb = "Rated"
	}
	fmt.Fprintf(out, "✓ %s %s %s  %s (%+d points)\n", verb, habit.Icon, habit.Name, stars(c.Stars), outcome.PointsDelta)

	if outcome.LeveledUp() {
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("🎉 Level up! You reached level %d", outcome.Level)))
	} else if outcome.Level < outcome.PreviousLevel {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("Level dropped to %d", outcome.Level)))
	}

	for _, id := range outcome.NewBadges {
		if def, ok := t.Evaluator().ByID(id); ok {
			fmt.Fprintf(out, "🏅 Badge unlocked: %s %s\n", def.Icon, def.Name)
		}
	}
	return nil
}
