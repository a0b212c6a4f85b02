package cli

import (
	"fmt"

	"github.com/julianstephens/microhabit/internal/models"
)

type HabitsCmd struct{}

func (c *HabitsCmd) Run(ctx *Context) error {
	t, err := ctx.requireOnboarded()
	if err != nil {
		return err
	}

	out := ctx.out()
	for i, h := range t.Snapshot().Habits {
		fmt.Fprintf(out, "%d. %s %-22s importance %d  %s\n", i+1, h.Icon, h.Name, h.Importance, mutedStyle.Render(h.ID))
		if h.Description != "" {
			fmt.Fprintf(out, "   %s\n", mutedStyle.Render(h.Description))
		}
	}
	return nil
}

type TemplatesCmd struct{}

func (c *TemplatesCmd) Run(ctx *Context) error {
	out := ctx.out()
	for _, tmpl := range models.HabitTemplates() {
		fmt.Fprintf(out, "%-16s %s %-22s importance %d\n", tmpl.ID, tmpl.Icon, tmpl.Name, tmpl.Importance)
	}
	return nil
}
