package cli

import (
	"fmt"

	"github.com/julianstephens/microhabit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if !t.IsOnboarded() {
		ids, err := SelectTemplates()
		if err != nil {
			return err
		}
		if ids == nil {
			fmt.Fprintln(ctx.out(), "Onboarding cancelled.")
			return nil
		}
		if _, err := t.Onboard(ctx.context(), ids); err != nil {
			return err
		}
	}

	return tui.Run(ctx.context(), t)
}
