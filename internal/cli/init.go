package cli

import (
	"fmt"

	"github.com/julianstephens/microhabit/internal/config"
	"github.com/julianstephens/microhabit/internal/logger"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	out := ctx.out()

	if ctx.ConfigPath != "" {
		created, err := config.WriteDefault(ctx.ConfigPath)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(out, "Wrote default config to %s\n", ctx.ConfigPath)
		}
	}

	if err := ctx.Store.Init(ctx.context()); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	ctx.loaded = true
	logger.Info("Storage initialized", "location", ctx.Store.GetConfigPath())

	fmt.Fprintf(out, "Initialized storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Fprintln(out, mutedStyle.Render("Next: run 'microhabit onboard' to choose your habits."))
	return nil
}
