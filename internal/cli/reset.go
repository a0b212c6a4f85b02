package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/microhabit/internal/logger"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	out := ctx.out()
	fmt.Fprintln(out, warningStyle.Render("⚠️  This deletes all habits, ratings, points and badges."))
	ok, err := confirm(ctx, c.Yes, "Reset all progress?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Reset cancelled.")
		return nil
	}

	if path := ctx.PerformAutomaticBackup(); path != "" {
		fmt.Fprintf(out, "✓ Backup created: %s\n", filepath.Base(path))
	}

	if err := ctx.Repo.Reset(ctx.context()); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	ctx.tracker = nil
	logger.Info("All data reset")

	fmt.Fprintln(out, "✓ All data cleared. Run 'microhabit onboard' to start again.")
	return nil
}
