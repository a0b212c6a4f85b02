package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/microhabit/internal/config"
	"github.com/julianstephens/microhabit/internal/keyring"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/storage"
	"github.com/julianstephens/microhabit/internal/tracker"
)

type DoctorCmd struct{}

type checkLevel int

const (
	levelFail checkLevel = iota
	levelWarn
)

type check struct {
	name  string
	level checkLevel
	// needsStore checks are skipped when storage cannot be loaded
	needsStore bool
	run        func(ctx *Context) error
}

var doctorChecks = []check{
	{name: "Config file", run: checkConfig},
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Data validation", needsStore: true, run: checkData},
	{name: "Profile totals", level: levelWarn, needsStore: true, run: checkProfileTotals},
	{name: "Backups present", level: levelWarn, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", level: levelWarn, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	out := ctx.out()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	reachable := true
	if err := checkStorageReachable(ctx); err != nil {
		report(out, "Storage reachable", levelFail, err)
		hasError = true
		reachable = false
	} else {
		fmt.Fprintln(out, "✓ Storage reachable: OK")
	}

	for _, c := range doctorChecks {
		if c.needsStore && !reachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		if err == nil {
			fmt.Fprintf(out, "✓ %s: OK\n", c.name)
			continue
		}
		report(out, c.name, c.level, err)
		if c.level == levelFail {
			hasError = true
		}
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func report(out io.Writer, name string, level checkLevel, err error) {
	if level == levelWarn {
		fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(out, "   %v\n", err)
		return
	}
	fmt.Fprintf(out, "❌ %s: FAIL\n", name)
	fmt.Fprintf(out, "   Error: %v\n", err)
}

func checkConfig(ctx *Context) error {
	if ctx.ConfigPath == "" {
		return nil
	}
	if _, err := config.Load(ctx.ConfigPath); err != nil {
		return err
	}
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if s, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRowContext(ctx.context(), "SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion(ctx.context())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	switch {
	case current > latest:
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	case current < latest:
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkData(ctx *Context) error {
	snap, err := ctx.Repo.LoadSnapshot(ctx.context(), ctx.Clock.Now())
	if err != nil {
		return err
	}
	habits := models.HabitIndex(snap.Habits)
	orphaned := 0
	for _, l := range snap.Logs {
		if _, ok := habits[l.HabitID]; !ok {
			orphaned++
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d logs referencing unknown habits", orphaned)
	}
	return nil
}

func checkProfileTotals(ctx *Context) error {
	snap, err := ctx.Repo.LoadSnapshot(ctx.context(), ctx.Clock.Now())
	if err != nil {
		return err
	}
	normalized, changed := tracker.Normalize(snap, ctx.Engine.Calculator)
	if changed {
		return fmt.Errorf("stored profile (%d points, level %d) differs from logs (%d points, level %d); it will be recomputed on the next rating",
			snap.Profile.TotalPoints, snap.Profile.Level, normalized.Profile.TotalPoints, normalized.Profile.Level)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'microhabit backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
