package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/microhabit/internal/backup"
	"github.com/julianstephens/microhabit/internal/config"
	"github.com/julianstephens/microhabit/internal/logger"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/storage"
	"github.com/julianstephens/microhabit/internal/tracker"
	"github.com/julianstephens/microhabit/internal/utils"
)

// Context is bound to every command's Run method
type Context struct {
	Ctx        context.Context
	Store      storage.Provider
	Repo       *storage.Repository
	Config     *config.Config
	ConfigPath string
	Engine     tracker.Engine
	Clock      utils.Clock
	Out        io.Writer
	// Interactive is false when stdin is not a terminal; prompts are skipped
	Interactive bool

	loaded  bool
	tracker *tracker.Tracker
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Load opens the store once
func (c *Context) Load() error {
	if c.loaded {
		return nil
	}
	if err := c.Store.Load(c.context()); err != nil {
		return err
	}
	c.loaded = true
	return nil
}

// Tracker loads the store and builds the tracker on first use
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	if err := c.Load(); err != nil {
		return nil, err
	}
	t, err := tracker.New(c.context(), c.Repo, c.Engine, c.Clock)
	if err != nil {
		return nil, err
	}
	c.tracker = t
	return t, nil
}

// BackupManager returns a manager for the SQLite database, or an error for
// backends that cannot be backed up as a file
func (c *Context) BackupManager() (*backup.Manager, error) {
	path := c.Store.GetConfigPath()
	if _, ok := c.Store.(*storage.SQLiteStore); !ok || !backup.Supported(path) {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	mgr := backup.NewManager(path, c.Clock)
	if c.Config != nil {
		mgr.WithRetention(c.Config.Storage.MaxBackups)
	}
	return mgr, nil
}

// PerformAutomaticBackup creates a backup when enabled and supported.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() string {
	if c.Config != nil && !c.Config.Storage.AutoBackup {
		return ""
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return ""
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return ""
	}
	return path
}

// requireOnboarded returns the tracker once the user has chosen habits
func (c *Context) requireOnboarded() (*tracker.Tracker, error) {
	t, err := c.Tracker()
	if err != nil {
		return nil, err
	}
	if !t.IsOnboarded() {
		return nil, fmt.Errorf("no habits yet, run 'microhabit onboard' to choose some")
	}
	return t, nil
}

// ResolveHabit finds a habit by 1-based position, id or case-insensitive name
func ResolveHabit(habits []models.Habit, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(habits) {
			return models.Habit{}, fmt.Errorf("habit number %d out of range (1-%d)", n, len(habits))
		}
		return habits[n-1], nil
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
		if strings.HasPrefix(strings.ToLower(h.Name), strings.ToLower(ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("unknown habit %q", ref)
	default:
		return models.Habit{}, fmt.Errorf("habit %q is ambiguous", ref)
	}
}
