package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/microhabit/internal/backup"
	"github.com/julianstephens/microhabit/internal/constants"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup of the database."`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Fprintf(ctx.out(), "✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	out := ctx.out()
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups found.")
		fmt.Fprintf(out, "Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	retention := constants.MaxBackups
	if ctx.Config != nil {
		retention = ctx.Config.Storage.MaxBackups
	}
	fmt.Fprintf(out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), retention)
	for _, b := range backups {
		fmt.Fprintf(out, "  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Fprintf(out, "\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `help:"Skip the confirmation prompt." short:"y"`
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory or a file name inside the backup directory
func resolveBackupPath(mgr *backup.Manager, name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	candidate := filepath.Join(mgr.BackupDir(), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.BackupDir())
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := resolveBackupPath(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	out := ctx.out()
	fmt.Fprintln(out, warningStyle.Render("⚠️  This will replace your current database with the backup."))
	fmt.Fprintln(out, "   Stop any running 'microhabit tui' sessions first.")
	fmt.Fprintf(out, "\nRestore from: %s\n", path)

	ok, err := confirm(ctx, c.Yes, "Restore this backup?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Restore cancelled.")
		return nil
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}
	ctx.loaded = false
	ctx.tracker = nil

	previous, err := mgr.RestoreBackup(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Database restored successfully!")
	if previous != "" {
		fmt.Fprintf(out, "  Previous database saved as %s\n", filepath.Base(previous))
	}
	return nil
}

// confirm asks a yes/no question. skip answers yes without prompting; a
// non-interactive session without skip is an error.
func confirm(ctx *Context, skip bool, title string) (bool, error) {
	if skip {
		return true, nil
	}
	if !ctx.Interactive {
		return false, fmt.Errorf("confirmation required, re-run with --yes")
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err == huh.ErrUserAborted {
		return false, nil
	}
	return ok, err
}
