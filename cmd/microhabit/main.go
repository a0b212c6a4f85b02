package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/microhabit/internal/badges"
	"github.com/julianstephens/microhabit/internal/cli"
	"github.com/julianstephens/microhabit/internal/config"
	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/errors"
	"github.com/julianstephens/microhabit/internal/keyring"
	"github.com/julianstephens/microhabit/internal/logger"
	"github.com/julianstephens/microhabit/internal/points"
	"github.com/julianstephens/microhabit/internal/storage"
	"github.com/julianstephens/microhabit/internal/tracker"
	"github.com/julianstephens/microhabit/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the TOML config file." type:"path" default:"${config_path}"`
	DB      string `help:"Storage location: a SQLite path, a .json file or a PostgreSQL connection string without a password. Overrides the keyring and config file." name:"db"`
	Debug   bool   `help:"Enable debug logging."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize microhabit storage and config."`
	Onboard   cli.OnboardCmd   `cmd:"" help:"Choose the micro-habits to track."`
	Rate      cli.RateCmd      `cmd:"" help:"Rate a habit for today (0-5 stars)."`
	Today     cli.TodayCmd     `cmd:"" help:"Show today's habits and points."`
	History   cli.HistoryCmd   `cmd:"" help:"Show a monthly heatmap and streaks."`
	Profile   cli.ProfileCmd   `cmd:"" help:"Show level, points and stats."`
	Badges    cli.BadgesCmd    `cmd:"" help:"List earned and locked badges."`
	Habits    cli.HabitsCmd    `cmd:"" help:"List your habits."`
	Templates cli.TemplatesCmd `cmd:"" help:"List the habit templates offered during onboarding."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Backup    cli.BackupCmd    `cmd:"" help:"Manage database backups."`
	Keyring   cli.KeyringCmd   `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Reset     cli.ResetCmd     `cmd:"" help:"Delete all habits and progress."`
}

// resolveStore picks the storage backend. The --db flag wins, then the
// environment or keyring, then the config file.
func resolveStore(cfg *config.Config) (storage.Provider, error) {
	if CLI.DB != "" {
		return storage.NewProvider(config.ExpandPath(CLI.DB))
	}

	connStr, source, err := keyring.LookupConnection()
	if err != nil {
		logger.Warn("Failed to read connection from keyring", "error", err)
	}
	if source != keyring.SourceNone {
		logger.Debug("Using PostgreSQL connection", "source", source, "connection", keyring.Redact(connStr))
		return storage.NewPostgresStore(connStr), nil
	}

	return storage.NewProvider(cfg.Storage.Location)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Micro-habit tracker with star ratings, points, levels and badges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Log.Debug,
		ConfigDir: cfg.Log.Dir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := resolveStore(cfg)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	calc, err := points.New(cfg.Scoring)
	if err != nil {
		errors.Fatal(err)
	}
	clock := utils.RealClock{}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Ctx:        runCtx,
		Store:      store,
		Repo:       storage.NewRepository(store),
		Config:     cfg,
		ConfigPath: filepath.Clean(CLI.Config),
		Engine: tracker.Engine{
			Calculator: calc,
			Evaluator:  badges.New(badges.DefaultCatalog()),
			IDs:        utils.UUIDGenerator{},
		},
		Clock:       clock,
		Out:         os.Stdout,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	logger.Debug("Running command", "command", ctx.Command(), "storage", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
