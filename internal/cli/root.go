// Package cli is the growthbot command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/config"
	"github.com/example/growthbot/internal/content"
	"github.com/example/growthbot/internal/database"
	"github.com/example/growthbot/internal/logging"
	"github.com/example/growthbot/internal/progress"
	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

var version = "dev"

// app carries what every subcommand needs once flags are parsed
type app struct {
	envFile string
	driver  string
	file    string

	cfg     *config.Config
	logger  *zap.Logger
	service *tracker.Service
	closers []func() error
}

// Execute runs the root command. Closers run whether or not the command
// succeeds; cobra skips post-run hooks after a failed RunE.
func Execute() error {
	a := &app{}
	return a.execute(newRootCommand(a))
}

func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "growthbot",
		Short: "Growth mindset daily challenge tracker",
		Long: `growthbot gives you one growth mindset challenge per day, tracks whether
you completed it and shows your streak, completion rate and badges.

Examples:
  # Show today's challenge
  growthbot today

  # Mark it done
  growthbot mark completed

  # Run the Telegram bot, reminder and JSON API
  growthbot serve`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&a.driver, "store", "", "store driver: csv, sqlite3 or postgres (overrides STORE_DRIVER)")
	root.PersistentFlags().StringVar(&a.file, "file", "", "progress CSV path (overrides PROGRESS_FILE)")

	root.AddCommand(
		newTodayCommand(a),
		newMarkCommand(a),
		newStatsCommand(a),
		newHistoryCommand(a),
		newQuoteCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newServeCommand(a),
	)
	return root
}

// setup loads config, builds the logger, opens the store and the tracker
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("store") {
		cfg.Store.Driver = a.driver
	}
	if cmd.Flags().Changed("file") {
		cfg.Store.File = a.file
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	catalog := content.DefaultCatalog()
	a.service = tracker.NewService(store,
		content.NewProvider(catalog),
		analytics.NewEngine(catalog.Badges),
		tracker.WithLocation(loc),
		tracker.WithLogger(logger.Named("tracker")),
	)
	return nil
}

func (a *app) close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// openStore returns the store selected by cfg and its close function
func openStore(cfg config.StoreConfig) (progress.Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverCSV:
		return progress.NewFileStore(cfg.File), nil, nil
	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.Connect(cfg.Driver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database.NewProgressRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// parseStatusArg accepts "pending"/"completed" in any case
func parseStatusArg(arg string) (models.Status, error) {
	for _, s := range []models.Status{models.StatusPending, models.StatusCompleted} {
		if strings.EqualFold(arg, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (use pending or completed)", models.ErrInvalidStatus, arg)
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// warnf prints a yellow line on stderr
func warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, yellow(fmt.Sprintf(format, args...)))
}
