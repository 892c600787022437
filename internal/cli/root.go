package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"roster-cli/internal/config"
	"roster-cli/internal/format"
	"roster-cli/internal/logging"
	"roster-cli/internal/query"
	"roster-cli/internal/store"
	"roster-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Source   string
	Locale   string
	Glyphs   string
	LogFile  string
	LogLevel string
	SQLTable string
	Watch    bool
	Pretty   bool
	Format   string

	cfg    config.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "roster",
		Short:        "Browse a people directory in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive directory
  roster

  # Read people from somewhere else and reload on change
  roster --source ./team.json --watch

  # Scriptable commands
  roster list --role Engineer --sort name-desc
  roster roles --format edn

  # Direct lookup (shortcut for: roster show <id>)
  roster 42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, app, &cfg)
		app.cfg = cfg

		if _, err := format.Parse(app.Format); err != nil {
			return err
		}

		logger, err := logging.New(logging.Options{
			Level: cfg.LogLevel,
			File:  cfg.LogFile,
			// The TUI owns the terminal.
			Quiet: cmd == cmd.Root(),
		})
		if err != nil {
			return err
		}
		app.logger = logger
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logger != nil {
			// Sync on a console fd can fail with EINVAL; nothing to do about it.
			_ = app.logger.Sync()
		}
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.Source, "source", "", "People source: path, http(s):// URL, s3://bucket/key, sqlite://path or postgres:// DSN")
	pf.StringVar(&app.Locale, "locale", "", "BCP 47 locale for name ordering (default: root collation)")
	pf.StringVar(&app.Glyphs, "glyphs", "", "TUI icons (unicode|ascii)")
	pf.StringVar(&app.LogFile, "log-file", "", "Write JSON logs to this file")
	pf.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&app.SQLTable, "sql-table", "", "Table read by sqlite:// and postgres:// sources")
	pf.BoolVar(&app.Watch, "watch", false, "Reload a file source when it changes")
	pf.BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	pf.StringVar(&app.Format, "format", envOr("ROSTER_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRolesCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// applyFlags lays explicitly set flags over the file/env configuration.
func applyFlags(cmd *cobra.Command, app *App, cfg *config.Config) {
	fs := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("source", &cfg.Source, app.Source)
	set("locale", &cfg.Locale, app.Locale)
	set("glyphs", &cfg.Glyphs, app.Glyphs)
	set("log-file", &cfg.LogFile, app.LogFile)
	set("log-level", &cfg.LogLevel, app.LogLevel)
	set("sql-table", &cfg.SQLTable, app.SQLTable)
	if fs.Changed("watch") {
		cfg.Watch = app.Watch
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	src, err := parseSource(app.cfg)
	if err != nil {
		return err
	}
	engine, err := query.New(app.cfg.Locale)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), tui.Options{
		Store:  store.New(src, app.logger),
		Engine: engine,
		Glyphs: app.cfg.Glyphs,
		Watch:  app.cfg.Watch,
		Logger: app.logger,
	})
}

func parseSource(cfg config.Config) (store.Source, error) {
	return store.ParseSource(cfg.Source, store.Options{
		Table: cfg.SQLTable,
		S3: store.S3Options{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			PathStyle:       cfg.S3.PathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		},
	})
}

// loadStore reads the configured source once.
func loadStore(ctx context.Context, app *App) (*store.Store, error) {
	src, err := parseSource(app.cfg)
	if err != nil {
		return nil, err
	}
	st := store.New(src, app.logger)
	if err := st.Load(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	f, err := format.Parse(app.Format)
	if err != nil {
		return err
	}
	return format.Write(cmd.OutOrStdout(), v, f, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
