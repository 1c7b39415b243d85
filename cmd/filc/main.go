// Package main provides the CLI entrypoint for filc.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/config"
	"github.com/verte-zerg/filc/internal/logging"
	"github.com/verte-zerg/filc/internal/provider"
	"github.com/verte-zerg/filc/internal/render"
	"github.com/verte-zerg/filc/internal/store"
	"github.com/verte-zerg/filc/internal/timetable"
)

const (
	defaultUserID     = "default"
	defaultPlotHeight = 10
)

var (
	userFlag      string
	machineFlag   bool
	verbosityFlag string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "filc",
		Short:         "School records in the terminal",
		Long:          "filc shows the timetable, grades and announced tests of a student. Without a command it prints the next school day.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTimetableCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "account whose records are shown")
	rootCmd.PersistentFlags().BoolVarP(&machineFlag, "machine", "m", false, "print JSON lines instead of tables")
	rootCmd.PersistentFlags().StringVar(&verbosityFlag, "verbosity", "", "log level: debug, info, warn or error (default warn)")

	rootCmd.AddCommand(newTimetableCmd())
	rootCmd.AddCommand(newEvalsCmd())
	rootCmd.AddCommand(newTestsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newPathsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// settings is the merged file and environment configuration.
type settings struct {
	env     config.Env
	cfg     config.FileConfig
	cfgPath string
	dbPath  string
	logPath string
}

func loadSettings() (settings, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return settings{}, err
	}
	cfgPath := env.ConfigPathOr(config.DefaultConfigPath())
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	return settings{
		env:     env,
		cfg:     cfg,
		cfgPath: cfgPath,
		dbPath:  env.DBPathOr(config.DefaultDBPath()),
		logPath: config.DefaultLogPath(),
	}, nil
}

// userID picks the account: --user, then FILC_USER, then default-user.
func (s settings) userID() string {
	return firstNonEmpty(userFlag, s.env.User, s.cfg.DefaultUser)
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func logLevel(s settings) string {
	return firstNonEmpty(verbosityFlag, s.env.LogLevel, logging.DefaultLevel)
}

// app holds what a command needs for one run. now is taken once so a
// whole command renders against the same instant.
type app struct {
	settings
	log    *zap.Logger
	store  *store.Store
	userID string
	src    provider.Provider
	now    time.Time
	out    io.Writer
	styler render.Styler
}

func openApp(cmd *cobra.Command, needUser bool) (*app, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(s.logPath, logLevel(s))
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	userID := s.userID()
	if userID == "" {
		if needUser {
			return nil, fmt.Errorf("no user selected: import records with `filc import <file>` or pass --user")
		}
		userID = defaultUserID
	}
	st, err := store.Open(s.dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	out := cmd.OutOrStdout()
	a := &app{
		settings: s,
		log:      log.With(zap.String("command", cmd.Name()), zap.String("user", userID)),
		store:    st,
		userID:   userID,
		src:      provider.WithRenames(st.Account(userID), s.cfg.Rename),
		now:      time.Now(),
		out:      out,
		styler:   render.NewStyler(out, !s.env.ColorDisabled() && render.IsTerminal(out)),
	}
	a.log.Debug("command started", zap.Strings("args", os.Args[1:]))
	return a, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
	_ = a.log.Sync()
}

// resolveDay parses the day argument, or searches for the next school day.
func (a *app) resolveDay(ctx context.Context, args []string, lookahead int) (time.Time, error) {
	if len(args) > 0 {
		return timetable.ParseDay(args[0], a.now)
	}
	r := timetable.Resolver{Source: a.src, MaxWeeks: lookahead, Log: a.log}
	return r.DefaultDay(ctx, a.now), nil
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print config, database and log locations",
		Args:  cobra.NoArgs,
		RunE:  runPathsCmd,
	}
}

func runPathsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if machineFlag {
		return render.JSON(out, map[string]string{
			"config":   s.cfgPath,
			"database": s.dbPath,
			"log":      s.logPath,
		})
	}
	return render.Table(out, nil, [][]string{
		{"config", s.cfgPath},
		{"database", s.dbPath},
		{"log", s.logPath},
	}, render.Options{})
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	path := s.cfgPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# filc configuration
# Uncomment a value to enable it. CLI flags override config values.

# default-user = "student"   # Account used when --user is not given

# [users.student]
# name = "Minta Péter"
# school = "klik000000001"

[rename]
# "Matematika" = "Matek"     # Replace subject, teacher or room names

[charts]
# width = 60                 # Trend chart width, 0 fits the terminal
# height = %d                # Trend chart height

[timetable]
# first-slot = "auto"        # Number of the first period: auto, 0 or 1
# lookahead-weeks = %d       # Weeks searched for the next school day
`,
		defaultPlotHeight,
		timetable.DefaultLookaheadWeeks,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
