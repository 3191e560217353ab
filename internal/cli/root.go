// Package cli defines the tilt command line: the TUI entry point, library
// maintenance commands and the cmus hooks.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/cmus"
	"github.com/llehouerou/tilt/internal/config"
	"github.com/llehouerou/tilt/internal/logging"
	"github.com/llehouerou/tilt/internal/state"
)

// appContext carries what every command needs. Commands call load first and
// close when done.
type appContext struct {
	configPath string
	out        io.Writer
	errOut     io.Writer
	runner     cmus.Runner

	cfg     *config.Config
	logger  *zap.Logger
	closers []func() error
}

func newAppContext(out, errOut io.Writer) *appContext {
	return &appContext{out: out, errOut: errOut, runner: cmus.ExecRunner{}}
}

// load reads the config and builds the logger. Console mirrors warnings to
// errOut; the TUI turns it off since it owns the terminal.
func (a *appContext) load(console bool) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logCfg := cfg.GetLogConfig()
	opts := logging.Options{Level: logCfg.Level, File: logCfg.File}
	if console {
		opts.Console = a.errOut
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)
	return nil
}

// openState opens the database named in the config, or the default one.
func (a *appContext) openState() (*state.Manager, error) {
	var (
		mgr *state.Manager
		err error
	)
	if a.cfg.Database != "" {
		mgr, err = state.OpenPath(a.cfg.Database)
	} else {
		mgr, err = state.Open()
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, mgr.Close)
	return mgr, nil
}

// close releases resources in reverse order of acquisition.
func (a *appContext) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func newRootCommand(a *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tilt",
		Short: "Weighted shuffle music player",
		Long: "tilt plays your library in a shuffle weighted by per-track scores. " +
			"Each upvote doubles a track's chance of being picked, each downvote halves it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), a)
		},
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/tilt/config.toml then ./config.toml)")

	cmd.AddCommand(
		newScanCommand(a),
		newStatsCommand(a),
		newScoreCommand(a),
		newCmusCommand(a),
	)
	return cmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newAppContext(os.Stdout, os.Stderr)
	if err := newRootCommand(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
