package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/cmus"
	"github.com/llehouerou/tilt/internal/errmsg"
	"github.com/llehouerou/tilt/internal/notify"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/shuffle"
	"github.com/llehouerou/tilt/internal/state"
	"github.com/llehouerou/tilt/internal/ui/render"
)

// newHook wires a cmus hook over the state database.
func newHook(a *appContext, mgr *state.Manager) *cmus.Hook {
	cfg := a.cfg
	limits := cfg.GetScoreLimits()
	cc := cfg.GetCmusConfig()

	remote := cmus.NewRemote(cc.Remote, a.runner)
	ctrl := score.NewController(mgr.Scores(limits.Default), limits, a.logger)
	selector := shuffle.New(
		shuffle.WithUniformRatio(cfg.GetUniformRatio()),
		shuffle.WithLogger(a.logger),
	)
	hookCfg := cmus.HookConfig{
		MaxQueue:    cc.MaxQueue,
		RetryBudget: cfg.GetFillPolicy().RetryBudget,
		Skip:        cfg.GetSkipPolicy(),
	}
	return cmus.NewHook(remote, mgr, ctrl, selector, hookCfg, a.logger)
}

// withHook runs fn with a hook, releasing everything afterwards.
func withHook(a *appContext, fn func(h *cmus.Hook, mgr *state.Manager) error) error {
	if err := a.load(true); err != nil {
		return err
	}
	defer a.close()

	mgr, err := a.openState()
	if err != nil {
		return err
	}
	return fn(newHook(a, mgr), mgr)
}

func newCmusCommand(a *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmus",
		Short: "Drive cmus: hooks for status changes, previous and scoring",
		Long: "Let cmus do the playing while tilt picks the tracks. Set\n" +
			"  :set status_display_program=tilt-cmus-status\n" +
			"where tilt-cmus-status is a script running \"tilt cmus status\", and bind keys to\n" +
			"\"tilt cmus previous\" and \"tilt cmus score up|down\".",
	}
	cmd.AddCommand(
		newCmusStatusCommand(a),
		newCmusPreviousCommand(a),
		newCmusScoreCommand(a),
	)
	return cmd
}

func newCmusStatusCommand(a *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status [cmus arguments...]",
		Short: "Handle a cmus status change and queue the next weighted pick",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHook(a, func(h *cmus.Hook, _ *state.Manager) error {
				res, err := h.HandleStateChange(cmd.Context())
				if err != nil {
					return errmsg.Wrap(errmsg.OpCmusStatus, err)
				}
				a.logger.Debug("cmus status change",
					zap.String("file", res.File),
					zap.Bool("unchanged", res.Unchanged),
					zap.Bool("ignored", res.Ignored),
					zap.Bool("penalized", res.Penalized),
					zap.String("enqueued", res.Enqueued),
					zap.Bool("queue_full", res.QueueFull),
				)
				return nil
			})
		},
	}
}

func newCmusPreviousCommand(a *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "previous",
		Short: "Play the previous track from tilt's history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHook(a, func(h *cmus.Hook, _ *state.Manager) error {
				return errmsg.Wrap(errmsg.OpCmusPlay, h.HandlePrevious(cmd.Context()))
			})
		},
	}
}

func newCmusScoreCommand(a *appContext) *cobra.Command {
	return &cobra.Command{
		Use:     "score <delta>",
		Short:   "Change the score of the track cmus is playing",
		Example: "  tilt cmus score up\n  tilt cmus score -- -1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseDelta(args[0])
			if err != nil {
				return err
			}
			return withHook(a, func(h *cmus.Hook, mgr *state.Manager) error {
				up, err := h.AdjustCurrent(cmd.Context(), delta)
				if err != nil {
					return errmsg.Wrap(errmsg.OpScoreUpdate, err)
				}
				fmt.Fprintf(a.out, "%s: score %d (%s chance)\n", up.Path, up.Score, render.Chance(up.Chance))
				if !a.cfg.NotificationsEnabled() {
					return nil
				}
				n, err := notify.New(a.logger)
				if err != nil {
					a.logger.Warn("notifications unavailable", zap.Error(err))
					return nil
				}
				s := notify.Score{Path: up.Path, Score: up.Score, Delta: up.Delta, Chance: up.Chance}
				if err := notify.SendScore(n, mgr, s); err != nil {
					a.logger.Warn("score notification failed", zap.Error(err))
				}
				return nil
			})
		},
	}
}
