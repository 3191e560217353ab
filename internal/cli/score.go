package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tilt/internal/errmsg"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/shuffle"
	"github.com/llehouerou/tilt/internal/state"
	"github.com/llehouerou/tilt/internal/ui/render"
)

var errNoCurrent = errors.New("no path given and the saved queue has no current track")

// parseDelta reads a score change: a signed integer, "up" or "down".
func parseDelta(s string) (int, error) {
	switch strings.ToLower(s) {
	case "up":
		return 1, nil
	case "down":
		return -1, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid score change %q: want a number, up or down", s)
	}
	if d == 0 {
		return 0, errors.New("score change must not be zero")
	}
	return d, nil
}

func newScoreCommand(a *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "score <delta> [path...]",
		Short: "Change the score of tracks",
		Long: "Add delta to the score of each path, clamped to the configured range. " +
			"Without a path the current track of the saved queue is scored. " +
			"Write negative deltas after \"--\" (tilt score -- -1 song.mp3) or use \"down\".",
		Example: "  tilt score up ~/Music/song.mp3\n  tilt score -- -2 ~/Music/song.mp3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			delta, err := parseDelta(args[0])
			if err != nil {
				return err
			}
			if err := a.load(true); err != nil {
				return err
			}
			defer a.close()

			mgr, err := a.openState()
			if err != nil {
				return err
			}
			paths, err := scoreTargets(mgr, args[1:])
			if err != nil {
				return err
			}

			limits := a.cfg.GetScoreLimits()
			ctrl := score.NewController(mgr.Scores(limits.Default), limits, a.logger)
			for _, p := range paths {
				v, err := ctrl.Adjust(p, delta)
				if err != nil {
					return errmsg.Wrap(errmsg.OpScoreUpdate, err)
				}
				chance := 0.0
				if entries, err := ctrl.Store().ListAll(); err == nil {
					chance = shuffle.Chance(v, entries)
				}
				fmt.Fprintf(a.out, "%s: score %d (%s chance)\n", p, v, render.Chance(chance))
			}
			return nil
		},
	}
}

// scoreTargets returns absolute paths for args, or the saved queue's
// current track when args is empty.
func scoreTargets(st state.Interface, args []string) ([]string, error) {
	if len(args) == 0 {
		qs, err := st.GetQueue()
		if err != nil {
			return nil, fmt.Errorf("read saved queue: %w", err)
		}
		if qs.CurrentIndex < 0 || qs.CurrentIndex >= len(qs.Tracks) {
			return nil, errNoCurrent
		}
		return []string{qs.Tracks[qs.CurrentIndex].Path}, nil
	}
	paths := make([]string, len(args))
	for i, arg := range args {
		p, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}
		paths[i] = p
	}
	return paths, nil
}
