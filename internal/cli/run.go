package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/app"
	"github.com/llehouerou/tilt/internal/errmsg"
	"github.com/llehouerou/tilt/internal/library"
	"github.com/llehouerou/tilt/internal/mpris"
	"github.com/llehouerou/tilt/internal/notify"
	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/player"
	"github.com/llehouerou/tilt/internal/playlist"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/shuffle"
	"github.com/llehouerou/tilt/internal/state"
	"github.com/llehouerou/tilt/internal/stderr"
)

var errCmusPlayer = errors.New(
	`player is "cmus": set status_display_program to "tilt cmus status" in cmus instead of running the TUI`)

// newService assembles the playback core over the state database.
func newService(a *appContext, mgr *state.Manager, p player.Interface) (playback.Service, *state.Scores) {
	cfg := a.cfg
	limits := cfg.GetScoreLimits()
	scores := mgr.Scores(limits.Default)

	selector := shuffle.New(
		shuffle.WithUniformRatio(cfg.GetUniformRatio()),
		shuffle.WithLogger(a.logger),
	)
	manager := playlist.NewManager(playlist.NewQueue(), scores, selector,
		playlist.WithPolicy(cfg.GetFillPolicy()),
		playlist.WithResolver(playlist.FromPath),
		playlist.WithManagerLogger(a.logger),
	)
	ctrl := score.NewController(scores, limits, a.logger)

	svc := playback.New(p, manager, ctrl,
		playback.WithState(mgr),
		playback.WithSkipPolicy(cfg.GetSkipPolicy()),
		playback.WithLogger(a.logger),
	)
	return svc, scores
}

func runTUI(ctx context.Context, a *appContext) error {
	if err := a.load(false); err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer a.close()
	if a.cfg.UsesCmus() {
		return errCmusPlayer
	}

	mgr, err := a.openState()
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	svc, scores := newService(a, mgr, player.New())
	defer svc.Close()

	if n, err := scores.Count(); err == nil && n == 0 {
		fmt.Fprintln(a.out, "Library is empty, scanning sources...")
		if _, err := scanLibrary(ctx, a, scores, a.cfg.GetLibrarySources()); err != nil {
			return err
		}
	}
	if err := svc.RestoreQueue(); err != nil {
		a.logger.Warn("cannot restore queue", zap.Error(errmsg.Wrap(errmsg.OpQueueLoad, err)))
	}

	deps := app.Deps{
		Service:  svc,
		IDs:      mgr,
		Registry: scores,
		Logger:   a.logger,
	}

	if capture, err := stderr.Start(a.logger); err != nil {
		a.logger.Warn("stderr capture unavailable", zap.Error(err))
	} else {
		defer capture.Stop()
		deps.Stderr = capture.Messages()
	}

	if a.cfg.NotificationsEnabled() {
		if n, err := notify.New(a.logger); err != nil {
			a.logger.Warn("notifications unavailable", zap.Error(err))
		} else {
			deps.Notifier = n
		}
	}

	if w, err := library.NewWatcher(a.logger); err != nil {
		a.logger.Warn("library watcher unavailable", zap.Error(err))
	} else {
		defer w.Close()
		if err := w.Add(a.cfg.GetLibrarySources()...); err != nil {
			a.logger.Warn("cannot watch library", zap.Error(err))
		}
		w.Start(ctx)
		deps.Watcher = w
	}

	if adapter, err := mpris.New(svc, a.logger); err != nil {
		a.logger.Warn("mpris unavailable", zap.Error(err))
	} else {
		defer adapter.Close()
	}

	a.logger.Info("starting tui")
	return app.Run(deps)
}
