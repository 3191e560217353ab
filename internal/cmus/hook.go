package cmus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/shuffle"
	"github.com/llehouerou/tilt/internal/state"
)

const flagIgnore = "ignore"

// ErrNotPlaying is returned when cmus has no current file.
var ErrNotPlaying = errors.New("cmus is not playing anything")

// Journal keeps the hook's bookkeeping between invocations.
type Journal interface {
	LastPlay() (state.PlayRecord, bool, error)
	RecordPlay(path string, started time.Time) error
	PushHistory(path string) error
	PopHistory() (string, bool, error)
	SetFlag(name string) error
	TakeFlag(name string) (bool, error)
}

// Verify state.Manager implements Journal at compile time.
var _ Journal = (*state.Manager)(nil)

// HookConfig holds the hook's queueing policy.
type HookConfig struct {
	MaxQueue    int // cmus queue length at which nothing is added
	RetryBudget int // re-picks while the pick is already queued
	Skip        score.SkipPolicy
}

// DefaultHookConfig returns the default hook policy.
func DefaultHookConfig() HookConfig {
	return HookConfig{MaxQueue: 20, RetryBudget: 10, Skip: score.DefaultSkipPolicy()}
}

// ChangeResult describes what HandleStateChange did.
type ChangeResult struct {
	File      string
	Unchanged bool // same file as the last invocation
	Ignored   bool // change caused by HandlePrevious
	Penalized bool // the previous file was skipped too quickly
	Enqueued  string
	QueueFull bool
}

// ScoreUpdate is the outcome of AdjustCurrent.
type ScoreUpdate struct {
	Path   string
	Score  int
	Delta  int
	Chance float64
}

// Hook reacts to cmus events. Each cmus-remote invocation of tilt runs one
// Hook method and exits, so all state lives in the Journal.
type Hook struct {
	remote   *Remote
	journal  Journal
	scores   *score.Controller
	selector *shuffle.Selector
	cfg      HookConfig
	now      func() time.Time
	logger   *zap.Logger
}

// NewHook creates a hook.
func NewHook(
	remote *Remote,
	journal Journal,
	scores *score.Controller,
	selector *shuffle.Selector,
	cfg HookConfig,
	logger *zap.Logger,
) *Hook {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = DefaultHookConfig().MaxQueue
	}
	return &Hook{
		remote:   remote,
		journal:  journal,
		scores:   scores,
		selector: selector,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// SetClock replaces the time source.
func (h *Hook) SetClock(now func() time.Time) {
	h.now = now
}

// HandleStateChange runs on every cmus status change. When the playing file
// changed it records the previous one in history, penalizes it if it was
// skipped too quickly, and enqueues a weighted pick.
func (h *Hook) HandleStateChange(ctx context.Context) (ChangeResult, error) {
	st, err := h.remote.Status(ctx)
	if err != nil {
		return ChangeResult{}, fmt.Errorf("read status: %w", err)
	}
	res := ChangeResult{File: st.File}
	if st.File == "" {
		res.Unchanged = true
		return res, nil
	}

	last, seen, err := h.journal.LastPlay()
	if err != nil {
		return res, fmt.Errorf("read last play: %w", err)
	}
	if seen && last.Path == st.File {
		res.Unchanged = true
		return res, nil
	}

	now := h.now()
	if err := h.journal.RecordPlay(st.File, now); err != nil {
		return res, fmt.Errorf("record play: %w", err)
	}

	ignore, err := h.journal.TakeFlag(flagIgnore)
	if err != nil {
		return res, fmt.Errorf("read ignore flag: %w", err)
	}
	if ignore {
		h.logger.Debug("ignoring state change after previous", zap.String("file", st.File))
		res.Ignored = true
		return res, nil
	}

	if seen {
		if err := h.journal.PushHistory(last.Path); err != nil {
			return res, fmt.Errorf("push history: %w", err)
		}
		penalized, _, err := h.scores.PenalizeSkip(h.cfg.Skip, last.Path, last.Started, now)
		if err != nil {
			return res, err
		}
		res.Penalized = penalized
	}

	if err := h.queueNext(ctx, &res); err != nil {
		return res, err
	}

	if _, err := h.scores.Store().Register(st.File); err != nil {
		return res, fmt.Errorf("register %s: %w", st.File, err)
	}
	return res, nil
}

func (h *Hook) queueNext(ctx context.Context, res *ChangeResult) error {
	queue, err := h.remote.Queue(ctx)
	if err != nil {
		return fmt.Errorf("read queue: %w", err)
	}
	if len(queue) >= h.cfg.MaxQueue {
		h.logger.Info("cmus queue is full", zap.Int("length", len(queue)))
		res.QueueFull = true
		return nil
	}

	entries, err := h.scores.Store().ListAll()
	if err != nil {
		return fmt.Errorf("list library: %w", err)
	}

	path := h.pick(ctx, entries)
	for tries := 0; slices.Contains(queue, path) && tries < h.cfg.RetryBudget; tries++ {
		e, ok := h.selector.Select(entries)
		if !ok {
			break
		}
		path = e.ID
	}
	if path == "" {
		h.logger.Info("no songs available")
		return nil
	}

	if err := h.remote.Enqueue(ctx, path); err != nil {
		return fmt.Errorf("enqueue %s: %w", path, err)
	}
	h.logger.Info("added to cmus queue", zap.String("path", path))
	res.Enqueued = path
	return nil
}

// pick returns a weighted pick, or with the uniform ratio a uniform pick
// from the cmus library. Empty means nothing to pick from.
func (h *Hook) pick(ctx context.Context, entries []score.Entry) string {
	if h.selector.RollUniform() {
		lib, err := h.remote.Library(ctx)
		if err != nil {
			h.logger.Warn("cannot read cmus library", zap.Error(err))
		} else if p := h.selector.UniformString(lib); p != "" {
			return p
		}
	}
	e, ok := h.selector.Select(entries)
	if !ok {
		return ""
	}
	return e.ID
}

// HandlePrevious replays the last file from history. The file playing now
// goes back to the head of the cmus queue, and the resulting state change
// is ignored. With an empty history cmus handles previous itself.
func (h *Hook) HandlePrevious(ctx context.Context) error {
	if err := h.journal.SetFlag(flagIgnore); err != nil {
		return fmt.Errorf("set ignore flag: %w", err)
	}

	prev, ok, err := h.journal.PopHistory()
	if err != nil {
		return fmt.Errorf("pop history: %w", err)
	}
	if !ok {
		h.logger.Info("no previous song in history")
		return h.remote.Previous(ctx)
	}

	st, err := h.remote.Status(ctx)
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}
	if st.File != "" {
		if err := h.remote.Prepend(ctx, st.File); err != nil {
			return fmt.Errorf("prepend %s: %w", st.File, err)
		}
	}
	if err := h.remote.PlayFile(ctx, prev); err != nil {
		return fmt.Errorf("play %s: %w", prev, err)
	}
	h.logger.Info("playing previous", zap.String("path", prev))
	return nil
}

// AdjustCurrent adds delta to the score of the file cmus is playing.
func (h *Hook) AdjustCurrent(ctx context.Context, delta int) (ScoreUpdate, error) {
	st, err := h.remote.Status(ctx)
	if err != nil {
		return ScoreUpdate{}, fmt.Errorf("read status: %w", err)
	}
	if st.File == "" {
		return ScoreUpdate{}, ErrNotPlaying
	}

	v, err := h.scores.Adjust(st.File, delta)
	if err != nil {
		return ScoreUpdate{}, err
	}
	up := ScoreUpdate{Path: st.File, Score: v, Delta: delta}
	if entries, err := h.scores.Store().ListAll(); err == nil {
		up.Chance = shuffle.Chance(v, entries)
	}
	return up, nil
}

// Status returns the cmus player state.
func (h *Hook) Status(ctx context.Context) (Status, error) {
	return h.remote.Status(ctx)
}
