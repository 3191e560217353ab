package score

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SkipPolicy turns an immediate skip into implicit negative feedback.
type SkipPolicy struct {
	Enabled   bool
	Threshold time.Duration
	Penalty   int
}

// DefaultSkipPolicy penalizes a skip within 5 seconds of play start by one point.
func DefaultSkipPolicy() SkipPolicy {
	return SkipPolicy{Enabled: true, Threshold: 5 * time.Second, Penalty: -1}
}

// IsQuickSkip reports whether leaving a track started at started, at now,
// counts as a skip that deserves the penalty.
func (p SkipPolicy) IsQuickSkip(started, now time.Time) bool {
	if !p.Enabled || started.IsZero() {
		return false
	}
	return now.Sub(started) < p.Threshold
}

// Controller is the only path through which scores change after discovery.
// It is not safe for concurrent use.
type Controller struct {
	store  Store
	limits Limits
	now    func() time.Time
	logger *zap.Logger
}

// NewController creates a controller over store. Invalid limits fall back to the defaults.
func NewController(store Store, limits Limits, logger *zap.Logger) *Controller {
	if !limits.Valid() {
		limits = DefaultLimits()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:  store,
		limits: limits,
		now:    time.Now,
		logger: logger,
	}
}

// SetClock replaces the time source used to stamp writes.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Limits returns the active score range.
func (c *Controller) Limits() Limits {
	return c.limits
}

// Store returns the underlying store.
func (c *Controller) Store() Store {
	return c.store
}

// Get returns the current score of id.
func (c *Controller) Get(id string) (int, error) {
	v, err := c.store.Get(id)
	if err != nil {
		return 0, fmt.Errorf("read score of %s: %w", id, err)
	}
	return v, nil
}

// Adjust adds delta to the score of id, clamps the result, persists it and
// returns the new value.
func (c *Controller) Adjust(id string, delta int) (int, error) {
	current, err := c.Get(id)
	if err != nil {
		return 0, err
	}
	next := c.limits.Clamp(current + delta)
	if err := c.store.Set(id, next, c.now()); err != nil {
		return 0, fmt.Errorf("write score of %s: %w", id, err)
	}
	c.logger.Info("score updated",
		zap.String("path", id),
		zap.Int("from", current),
		zap.Int("to", next),
		zap.Int("delta", delta),
	)
	return next, nil
}

// PenalizeSkip applies the skip penalty to id when policy says leaving it at
// now, after it started at started, was a quick skip.
// Returns whether a penalty was applied and the resulting score.
func (c *Controller) PenalizeSkip(policy SkipPolicy, id string, started, now time.Time) (bool, int, error) {
	if id == "" || !policy.IsQuickSkip(started, now) {
		return false, 0, nil
	}
	c.logger.Info("quick skip", zap.String("path", id), zap.Duration("after", now.Sub(started)))
	v, err := c.Adjust(id, policy.Penalty)
	if err != nil {
		return false, 0, err
	}
	return true, v, nil
}
