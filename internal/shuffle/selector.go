// Package shuffle picks tracks with probability proportional to 2^score.
package shuffle

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/score"
)

// Selector draws weighted random picks. It is not safe for concurrent use.
type Selector struct {
	rng          *rand.Rand
	uniformRatio float64
	logger       *zap.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand sets the random source, typically a seeded one in tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

// WithUniformRatio sets the share of picks that ignore weights entirely.
// Values outside [0, 1] are clamped.
func WithUniformRatio(ratio float64) Option {
	return func(s *Selector) { s.uniformRatio = min(max(ratio, 0), 1) }
}

// WithLogger sets the logger used for picks.
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

// New creates a Selector.
func New(opts ...Option) *Selector {
	seed := uint64(time.Now().UnixNano()) //nolint:gosec // seed, not security-sensitive
	s := &Selector{
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)), //nolint:gosec // not security-sensitive
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weight returns the selection weight of a score: 2^score.
func Weight(v int) float64 {
	return math.Ldexp(1, v)
}

// Total returns the summed weight of all candidates.
func Total(candidates []score.Entry) float64 {
	var total float64
	for _, c := range candidates {
		total += Weight(c.Score)
	}
	return total
}

// Chance returns the probability that a track with score v is picked from
// candidates. Returns 0 for an empty set.
func Chance(v int, candidates []score.Entry) float64 {
	total := Total(candidates)
	if total == 0 {
		return 0
	}
	return Weight(v) / total
}

// Select returns one candidate chosen with probability proportional to 2^score.
// Returns false if candidates is empty.
func (s *Selector) Select(candidates []score.Entry) (score.Entry, bool) {
	if len(candidates) == 0 {
		return score.Entry{}, false
	}

	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, func(a, b score.Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})

	r := s.rng.Float64() * Total(ordered)
	if e, ok := walk(ordered, r); ok {
		s.logger.Debug("picked track", zap.String("path", e.ID), zap.Int("score", e.Score))
		return e, true
	}

	e := s.Uniform(candidates)
	s.logger.Warn("weighted walk exhausted, picking uniformly", zap.String("path", e.ID))
	return e, true
}

// Pick is Select, except that a UniformRatio share of draws ignores weights.
func (s *Selector) Pick(candidates []score.Entry) (score.Entry, bool) {
	if len(candidates) == 0 {
		return score.Entry{}, false
	}
	if s.RollUniform() {
		e := s.Uniform(candidates)
		s.logger.Debug("picked track uniformly", zap.String("path", e.ID))
		return e, true
	}
	return s.Select(candidates)
}

// RollUniform reports whether the next pick should ignore weights.
func (s *Selector) RollUniform() bool {
	return s.uniformRatio > 0 && s.rng.Float64() < s.uniformRatio
}

// Uniform returns a candidate chosen uniformly. candidates must not be empty.
func (s *Selector) Uniform(candidates []score.Entry) score.Entry {
	return candidates[s.rng.IntN(len(candidates))]
}

// UniformString returns an element of items chosen uniformly, or "" if empty.
func (s *Selector) UniformString(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[s.rng.IntN(len(items))]
}

// walk subtracts weights from r in order and returns the first candidate
// where the remainder drops to zero or below.
func walk(ordered []score.Entry, r float64) (score.Entry, bool) {
	for _, c := range ordered {
		r -= Weight(c.Score)
		if r <= 0 {
			return c, true
		}
	}
	return score.Entry{}, false
}
