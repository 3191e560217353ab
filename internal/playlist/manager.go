package playlist

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/score"
)

// Source enumerates every known track with its score.
type Source interface {
	ListAll() ([]score.Entry, error)
}

// Picker chooses one entry among candidates.
type Picker interface {
	Pick(candidates []score.Entry) (score.Entry, bool)
}

// FillPolicy controls how the lookahead is topped up.
type FillPolicy struct {
	Lookahead       int  // entries to keep at or after the cursor
	RetryBudget     int  // rejected duplicates per Fill before duplicates are accepted
	AvoidDuplicates bool // reject picks already in the last Lookahead entries
	RefillOnRemove  bool // Fill after a removal
}

// DefaultFillPolicy keeps 20 entries ahead and retries duplicates 10 times.
func DefaultFillPolicy() FillPolicy {
	return FillPolicy{
		Lookahead:       20,
		RetryBudget:     10,
		AvoidDuplicates: true,
	}
}

// FillResult describes what a Fill call appended.
type FillResult struct {
	Added              []string
	Empty              bool // library had no tracks
	DuplicatesAccepted int
}

// Manager keeps a PlayingQueue stocked with weighted picks from Source.
// It is not safe for concurrent use.
type Manager struct {
	queue   *PlayingQueue
	source  Source
	picker  Picker
	policy  FillPolicy
	resolve func(string) Track
	logger  *zap.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithPolicy sets the fill policy.
func WithPolicy(p FillPolicy) ManagerOption {
	return func(m *Manager) { m.policy = p }
}

// WithResolver sets how a picked path becomes a Track.
func WithResolver(resolve func(string) Track) ManagerOption {
	return func(m *Manager) { m.resolve = resolve }
}

// WithManagerLogger sets the logger.
func WithManagerLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a manager over queue. A nil queue starts empty.
func NewManager(queue *PlayingQueue, source Source, picker Picker, opts ...ManagerOption) *Manager {
	if queue == nil {
		queue = NewQueue()
	}
	m := &Manager{
		queue:   queue,
		source:  source,
		picker:  picker,
		policy:  DefaultFillPolicy(),
		resolve: PathOnly,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Queue returns the managed queue.
func (m *Manager) Queue() *PlayingQueue {
	return m.queue
}

// Policy returns the active fill policy.
func (m *Manager) Policy() FillPolicy {
	return m.policy
}

// Refill tops the queue up to the policy lookahead.
func (m *Manager) Refill() (FillResult, error) {
	return m.Fill(m.policy.Lookahead)
}

// Fill appends picks until at least target entries sit at or after the cursor.
// A pick already among the last target entries is dropped while the retry
// budget lasts, then accepted so the loop always terminates.
// An empty library stops the loop and sets Empty; it is not an error.
func (m *Manager) Fill(target int) (FillResult, error) {
	var res FillResult
	if target <= 0 || m.queue.Lookahead() >= target {
		return res, nil
	}

	candidates, err := m.source.ListAll()
	if err != nil {
		return res, fmt.Errorf("list library: %w", err)
	}

	retries := m.policy.RetryBudget
	for m.queue.Lookahead() < target {
		e, ok := m.picker.Pick(candidates)
		if !ok {
			res.Empty = true
			m.logger.Info("no songs available")
			return res, nil
		}
		if m.policy.AvoidDuplicates && m.queue.InTail(e.ID, target) {
			if retries > 0 {
				retries--
				continue
			}
			res.DuplicatesAccepted++
		}
		m.queue.Add(m.resolve(e.ID))
		res.Added = append(res.Added, e.ID)
	}

	if len(res.Added) > 0 {
		m.logger.Debug("queue filled",
			zap.Int("added", len(res.Added)),
			zap.Int("duplicates", res.DuplicatesAccepted),
			zap.Int("length", m.queue.Len()),
		)
	}
	return res, nil
}

// Advance moves to the next entry, wrapping at the end, then refills.
// Returns nil without filling on an empty queue.
func (m *Manager) Advance() (*Track, FillResult, error) {
	if m.queue.Advance() == nil {
		return nil, FillResult{}, nil
	}
	res, err := m.Refill()
	return m.queue.Current(), res, err
}

// Retreat moves to the previous entry, wrapping at the start. It never fills.
func (m *Manager) Retreat() *Track {
	return m.queue.Retreat()
}

// JumpTo makes index current and refills.
func (m *Manager) JumpTo(index int) (*Track, FillResult, error) {
	if m.queue.JumpTo(index) == nil {
		return nil, FillResult{}, nil
	}
	res, err := m.Refill()
	return m.queue.Current(), res, err
}

// Insert places tracks before pos. A negative pos appends.
func (m *Manager) Insert(pos int, tracks ...Track) int {
	if pos < 0 {
		pos = m.queue.Len()
	}
	return m.queue.Insert(pos, tracks...)
}

// InsertPaths resolves paths and inserts them before pos.
func (m *Manager) InsertPaths(pos int, paths ...string) int {
	return m.Insert(pos, FromPaths(paths, m.resolve)...)
}

// Move moves one entry, keeping the cursor on the current track.
func (m *Manager) Move(from, to int) bool {
	return m.queue.Move(from, to)
}

// Remove deletes the entry at index. It refills only when the policy asks.
func (m *Manager) Remove(index int) (bool, FillResult, error) {
	if !m.queue.RemoveAt(index) {
		return false, FillResult{}, nil
	}
	if !m.policy.RefillOnRemove {
		return true, FillResult{}, nil
	}
	res, err := m.Refill()
	return true, res, err
}
