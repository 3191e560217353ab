package playback

import (
	"errors"
	"io/fs"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/player"
	"github.com/llehouerou/tilt/internal/playlist"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/shuffle"
	"github.com/llehouerou/tilt/internal/state"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player  player.Interface
	manager *playlist.Manager
	scores  *score.Controller
	skip    score.SkipPolicy
	store   state.Interface
	logger  *zap.Logger
	now     func() time.Time

	lastState   State
	lastTrack   *Track
	lastIndex   int
	startedPath string
	startedGen  uint64
	startedAt   time.Time

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// Option configures the service.
type Option func(*serviceImpl)

// WithSkipPolicy sets the quick-skip penalty applied by Next.
func WithSkipPolicy(p score.SkipPolicy) Option {
	return func(s *serviceImpl) { s.skip = p }
}

// WithState persists the queue on every change.
func WithState(st state.Interface) Option {
	return func(s *serviceImpl) { s.store = st }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *serviceImpl) { s.logger = l }
}

// WithClock replaces the time source used to time skips.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.now = now }
}

// New creates a playback service and starts watching for track ends.
func New(p player.Interface, m *playlist.Manager, c *score.Controller, opts ...Option) Service {
	s := &serviceImpl{
		player:    p,
		manager:   m,
		scores:    c,
		skip:      score.DefaultSkipPolicy(),
		logger:    zap.NewNop(),
		now:       time.Now,
		lastIndex: -1,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.watchFinished()
	return s
}

func (s *serviceImpl) watchFinished() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.player.FinishedChan():
			s.handleTrackFinished(ev)
		}
	}
}

// handleTrackFinished advances after a natural end. No skip penalty applies.
// An end reported for a track that was already replaced is dropped.
func (s *serviceImpl) handleTrackFinished(ev player.Finished) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if ev.Path != s.startedPath || ev.Generation != s.startedGen {
		s.logger.Debug("stale track end ignored",
			zap.String("path", ev.Path),
			zap.String("playing", s.startedPath))
		return
	}
	s.startedPath = ""
	s.advanceLocked()
	if err := s.playCurrentLocked(); err != nil {
		s.logger.Warn("auto-advance stopped", zap.Error(err))
	}
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	switch s.player.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	default:
		return StateStopped
	}
}

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Position()
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Duration()
}

// CurrentTrack returns the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return trackPtr(s.manager.Queue().Current())
}

// Queue returns a copy of all tracks in the queue.
func (s *serviceImpl) Queue() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queueTracksLocked()
}

func (s *serviceImpl) queueTracksLocked() []Track {
	tracks := s.manager.Queue().Tracks()
	result := make([]Track, len(tracks))
	for i, t := range tracks {
		result[i] = fromPlaylist(t)
	}
	return result
}

// QueueIndex returns the current queue index (-1 if none).
func (s *serviceImpl) QueueIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manager.Queue().CurrentIndex()
}

// QueueLen returns the number of queue entries.
func (s *serviceImpl) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manager.Queue().Len()
}

// Limits returns the score range.
func (s *serviceImpl) Limits() score.Limits {
	return s.scores.Limits()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops playback and shuts down the service.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// Play resumes a paused track, or plays the current entry. With nothing
// current the queue is filled and playback starts on its first entry.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playLocked()
}

func (s *serviceImpl) playLocked() error {
	switch s.stateLocked() {
	case StatePaused:
		s.player.Resume()
		s.emitStateLocked()
		return nil
	case StatePlaying:
		return nil
	case StateStopped:
	}
	if s.manager.Queue().Current() == nil {
		if err := s.startLocked(); err != nil {
			return err
		}
	}
	return s.playCurrentLocked()
}

// startLocked fills an idle queue and moves onto its next entry.
func (s *serviceImpl) startLocked() error {
	if _, err := s.fillLocked(); err != nil {
		return err
	}
	if s.manager.Queue().IsEmpty() {
		return ErrEmptyQueue
	}
	s.advanceLocked()
	return nil
}

// playCurrentLocked plays the current entry. An entry that fails to play is
// skipped, at most once per queue entry; permission errors are surfaced
// without skipping.
func (s *serviceImpl) playCurrentLocked() error {
	q := s.manager.Queue()
	for range max(q.Len(), 1) {
		t := q.Current()
		if t == nil {
			s.emitStateLocked()
			return ErrEmptyQueue
		}
		err := s.player.Play(t.Path)
		if err == nil {
			s.startedPath = t.Path
			s.startedGen = s.player.Generation()
			s.startedAt = s.now()
			s.emitTrackLocked()
			s.emitStateLocked()
			return nil
		}
		s.emitErrorLocked("play", t.Path, err)
		if errors.Is(err, fs.ErrPermission) {
			s.emitStateLocked()
			return err
		}
		s.advanceLocked()
	}
	s.emitStateLocked()
	return ErrNoPlayableTrack
}

// advanceLocked moves the cursor forward and tops up the lookahead.
func (s *serviceImpl) advanceLocked() {
	_, _, err := s.manager.Advance()
	if err != nil {
		s.emitErrorLocked("fill", "", err)
	}
	s.emitQueueLocked()
}

func (s *serviceImpl) fillLocked() (playlist.FillResult, error) {
	res, err := s.manager.Refill()
	if err != nil {
		s.emitErrorLocked("fill", "", err)
		return res, err
	}
	if res.Empty {
		s.logger.Info("library is empty, nothing to queue")
	}
	if len(res.Added) > 0 {
		s.emitQueueLocked()
	}
	return res, nil
}

// Pause pauses playback.
func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stateLocked() == StatePlaying {
		s.player.Pause()
		s.emitStateLocked()
	}
	return nil
}

// Stop stops playback. The cursor stays where it is.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Stop()
	s.startedPath = ""
	s.emitStateLocked()
	return nil
}

// Toggle switches between playing and paused, starting playback when stopped.
func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stateLocked() == StatePlaying {
		s.player.Pause()
		s.emitStateLocked()
		return nil
	}
	return s.playLocked()
}

// Next penalizes a quick skip of the current track, advances, refills and
// plays the new current entry.
func (s *serviceImpl) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.penalizeSkipLocked()
	if s.manager.Queue().IsEmpty() {
		if err := s.startLocked(); err != nil {
			return err
		}
	} else {
		s.advanceLocked()
	}
	return s.playCurrentLocked()
}

func (s *serviceImpl) penalizeSkipLocked() {
	cur := s.manager.Queue().Current()
	if cur == nil || cur.Path != s.startedPath || !s.stateLocked().IsActive() {
		return
	}
	applied, v, err := s.scores.PenalizeSkip(s.skip, cur.Path, s.startedAt, s.now())
	if err != nil {
		s.emitErrorLocked("score", cur.Path, err)
		return
	}
	if applied {
		s.emitScoreLocked(ScoreChange{
			Path:   cur.Path,
			Score:  v,
			Delta:  s.skip.Penalty,
			Chance: s.chanceLocked(v),
			Skip:   true,
		})
	}
}

// Previous moves back one entry, wrapping to the end, and plays it.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manager.Retreat() == nil {
		return ErrEmptyQueue
	}
	s.emitQueueLocked()
	return s.playCurrentLocked()
}

// JumpTo makes index current, refills and plays it.
func (s *serviceImpl) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, _, err := s.manager.JumpTo(index)
	if t == nil {
		return ErrInvalidIndex
	}
	if err != nil {
		s.emitErrorLocked("fill", "", err)
	}
	s.emitQueueLocked()
	return s.playCurrentLocked()
}

// Seek moves the playback position by delta.
func (s *serviceImpl) Seek(delta time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stateLocked() == StateStopped {
		return nil
	}
	s.player.Seek(delta)
	pos := s.player.Position()
	s.broadcast(func(sub *Subscription) { sub.sendPosition(pos) })
	return nil
}

// Refill tops the lookahead up.
func (s *serviceImpl) Refill() (playlist.FillResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fillLocked()
}

// Insert resolves paths and inserts them before pos.
func (s *serviceImpl) Insert(pos int, paths ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.manager.InsertPaths(pos, paths...)
	s.emitQueueLocked()
	return at
}

// Remove deletes the entry at index. Removing the playing entry moves
// playback onto the entry that slides into its place.
func (s *serviceImpl) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.manager.Queue()
	wasCurrent := index == q.CurrentIndex()
	ok, _, err := s.manager.Remove(index)
	if !ok {
		return ErrInvalidIndex
	}
	if err != nil {
		s.emitErrorLocked("fill", "", err)
	}
	s.emitQueueLocked()

	if !wasCurrent || !s.stateLocked().IsActive() {
		return nil
	}
	if q.Current() == nil {
		s.player.Stop()
		s.startedPath = ""
		s.emitStateLocked()
		return nil
	}
	return s.playCurrentLocked()
}

// Move moves one entry, keeping the cursor on the current track.
func (s *serviceImpl) Move(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.manager.Move(from, to) {
		return false
	}
	s.emitQueueLocked()
	return true
}

// MoveIndices shifts a selection of entries by delta.
func (s *serviceImpl) MoveIndices(indices []int, delta int) ([]int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved, ok := s.manager.Queue().MoveIndices(indices, delta)
	if ok && delta != 0 {
		s.emitQueueLocked()
	}
	return moved, ok
}

// ClearQueue stops playback and empties the queue.
func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Stop()
	s.startedPath = ""
	s.manager.Queue().Clear()
	s.emitStateLocked()
	s.emitQueueLocked()
}

// RestoreQueue loads the queue saved by a previous session.
func (s *serviceImpl) RestoreQueue() error {
	if s.store == nil {
		return nil
	}
	qs, err := s.store.GetQueue()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.Queue().Restore(fromSnapshot(qs), qs.CurrentIndex)
	s.sendQueueLocked()
	return nil
}

// Upvote raises the current track's score by one.
func (s *serviceImpl) Upvote() (ScoreChange, error) {
	return s.voteCurrent(1)
}

// Downvote lowers the current track's score by one.
func (s *serviceImpl) Downvote() (ScoreChange, error) {
	return s.voteCurrent(-1)
}

func (s *serviceImpl) voteCurrent(delta int) (ScoreChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.manager.Queue().Current()
	if cur == nil {
		return ScoreChange{}, ErrNoTrack
	}
	return s.adjustLocked(cur.Path, delta)
}

// AdjustScore adds delta to the score of path, clamped to the score range.
func (s *serviceImpl) AdjustScore(path string, delta int) (ScoreChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustLocked(path, delta)
}

func (s *serviceImpl) adjustLocked(path string, delta int) (ScoreChange, error) {
	v, err := s.scores.Adjust(path, delta)
	if err != nil {
		s.emitErrorLocked("score", path, err)
		return ScoreChange{}, err
	}
	e := ScoreChange{Path: path, Score: v, Delta: delta, Chance: s.chanceLocked(v)}
	s.emitScoreLocked(e)
	return e, nil
}

// Score returns the score of path.
func (s *serviceImpl) Score(path string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores.Get(path)
}

// Scores returns the scores of paths. Unreadable scores are left out.
func (s *serviceImpl) Scores(paths []string) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(paths))
	for _, p := range paths {
		if _, ok := out[p]; ok {
			continue
		}
		if v, err := s.scores.Get(p); err == nil {
			out[p] = v
		}
	}
	return out
}

// chanceLocked returns the probability that the next weighted pick is a
// track scored v.
func (s *serviceImpl) chanceLocked(v int) float64 {
	entries, err := s.scores.Store().ListAll()
	if err != nil {
		s.logger.Warn("cannot compute pick chance", zap.Error(err))
		return 0
	}
	return shuffle.Chance(v, entries)
}

func (s *serviceImpl) broadcast(send func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

func (s *serviceImpl) emitStateLocked() {
	cur := s.stateLocked()
	if cur == s.lastState {
		return
	}
	e := StateChange{Previous: s.lastState, Current: cur}
	s.lastState = cur
	s.broadcast(func(sub *Subscription) { sub.sendState(e) })
}

func (s *serviceImpl) emitTrackLocked() {
	q := s.manager.Queue()
	cur := trackPtr(q.Current())
	idx := q.CurrentIndex()
	if cur != nil && s.lastTrack != nil && cur.Path == s.lastTrack.Path && idx == s.lastIndex {
		return
	}
	e := TrackChange{Previous: s.lastTrack, Current: cur, PreviousIndex: s.lastIndex, Index: idx}
	s.lastTrack, s.lastIndex = cur, idx
	s.broadcast(func(sub *Subscription) { sub.sendTrack(e) })
}

// emitQueueLocked announces the queue and schedules it to be saved.
func (s *serviceImpl) emitQueueLocked() {
	s.sendQueueLocked()
	if s.store != nil {
		q := s.manager.Queue()
		s.store.ScheduleQueueSave(toSnapshot(q.Tracks(), q.CurrentIndex()))
	}
}

func (s *serviceImpl) sendQueueLocked() {
	e := QueueChange{Tracks: s.queueTracksLocked(), Index: s.manager.Queue().CurrentIndex()}
	s.broadcast(func(sub *Subscription) {
		sub.sendQueue(QueueChange{Tracks: slices.Clone(e.Tracks), Index: e.Index})
	})
}

func (s *serviceImpl) emitScoreLocked(e ScoreChange) {
	s.broadcast(func(sub *Subscription) { sub.sendScore(e) })
}

func (s *serviceImpl) emitErrorLocked(op, path string, err error) {
	s.logger.Error("playback error", zap.String("op", op), zap.String("path", path), zap.Error(err))
	e := ErrorEvent{Operation: op, Path: path, Err: err}
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}
