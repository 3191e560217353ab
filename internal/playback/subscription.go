package playback

import (
	"sync/atomic"
	"time"
)

const eventBufferSize = 16

// Subscription delivers service events to one consumer. Each kind of event
// has its own buffered channel; a consumer that falls behind loses events
// rather than stalling the service. Done closes when the service shuts down.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ScoreChanged    <-chan ScoreChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	state    chan StateChange
	track    chan TrackChange
	position chan PositionChange
	queue    chan QueueChange
	score    chan ScoreChange
	errs     chan ErrorEvent
	done     chan struct{}

	dropped atomic.Uint64
}

func newSubscription() *Subscription {
	s := &Subscription{
		state:    make(chan StateChange, eventBufferSize),
		track:    make(chan TrackChange, eventBufferSize),
		position: make(chan PositionChange, eventBufferSize),
		queue:    make(chan QueueChange, eventBufferSize),
		score:    make(chan ScoreChange, eventBufferSize),
		errs:     make(chan ErrorEvent, eventBufferSize),
		done:     make(chan struct{}),
	}
	s.StateChanged, s.TrackChanged, s.PositionChanged = s.state, s.track, s.position
	s.QueueChanged, s.ScoreChanged, s.Error = s.queue, s.score, s.errs
	s.Done = s.done
	return s
}

// Dropped returns how many events were discarded because a buffer was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Subscription) close() {
	close(s.done)
}

// offer delivers e without blocking.
func offer[E any](s *Subscription, ch chan E, e E) {
	select {
	case ch <- e:
	default:
		s.dropped.Add(1)
	}
}

func (s *Subscription) sendState(e StateChange) { offer(s, s.state, e) }
func (s *Subscription) sendTrack(e TrackChange) { offer(s, s.track, e) }
func (s *Subscription) sendQueue(e QueueChange) { offer(s, s.queue, e) }
func (s *Subscription) sendScore(e ScoreChange) { offer(s, s.score, e) }
func (s *Subscription) sendError(e ErrorEvent)  { offer(s, s.errs, e) }

func (s *Subscription) sendPosition(pos time.Duration) {
	offer(s, s.position, PositionChange{Position: pos})
}
