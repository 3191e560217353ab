// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is a test double for Player. It is safe for concurrent use.
type Mock struct {
	mu         sync.Mutex
	state      State
	position   time.Duration
	duration   time.Duration
	trackInfo  *TrackInfo
	playErrs   map[string]error
	playErr    error
	playCalls  []string
	seekCalls  []time.Duration
	finishedCh chan Finished
	generation uint64
	done       chan struct{}
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:      Stopped,
		playErrs:   make(map[string]error),
		finishedCh: make(chan Finished, 1),
		done:       make(chan struct{}),
	}
}

func (m *Mock) Play(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, path)
	if err, ok := m.playErrs[path]; ok {
		m.state = Stopped
		return err
	}
	if m.playErr != nil {
		m.state = Stopped
		return m.playErr
	}
	m.state = Playing
	m.trackInfo = &TrackInfo{Path: path, Duration: m.duration}
	m.generation++
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Stopped {
		m.generation++
	}
	m.state = Stopped
	m.trackInfo = nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.CanPause() {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.CanResume() {
		m.state = Playing
	}
}

func (m *Mock) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Playing:
		m.state = Paused
	case Paused:
		m.state = Playing
	case Stopped:
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) TrackInfo() *TrackInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trackInfo
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Seek(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, d)
}

func (m *Mock) FinishedChan() <-chan Finished {
	return m.finishedCh
}

func (m *Mock) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

func (m *Mock) Done() <-chan struct{} {
	return m.done
}

// Test helpers

func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// SetPlayError makes every Play fail with err.
func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// FailPath makes Play fail with err for path only.
func (m *Mock) FailPath(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErrs[path] = err
}

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// SimulateFinished simulates the loaded track finishing.
func (m *Mock) SimulateFinished() {
	m.SendFinished(m.Current())
}

// Current returns the finish event the loaded track would send.
func (m *Mock) Current() Finished {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev := Finished{Generation: m.generation}
	if m.trackInfo != nil {
		ev.Path = m.trackInfo.Path
	}
	return ev
}

// SendFinished delivers ev as is, stale or not.
func (m *Mock) SendFinished(ev Finished) {
	select {
	case m.finishedCh <- ev:
	default:
	}
}

