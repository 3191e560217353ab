// internal/state/mock.go
package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu             sync.Mutex
	queueState     *QueueState
	saves          int
	notificationID uint32
	closed         bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetQueue() (*QueueState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.queueState == nil {
		return &QueueState{CurrentIndex: -1}, nil
	}
	s := *m.queueState
	return &s, nil
}

func (m *Mock) SaveQueue(state QueueState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.queueState = &state
	m.saves++
	return nil
}

func (m *Mock) ScheduleQueueSave(state QueueState) {
	_ = m.SaveQueue(state)
}

func (m *Mock) NotificationID() (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notificationID, nil
}

func (m *Mock) SaveNotificationID(id uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationID = id
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetQueue(state *QueueState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueState = state
}

func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
