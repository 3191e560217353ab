package notify

import "sync"

// Mock records notifications. It is safe for concurrent use.
type Mock struct {
	mu     sync.Mutex
	sent   []Notification
	nextID uint32
	err    error
}

// NewMock creates a mock that hands out IDs starting at 1.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Notify(n Notification) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.sent = append(m.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	m.nextID++
	return m.nextID, nil
}

func (m *Mock) Close(_ uint32) error {
	return nil
}

// SetError makes every Notify fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Sent returns the notifications sent so far.
func (m *Mock) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.sent...)
}

// Verify Mock implements Notifier at compile time.
var _ Notifier = (*Mock)(nil)
