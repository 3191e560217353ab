// internal/state/interface.go
package state

import "github.com/llehouerou/tilt/internal/score"

// ErrClosed is returned by every call on a closed manager.
var ErrClosed = score.ErrStoreClosed

// Interface is the session state the TUI persists between runs.
type Interface interface {
	GetQueue() (*QueueState, error)
	SaveQueue(state QueueState) error
	ScheduleQueueSave(state QueueState)
	NotificationID() (uint32, error)
	SaveNotificationID(id uint32) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
