// Package app is the terminal UI: a queue panel over the playback service.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilt/internal/errmsg"
	"github.com/llehouerou/tilt/internal/playback"
)

// PlaybackMessage is implemented by messages coming from the playback
// service subscription.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// TickMsg refreshes the position display.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// ServiceStateChangedMsg wraps playback.StateChange.
type ServiceStateChangedMsg playback.StateChange

func (ServiceStateChangedMsg) playbackMessage() {}

// ServiceTrackChangedMsg wraps playback.TrackChange.
type ServiceTrackChangedMsg playback.TrackChange

func (ServiceTrackChangedMsg) playbackMessage() {}

// ServiceQueueChangedMsg wraps playback.QueueChange.
type ServiceQueueChangedMsg playback.QueueChange

func (ServiceQueueChangedMsg) playbackMessage() {}

// ServiceScoreChangedMsg wraps playback.ScoreChange.
type ServiceScoreChangedMsg playback.ScoreChange

func (ServiceScoreChangedMsg) playbackMessage() {}

// ServiceErrorMsg wraps playback.ErrorEvent.
type ServiceErrorMsg playback.ErrorEvent

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent once the subscription is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// ScoresLoadedMsg carries scores fetched for queued tracks.
type ScoresLoadedMsg map[string]int

// LibraryFilesMsg carries new files seen by the library watcher.
type LibraryFilesMsg struct {
	Paths []string
	Added int
	Err   error
}

// StderrMsg carries a line written to stderr by an audio backend.
type StderrMsg string

// ErrorMsg reports a failed operation on the status line.
type ErrorMsg struct {
	Op  errmsg.Op
	Err error
}

// NotifiedMsg reports the outcome of a desktop notification.
type NotifiedMsg struct {
	Err error
}
