package player

import "time"

// Interface is the audio backend driven by the playback service. The
// service serializes calls, so implementations only need to guard against
// their own audio goroutines.
type Interface interface {
	// Play stops whatever is playing and starts path. A file that cannot
	// be opened or decoded returns an error and leaves the player stopped.
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	Seek(delta time.Duration)

	State() State
	TrackInfo() *TrackInfo
	Position() time.Duration
	Duration() time.Duration

	// FinishedChan receives when a track reaches its natural end,
	// never after Stop.
	FinishedChan() <-chan Finished
	// Generation identifies the loaded track. It changes on every
	// successful Play and on Stop.
	Generation() uint64
	// Done closes when the player shuts down.
	Done() <-chan struct{}
}

var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
