package playback

import "time"

// State is what the player is doing, as seen by the service.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

var stateNames = [...]string{
	StateStopped: "Stopped",
	StatePlaying: "Playing",
	StatePaused:  "Paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// IsActive reports whether a track is loaded, paused or not.
func (s State) IsActive() bool { return s > StateStopped && int(s) < len(stateNames) }

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback starts on a different track.
//
// Emitted by Play, Next, Previous, JumpTo and the automatic advance at the
// end of a track. Not emitted by Pause, Stop or queue edits.
//
// The app handles track-related side effects (MPRIS metadata, status line)
// in response to this event.
type TrackChange struct {
	Previous      *Track
	Current       *Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or cursor change.
type QueueChange struct {
	Tracks []Track
	Index  int
}

// ScoreChange is emitted after a score write, whether from a vote or a
// quick-skip penalty. The queue is re-rendered, never re-ordered.
type ScoreChange struct {
	Path   string
	Score  int
	Delta  int
	Chance float64 // probability of the next pick landing on Path
	Skip   bool    // penalty for a quick skip
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "fill", "score"
	Path      string // track path if applicable
	Err       error
}
