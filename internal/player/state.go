// internal/player/state.go
package player

// State is the playback state.
//
// Play moves any state to Playing, Stop moves any state to Stopped.
// Pause and Resume only move between Playing and Paused; every other
// transition is ignored.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Icon returns the glyph shown in the player bar.
func (s State) Icon() string {
	switch s {
	case Playing:
		return "▶"
	case Paused:
		return "⏸"
	default:
		return "■"
	}
}

// IsActive returns true if a track is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
