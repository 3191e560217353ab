package playback

import (
	"testing"
	"time"

	"github.com/llehouerou/tilt/internal/playlist"
	"github.com/llehouerou/tilt/internal/state"
)

const (
	testPathA     = "/a.mp3"
	testPathB     = "/b.mp3"
	testMusicPath = "/music/song.mp3"
)

func TestTrackPtr_CopiesTrack(t *testing.T) {
	if trackPtr(nil) != nil {
		t.Error("trackPtr(nil) should be nil")
	}

	src := &playlist.Track{Path: testMusicPath, Title: "My Song", Duration: 3 * time.Minute}
	got := trackPtr(src)
	src.Title = "changed"

	if got.Title != "My Song" {
		t.Errorf("Title = %q, want My Song (copy must not alias)", got.Title)
	}
	if got.Duration != 3*time.Minute {
		t.Errorf("Duration = %v, want 3m", got.Duration)
	}
}

func TestSnapshot_RoundTripKeepsCursor(t *testing.T) {
	tracks := []playlist.Track{
		{Path: testPathA, Title: "A", TrackNumber: 1},
		{Path: testPathB, Title: "B", Duration: time.Minute},
	}

	qs := toSnapshot(tracks, 1)
	if qs.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", qs.CurrentIndex)
	}

	back := fromSnapshot(&qs)
	if len(back) != 2 || back[1].Path != testPathB || back[1].Duration != time.Minute {
		t.Errorf("fromSnapshot() = %+v", back)
	}

	if got := fromSnapshot(&state.QueueState{CurrentIndex: -1}); len(got) != 0 {
		t.Errorf("fromSnapshot(empty) = %v, want empty", got)
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		state  State
		name   string
		active bool
	}{
		{StateStopped, "Stopped", false},
		{StatePlaying, "Playing", true},
		{StatePaused, "Paused", true},
		{State(-1), "Unknown", false},
		{State(7), "Unknown", false},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.name {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.name)
		}
		if got := tt.state.IsActive(); got != tt.active {
			t.Errorf("State(%d).IsActive() = %v, want %v", int(tt.state), got, tt.active)
		}
	}
}
