package playback

import (
	"time"

	"github.com/llehouerou/tilt/internal/playlist"
	"github.com/llehouerou/tilt/internal/state"
)

// Track represents a track in the queue.
// This is a copy of the data, not a reference to playlist.Track.
type Track struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

func fromPlaylist(t playlist.Track) Track {
	return Track(t)
}

func trackPtr(t *playlist.Track) *Track {
	if t == nil {
		return nil
	}
	c := fromPlaylist(*t)
	return &c
}

func toSnapshot(tracks []playlist.Track, index int) state.QueueState {
	qs := state.QueueState{CurrentIndex: index, Tracks: make([]state.QueueTrack, len(tracks))}
	for i, t := range tracks {
		qs.Tracks[i] = state.QueueTrack(t)
	}
	return qs
}

func fromSnapshot(qs *state.QueueState) []playlist.Track {
	tracks := make([]playlist.Track, len(qs.Tracks))
	for i, t := range qs.Tracks {
		tracks[i] = playlist.Track(t)
	}
	return tracks
}
