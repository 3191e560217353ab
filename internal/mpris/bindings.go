//go:build linux

package mpris

import (
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tilt/internal/playback"
)

// appInfo answers the org.mpris.MediaPlayer2 root interface. tilt has no
// window to raise and quits from its own UI.
type appInfo struct{}

func (appInfo) Identity() (string, error) { return "tilt", nil }
func (appInfo) Raise() error { return nil }
func (appInfo) Quit() error { return nil }
func (appInfo) CanRaise() (bool, error) { return false, nil }
func (appInfo) CanQuit() (bool, error) { return false, nil }
func (appInfo) HasTrackList() (bool, error) { return false, nil }
func (appInfo) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/x-wav"}, nil
}

//nolint:revive // name fixed by the MPRIS interface
func (appInfo) SupportedUriSchemes() ([]string, error) { return []string{"file"}, nil }

var playbackStatus = map[playback.State]types.PlaybackStatus{
	playback.StatePlaying: types.PlaybackStatusPlaying,
	playback.StatePaused:  types.PlaybackStatusPaused,
	playback.StateStopped: types.PlaybackStatusStopped,
}

// transport maps org.mpris.MediaPlayer2.Player onto the playback service.
// Rate and volume are fixed at 1.
type transport struct {
	svc playback.Service
}

// Next goes through the service, so a quick skip is penalized like a key press.
func (t *transport) Next() error { return t.svc.Next() }
func (t *transport) Previous() error { return t.svc.Previous() }
func (t *transport) Play() error { return t.svc.Play() }
func (t *transport) Pause() error { return t.svc.Pause() }
func (t *transport) PlayPause() error { return t.svc.Toggle() }
func (t *transport) Stop() error { return t.svc.Stop() }

func (t *transport) Seek(offset types.Microseconds) error {
	return t.svc.Seek(time.Duration(offset) * time.Microsecond)
}

// SetPosition ignores requests aimed at a track that is no longer current.
func (t *transport) SetPosition(trackID string, position types.Microseconds) error {
	cur := t.svc.CurrentTrack()
	if cur == nil || trackID != trackObjectPath(cur.Path) {
		return nil
	}
	target := time.Duration(position) * time.Microsecond
	return t.svc.Seek(target - t.svc.Position())
}

//nolint:revive // name fixed by the MPRIS interface
func (t *transport) OpenUri(string) error { return nil }

func (t *transport) PlaybackStatus() (types.PlaybackStatus, error) {
	if s, ok := playbackStatus[t.svc.State()]; ok {
		return s, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (t *transport) Metadata() (types.Metadata, error) {
	cur := t.svc.CurrentTrack()
	if cur == nil {
		return types.Metadata{}, nil
	}
	return trackMetadata(*cur), nil
}

func (t *transport) Position() (int64, error) { return t.svc.Position().Microseconds(), nil }

func (t *transport) Rate() (float64, error) { return 1, nil }
func (t *transport) SetRate(float64) error { return nil }
func (t *transport) MinimumRate() (float64, error) { return 1, nil }
func (t *transport) MaximumRate() (float64, error) { return 1, nil }
func (t *transport) Volume() (float64, error) { return 1, nil }
func (t *transport) SetVolume(float64) error { return nil }

// CanGoNext holds even on an empty queue since Next fills it from the library.
func (t *transport) CanGoNext() (bool, error) { return true, nil }
func (t *transport) CanGoPrevious() (bool, error) { return t.svc.QueueLen() > 0, nil }
func (t *transport) CanPlay() (bool, error) { return true, nil }
func (t *transport) CanPause() (bool, error) { return true, nil }
func (t *transport) CanSeek() (bool, error) { return true, nil }
func (t *transport) CanControl() (bool, error) { return true, nil }
