//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/player"
	"github.com/llehouerou/tilt/internal/playlist"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/shuffle"
)

func newTransport(t *testing.T, paths ...string) (*transport, *player.Mock) {
	t.Helper()
	p := player.NewMock()
	store := score.NewMemoryStore(score.DefaultScore)
	_, err := store.Register(paths...)
	require.NoError(t, err)

	mgr := playlist.NewManager(nil, store, shuffle.New())
	svc := playback.New(p, mgr, score.NewController(store, score.DefaultLimits(), nil))
	t.Cleanup(func() { _ = svc.Close() })
	return &transport{svc: svc}, p
}

func TestTransport_PlaybackStatus(t *testing.T) {
	tr, _ := newTransport(t, "/music/a.mp3")

	status, err := tr.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, status)

	require.NoError(t, tr.PlayPause())
	status, _ = tr.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	require.NoError(t, tr.PlayPause())
	status, _ = tr.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)
}

func TestTransport_SetPosition(t *testing.T) {
	tr, p := newTransport(t, "/music/a.mp3")
	require.NoError(t, tr.Play())
	p.SetPosition(10 * time.Second)

	require.NoError(t, tr.SetPosition("/org/mpris/MediaPlayer2/tilt/track/0", 30_000_000))
	assert.Empty(t, p.SeekCalls(), "a stale track id must not seek")

	require.NoError(t, tr.SetPosition(trackObjectPath("/music/a.mp3"), 30_000_000))
	assert.Equal(t, []time.Duration{20 * time.Second}, p.SeekCalls())
}

func TestTransport_Metadata(t *testing.T) {
	tr, _ := newTransport(t, "/music/a.mp3")

	meta, err := tr.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.TrackId, "no track before playback")

	require.NoError(t, tr.Play())
	meta, _ = tr.Metadata()
	assert.Equal(t, trackObjectPath("/music/a.mp3"), string(meta.TrackId))
}
