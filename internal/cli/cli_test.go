package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tilt/internal/score"
)

// fakeRemote answers cmus-remote calls for a single playing file.
type fakeRemote struct {
	mu    sync.Mutex
	file  string
	calls []string
}

func (f *fakeRemote) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := strings.Join(args, " ")
	f.calls = append(f.calls, call)
	if call == "-Q" {
		return fmt.Appendf(nil, "status playing\nfile %s\nduration 200\nposition 3\n", f.file), nil
	}
	return nil, nil
}

type testEnv struct {
	t      *testing.T
	config string
	music  string
	remote *fakeRemote
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	music := filepath.Join(dir, "music")
	require.NoError(t, os.MkdirAll(filepath.Join(music, "sub"), 0o755))
	for _, name := range []string{"a.mp3", "sub/b.flac", "sub/cover.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(music, name), []byte("x"), 0o644))
	}

	config := filepath.Join(dir, "config.toml")
	toml := fmt.Sprintf(`library_sources = [%q]
database = %q
notifications = false

[log]
file = %q
`, music, filepath.Join(dir, "tilt.db"), filepath.Join(dir, "tilt.log"))
	require.NoError(t, os.WriteFile(config, []byte(toml), 0o644))

	return &testEnv{t: t, config: config, music: music, remote: &fakeRemote{}}
}

// run executes the command line and returns its standard output.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	a := newAppContext(&out, &errOut)
	a.runner = e.remote
	cmd := newRootCommand(a)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseDelta(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"up", 1, false},
		{"DOWN", -1, false},
		{"+2", 2, false},
		{"-3", -3, false},
		{"0", 0, true},
		{"lots", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDelta(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDelta(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDelta(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []score.Entry{
		{ID: "/m/a.mp3", Score: 3, LastPlayed: now.Add(-2 * time.Hour)},
		{ID: "/m/b.mp3", Score: 0},
		{ID: "/m/c.mp3", Score: 0},
	}

	var buf bytes.Buffer
	renderStats(&buf, entries, statsOptions{Top: 20, MinScore: -1}, now)
	out := buf.String()

	assert.Contains(t, out, "/m/a.mp3")
	assert.Contains(t, out, "80.00%", "2^3 out of 8+1+1")
	assert.Contains(t, out, "10.00%")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "20.00%", "two tracks at score 0 share 2/10 of picks")
	assert.Less(t, strings.Index(out, "/m/a.mp3"), strings.Index(out, "/m/b.mp3"))
}

func TestRenderStats_Filters(t *testing.T) {
	entries := []score.Entry{
		{ID: "/m/a.mp3", Score: 5},
		{ID: "/m/b.mp3", Score: 4},
		{ID: "/m/c.mp3", Score: 0},
	}

	var buf bytes.Buffer
	renderStats(&buf, entries, statsOptions{Top: 1, MinScore: -1}, time.Now())
	assert.Contains(t, buf.String(), "/m/a.mp3")
	assert.NotContains(t, buf.String(), "/m/b.mp3")

	buf.Reset()
	renderStats(&buf, entries, statsOptions{MinScore: 4}, time.Now())
	assert.Contains(t, buf.String(), "/m/b.mp3")
	assert.NotContains(t, buf.String(), "/m/c.mp3")
}

func TestRenderStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderStats(&buf, nil, statsOptions{}, time.Now())
	assert.Contains(t, buf.String(), "tilt scan")
}

func TestScanThenStats(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("scan")
	require.NoError(t, err)
	assert.Contains(t, out, "2 audio files found, 2 new")
	assert.Contains(t, out, env.music)

	out, err = env.run("scan")
	require.NoError(t, err)
	assert.Contains(t, out, "2 audio files found, 0 new")

	out, err = env.run("stats")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(env.music, "a.mp3"))
	assert.Contains(t, out, filepath.Join(env.music, "sub", "b.flac"))
	assert.Contains(t, out, "50.00%")
}

func TestScoreCommand(t *testing.T) {
	env := newTestEnv(t)
	track := filepath.Join(env.music, "a.mp3")

	out, err := env.run("score", "up", track)
	require.NoError(t, err)
	assert.Contains(t, out, track+": score 3")

	out, err = env.run("score", "--", "-20", track)
	require.NoError(t, err)
	assert.Contains(t, out, track+": score -1", "clamped to the minimum")
}

func TestScoreCommand_NoCurrentTrack(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("score", "up")

	assert.ErrorIs(t, err, errNoCurrent)
}

func TestScoreCommand_InvalidDelta(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("score", "sideways", "x.mp3")

	assert.Error(t, err)
}

func TestCmusScoreAndStatus(t *testing.T) {
	env := newTestEnv(t)
	env.remote.file = "/m/playing.mp3"

	out, err := env.run("cmus", "score", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "/m/playing.mp3: score 3 (100.00% chance)")

	_, err = env.run("cmus", "status", "status", "playing", "file", "/m/playing.mp3")
	require.NoError(t, err)
	assert.Contains(t, env.remote.calls, "-q /m/playing.mp3", "the only known track is queued")
}

func TestRunTUI_RefusesCmusPlayer(t *testing.T) {
	env := newTestEnv(t)
	data, err := os.ReadFile(env.config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.config, append([]byte("player = \"cmus\"\n"), data...), 0o644))

	_, err = env.run()

	assert.ErrorIs(t, err, errCmusPlayer)
}
