package queuepanel

import (
	"strings"
	"testing"

	"github.com/llehouerou/tilt/internal/keymap"
	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/ui/testutil"
)

func testTrack(title, artist string) playback.Track {
	return playback.Track{
		Title:  title,
		Artist: artist,
		Path:   "/test/" + title + ".mp3",
	}
}

func newTestPanel(current int, tracks ...playback.Track) Model {
	m := New(keymap.Default(), score.DefaultLimits())
	m.SetSize(60, 12)
	m.SetFocused(true)
	m.SetQueue(tracks, current)
	return m
}

func threeTracks() []playback.Track {
	return []playback.Track{
		testTrack("Song 1", "Artist 1"),
		testTrack("Song 2", "Artist 2"),
		testTrack("Song 3", "Artist 3"),
	}
}

func TestView_EmptyQueue(t *testing.T) {
	m := newTestPanel(-1)

	stripped := testutil.StripANSI(m.View())

	if !strings.Contains(stripped, "Queue (0/0)") {
		t.Errorf("empty queue should show 'Queue (0/0)', got: %s", stripped)
	}
}

func TestView_ZeroSize(t *testing.T) {
	m := New(keymap.Default(), score.DefaultLimits())
	m.SetQueue(threeTracks(), 0)

	if output := m.View(); output != "" {
		t.Errorf("zero size should return empty string, got: %q", output)
	}
}

func TestView_HeaderShowsPositionAndSplit(t *testing.T) {
	m := newTestPanel(1, threeTracks()...)

	stripped := testutil.StripANSI(m.View())

	if !strings.Contains(stripped, "Queue (2/3)") {
		t.Errorf("should show 'Queue (2/3)', got: %s", stripped)
	}
	if !strings.Contains(stripped, "1 played · 1 ahead") {
		t.Errorf("should show history split, got: %s", stripped)
	}
}

func TestView_ScoresAndPlayingMarker(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)
	m.SetScores(map[string]int{"/test/Song 1.mp3": 5, "/test/Song 2.mp3": -1})

	out := m.View()

	line := testutil.StripANSI(testutil.FindLine(out, "Song 1"))
	if !strings.Contains(line, "▶  +5 Song 1") {
		t.Errorf("playing line = %q, want marker and score", line)
	}
	if line := testutil.StripANSI(testutil.FindLine(out, "Song 2")); !strings.Contains(line, " -1 Song 2") {
		t.Errorf("line = %q, want score -1", line)
	}
	if line := testutil.StripANSI(testutil.FindLine(out, "Song 3")); !strings.Contains(line, "  ? Song 3") {
		t.Errorf("line = %q, want unknown score marker", line)
	}
}

func TestView_LinesFitWidth(t *testing.T) {
	long := testTrack(strings.Repeat("Very Long Title ", 10), strings.Repeat("Artist ", 10))
	m := newTestPanel(0, long)
	m.SetScore(long.Path, 12)

	for line := range strings.SplitSeq(m.View(), "\n") {
		if w := testutil.MeasureWidth(line); w > 60 {
			t.Errorf("line width = %d, want <= 60: %q", w, testutil.StripANSI(line))
		}
	}
}

func TestMissingScores(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)
	m.SetScore("/test/Song 2.mp3", 3)

	got := m.MissingScores()

	if len(got) != 2 || got[0] != "/test/Song 1.mp3" || got[1] != "/test/Song 3.mp3" {
		t.Errorf("MissingScores() = %v, want Song 1 and Song 3", got)
	}
}

func TestUpdate_SelectionAndHeader(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)

	m, _ = m.Update(testutil.Key("x"))
	m, _ = m.Update(testutil.Key("j"))
	m, _ = m.Update(testutil.Key("x"))

	if got := m.Selected(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("Selected() = %v, want [0 2]", got)
	}
	stripped := testutil.StripANSI(m.View())
	if !strings.Contains(stripped, "[2 selected]") {
		t.Errorf("should show '[2 selected]', got: %s", stripped)
	}
	if !strings.Contains(stripped, "●") {
		t.Errorf("should contain selection symbol, got: %s", stripped)
	}

	m, _ = m.Update(testutil.Key("esc"))
	if got := m.Selected(); len(got) != 0 {
		t.Errorf("Selected() after esc = %v, want empty", got)
	}
}

func TestUpdate_EnterJumps(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)
	m, _ = m.Update(testutil.Key("j"))

	_, cmd := m.Update(testutil.Key("enter"))

	if cmd == nil {
		t.Fatal("enter should return a command")
	}
	msg, ok := cmd().(JumpToTrackMsg)
	if !ok || msg.Index != 1 {
		t.Errorf("cmd() = %#v, want JumpToTrackMsg{Index: 1}", cmd())
	}
}

func TestUpdate_DeleteTargetsDescending(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)
	m, _ = m.Update(testutil.Key("x"))
	m, _ = m.Update(testutil.Key("j"))
	m, _ = m.Update(testutil.Key("x"))

	_, cmd := m.Update(testutil.Key("d"))

	msg, ok := cmd().(RemoveTracksMsg)
	if !ok {
		t.Fatalf("cmd() = %#v, want RemoveTracksMsg", cmd())
	}
	if len(msg.Indices) != 2 || msg.Indices[0] != 2 || msg.Indices[1] != 0 {
		t.Errorf("Indices = %v, want [2 0]", msg.Indices)
	}
}

func TestUpdate_MoveFollowsItems(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)

	_, cmd := m.Update(testutil.Key("J"))
	msg, ok := cmd().(MoveTracksMsg)
	if !ok || msg.Delta != 1 || len(msg.Indices) != 1 || msg.Indices[0] != 0 {
		t.Fatalf("cmd() = %#v, want MoveTracksMsg{[0], 1}", cmd())
	}

	m.Moved([]int{1}, 1)
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", m.Cursor())
	}
}

func TestUpdate_IgnoredWhenUnfocused(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)
	m.SetFocused(false)

	m, cmd := m.Update(testutil.Key("j"))

	if cmd != nil || m.Cursor() != 0 {
		t.Errorf("unfocused panel should ignore keys, cursor = %d", m.Cursor())
	}
}

func TestSetQueue_ClampsCursor(t *testing.T) {
	m := newTestPanel(0, threeTracks()...)
	m, _ = m.Update(testutil.Key("G"))
	if m.Cursor() != 2 {
		t.Fatalf("Cursor() = %d, want 2", m.Cursor())
	}

	m.SetQueue(threeTracks()[:1], 0)

	if m.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", m.Cursor())
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	var tracks []playback.Track
	for i := range 30 {
		tracks = append(tracks, testTrack("Track "+string(rune('A'+i)), "X"))
	}
	m := newTestPanel(0, tracks...)

	for range 20 {
		m, _ = m.Update(testutil.Key("j"))
	}

	if !strings.Contains(testutil.StripANSI(m.View()), tracks[20].Title) {
		t.Error("cursor row should be visible after scrolling")
	}
	if m.offset == 0 {
		t.Error("offset should have advanced")
	}
}
