//nolint:goconst // test file with repeated string literals
package playlist

import (
	"testing"
	"time"
)

func paths(tracks []Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Path
	}
	return out
}

func equalPaths(got []Track, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Path != want[i] {
			return false
		}
	}
	return true
}

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Tracks() == nil {
		t.Error("Tracks() should return empty slice, not nil")
	}
}

func TestPlaylist_Add(t *testing.T) {
	p := NewPlaylist()

	p.Add(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"})

	if !equalPaths(p.Tracks(), "/a.mp3", "/b.mp3") {
		t.Errorf("Tracks() = %v, want [/a.mp3 /b.mp3]", paths(p.Tracks()))
	}
}

func TestPlaylist_Insert(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		wantAt int
		want   []string
	}{
		{"front", 0, 0, []string{"/x.mp3", "/a.mp3", "/b.mp3"}},
		{"middle", 1, 1, []string{"/a.mp3", "/x.mp3", "/b.mp3"}},
		{"end", 2, 2, []string{"/a.mp3", "/b.mp3", "/x.mp3"}},
		{"negative clamps to front", -3, 0, []string{"/x.mp3", "/a.mp3", "/b.mp3"}},
		{"past end clamps to end", 9, 2, []string{"/a.mp3", "/b.mp3", "/x.mp3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlaylist()
			p.Add(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"})

			at := p.Insert(tt.index, Track{Path: "/x.mp3"})

			if at != tt.wantAt {
				t.Errorf("Insert() = %d, want %d", at, tt.wantAt)
			}
			if !equalPaths(p.Tracks(), tt.want...) {
				t.Errorf("Tracks() = %v, want %v", paths(p.Tracks()), tt.want)
			}
		})
	}
}

func TestPlaylist_Insert_DoesNotAliasArgument(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"})
	in := []Track{{Path: "/x.mp3"}}

	p.Insert(1, in...)
	in[0].Path = "/changed.mp3"

	if p.Track(1).Path != "/x.mp3" {
		t.Errorf("Track(1).Path = %q, want /x.mp3", p.Track(1).Path)
	}
}

func TestPlaylist_Remove(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"}, Track{Path: "/c.mp3"})

	if !p.Remove(1) {
		t.Fatal("Remove(1) should succeed")
	}
	if !equalPaths(p.Tracks(), "/a.mp3", "/c.mp3") {
		t.Errorf("Tracks() = %v, want [/a.mp3 /c.mp3]", paths(p.Tracks()))
	}
	if p.Remove(-1) || p.Remove(5) {
		t.Error("Remove with invalid index should return false")
	}
}

func TestPlaylist_Tracks_ReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Path: "/a.mp3"})

	tracks := p.Tracks()
	tracks[0].Path = "/modified.mp3"

	if p.Track(0).Path != "/a.mp3" {
		t.Error("modifying Tracks() result should not affect playlist")
	}
}

func TestPlaylist_Track_InvalidIndex(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Path: "/a.mp3"})

	if p.Track(-1) != nil {
		t.Error("Track(-1) should return nil")
	}
	if p.Track(1) != nil {
		t.Error("Track(1) should return nil")
	}
}

func TestPlaylist_ContainsFrom(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"}, Track{Path: "/c.mp3"})

	tests := []struct {
		start int
		path  string
		want  bool
	}{
		{0, "/a.mp3", true},
		{1, "/a.mp3", false},
		{-5, "/a.mp3", true},
		{2, "/c.mp3", true},
		{3, "/c.mp3", false},
		{0, "/z.mp3", false},
	}
	for _, tt := range tests {
		if got := p.ContainsFrom(tt.start, tt.path); got != tt.want {
			t.Errorf("ContainsFrom(%d, %q) = %v, want %v", tt.start, tt.path, got, tt.want)
		}
	}
}

func TestPlaylist_Move(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"/b.mp3", "/c.mp3", "/a.mp3"}},
		{"backward", 2, 0, []string{"/c.mp3", "/a.mp3", "/b.mp3"}},
		{"same index", 1, 1, []string{"/a.mp3", "/b.mp3", "/c.mp3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlaylist()
			p.Add(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"}, Track{Path: "/c.mp3"})

			if !p.Move(tt.from, tt.to) {
				t.Fatalf("Move(%d, %d) should succeed", tt.from, tt.to)
			}
			if !equalPaths(p.Tracks(), tt.want...) {
				t.Errorf("Tracks() = %v, want %v", paths(p.Tracks()), tt.want)
			}
		})
	}
}

func TestPlaylist_Move_InvalidIndex(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"})

	if p.Move(-1, 0) || p.Move(0, 2) || p.Move(2, 0) {
		t.Error("Move with invalid index should return false")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{5 * time.Second, "00:05"},
		{3*time.Minute + 7*time.Second, "03:07"},
		{125 * time.Minute, "125:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFromPaths(t *testing.T) {
	got := FromPaths([]string{"/a.mp3", "/b.mp3"}, nil)

	if !equalPaths(got, "/a.mp3", "/b.mp3") {
		t.Errorf("FromPaths() = %v, want [/a.mp3 /b.mp3]", paths(got))
	}

	got = FromPaths([]string{"/a.mp3"}, func(p string) Track {
		return Track{Path: p, Title: "A"}
	})
	if got[0].Title != "A" {
		t.Errorf("Title = %q, want A", got[0].Title)
	}
}

func TestFromPath_MissingFileFallsBackToName(t *testing.T) {
	got := FromPath("/does/not/exist/song.mp3")

	if got.Path != "/does/not/exist/song.mp3" {
		t.Errorf("Path = %q", got.Path)
	}
	if got.Title != "song.mp3" {
		t.Errorf("Title = %q, want song.mp3", got.Title)
	}
}
