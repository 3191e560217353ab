//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/tilt/internal/playback"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	touch(t, coverPath)

	got := FindAlbumArt(filepath.Join(dir, "track.mp3"))
	if got != coverPath {
		t.Errorf("FindAlbumArt() = %q, want %q", got, coverPath)
	}
}

func TestFindAlbumArt_NotFound(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "track.mp3"))

	if got := FindAlbumArt(filepath.Join(dir, "track.mp3")); got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty string", got)
	}
	if got := FindAlbumArt("/does/not/exist/track.mp3"); got != "" {
		t.Errorf("FindAlbumArt(missing dir) = %q, want empty string", got)
	}
}

func TestFindAlbumArt_Priority(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "folder.jpg"))
	coverPath := filepath.Join(dir, "Cover.PNG")
	touch(t, coverPath)

	got := FindAlbumArt(filepath.Join(dir, "track.mp3"))
	if got != coverPath {
		t.Errorf("FindAlbumArt() = %q, want %q (higher priority)", got, coverPath)
	}
}

func TestFindAlbumArt_SingleImage(t *testing.T) {
	dir := t.TempDir()
	scan := filepath.Join(dir, "scan01.jpeg")
	touch(t, scan)

	if got := FindAlbumArt(filepath.Join(dir, "track.mp3")); got != scan {
		t.Errorf("FindAlbumArt() = %q, want %q", got, scan)
	}

	touch(t, filepath.Join(dir, "scan02.jpeg"))
	if got := FindAlbumArt(filepath.Join(dir, "track.mp3")); got != "" {
		t.Errorf("FindAlbumArt(two unnamed images) = %q, want empty string", got)
	}
}

func TestTrackMetadata(t *testing.T) {
	meta := trackMetadata(playback.Track{
		Path:        "/music/a.mp3",
		Title:       "Song",
		Artist:      "Band",
		Album:       "Record",
		TrackNumber: 3,
		Duration:    2 * time.Second,
	})

	if meta.Title != "Song" {
		t.Errorf("Title = %q, want %q", meta.Title, "Song")
	}
	if len(meta.Artist) != 1 || meta.Artist[0] != "Band" {
		t.Errorf("Artist = %v, want [Band]", meta.Artist)
	}
	if meta.Length != 2_000_000 {
		t.Errorf("Length = %d, want 2000000", meta.Length)
	}
	if string(meta.TrackId) != trackObjectPath("/music/a.mp3") {
		t.Errorf("TrackId = %q, want %q", meta.TrackId, trackObjectPath("/music/a.mp3"))
	}
	if meta.ArtUrl != "" {
		t.Errorf("ArtUrl = %q, want empty", meta.ArtUrl)
	}

	if untagged := trackMetadata(playback.Track{Path: "/x.mp3"}); untagged.Artist != nil {
		t.Errorf("Artist = %v, want nil", untagged.Artist)
	}
}
