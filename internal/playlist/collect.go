package playlist

import (
	"fmt"
	"time"

	"github.com/llehouerou/tilt/internal/library"
)

// FromPath creates a queue track from a file path by reading its tags.
// Unreadable files still produce a track titled after the file name.
func FromPath(path string) Track {
	info := library.ReadTrack(path)
	return Track{
		Path:        path,
		Title:       info.Title,
		Artist:      info.Artist,
		Album:       info.Album,
		TrackNumber: info.TrackNumber,
		Duration:    info.Duration,
	}
}

// FromPaths converts paths to tracks, preserving order.
func FromPaths(paths []string, resolve func(string) Track) []Track {
	if resolve == nil {
		resolve = PathOnly
	}
	result := make([]Track, len(paths))
	for i, p := range paths {
		result[i] = resolve(p)
	}
	return result
}

// PathOnly creates a track without touching the file.
func PathOnly(path string) Track {
	return Track{Path: path}
}

// FormatDuration formats a duration as MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
