// Package library discovers audio files and reads their tags.
package library

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
)

// TrackInfo holds display metadata for a file.
type TrackInfo struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
	".aac":  true,
	".aiff": true,
	".wma":  true,
}

// IsMusicFile reports whether path has a known audio extension.
func IsMusicFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// SniffAudio reports whether the first bytes of path look like audio.
func SniffAudio(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if n == 0 && err != nil {
		return false
	}
	contentType := http.DetectContentType(head[:n])
	return strings.HasPrefix(contentType, "audio/") || contentType == "application/ogg"
}

// IsAudio reports whether path is an audio file, by extension first and by
// content for files without an extension.
func IsAudio(path string) bool {
	if IsMusicFile(path) {
		return true
	}
	if filepath.Ext(path) != "" {
		return false
	}
	return SniffAudio(path)
}

// ReadTags reads the tags of path.
func ReadTags(path string) (TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return TrackInfo{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return TrackInfo{}, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}
	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}
	track, _ := m.Track()

	return TrackInfo{
		Path:        path,
		Title:       title,
		Artist:      artist,
		Album:       m.Album(),
		TrackNumber: track,
	}, nil
}

// ReadTrack reads the tags of path, falling back to the file name when the
// file is missing or untagged.
func ReadTrack(path string) TrackInfo {
	info, err := ReadTags(path)
	if err != nil {
		return TrackInfo{Path: path, Title: filepath.Base(path)}
	}
	return info
}
