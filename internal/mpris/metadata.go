//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tilt/internal/playback"
)

func trackMetadata(t playback.Track) types.Metadata {
	m := types.Metadata{
		TrackId:     dbus.ObjectPath(trackObjectPath(t.Path)),
		Length:      types.Microseconds(t.Duration.Microseconds()),
		Title:       t.Title,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
	}
	if t.Artist != "" {
		m.Artist = []string{t.Artist}
	}
	if art := FindAlbumArt(t.Path); art != "" {
		m.ArtUrl = "file://" + art
	}
	return m
}

// trackObjectPath derives a stable D-Bus object path from a file path,
// which may hold characters object paths forbid.
func trackObjectPath(path string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/tilt/track/%x", h.Sum64())
}
