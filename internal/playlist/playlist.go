package playlist

import (
	"slices"
	"time"
)

// Track is a single queue entry. Path is the track's identity.
type Track struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// Playlist is the ordered track list under a PlayingQueue. Index arguments
// outside the list are rejected, except for Insert which clamps.
type Playlist struct {
	tracks []Track
}

func NewPlaylist() *Playlist {
	return &Playlist{tracks: []Track{}}
}

func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Insert places tracks before index and returns where the first one landed.
func (p *Playlist) Insert(index int, tracks ...Track) int {
	index = min(max(index, 0), len(p.tracks))
	p.tracks = slices.Insert(p.tracks, index, tracks...)
	return index
}

func (p *Playlist) Remove(index int) bool {
	if !p.valid(index) {
		return false
	}
	p.tracks = slices.Delete(p.tracks, index, index+1)
	return true
}

func (p *Playlist) Clear() {
	clear(p.tracks)
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of the list.
func (p *Playlist) Tracks() []Track {
	return slices.Clone(p.tracks)
}

// Track returns the entry at index, or nil.
func (p *Playlist) Track(index int) *Track {
	if !p.valid(index) {
		return nil
	}
	return &p.tracks[index]
}

func (p *Playlist) Len() int {
	return len(p.tracks)
}

// ContainsFrom reports whether path appears at or after start.
func (p *Playlist) ContainsFrom(start int, path string) bool {
	start = min(max(start, 0), len(p.tracks))
	return slices.ContainsFunc(p.tracks[start:], func(t Track) bool { return t.Path == path })
}

// Move relocates the entry at from so that it ends up at index to.
func (p *Playlist) Move(from, to int) bool {
	if !p.valid(from) || !p.valid(to) {
		return false
	}
	if from == to {
		return true
	}
	t := p.tracks[from]
	p.tracks = slices.Insert(slices.Delete(p.tracks, from, from+1), to, t)
	return true
}

func (p *Playlist) valid(index int) bool {
	return index >= 0 && index < len(p.tracks)
}
