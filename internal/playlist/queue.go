package playlist

import "slices"

// PlayingQueue wraps a Playlist with a playback cursor.
// Entries before the cursor are history, the rest is lookahead.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing playing
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the currently playing track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= q.playlist.Len() {
		return nil
	}
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Advance moves the cursor forward, wrapping to the start after the last entry.
// With nothing current, the first entry becomes current.
// Returns nil on an empty queue.
func (q *PlayingQueue) Advance() *Track {
	n := q.playlist.Len()
	if n == 0 {
		return nil
	}
	if q.currentIndex < 0 {
		q.currentIndex = 0
	} else {
		q.currentIndex = (q.currentIndex + 1) % n
	}
	return q.Current()
}

// Retreat moves the cursor back, wrapping to the last entry from the first.
// With nothing current, the last entry becomes current.
// Returns nil on an empty queue.
func (q *PlayingQueue) Retreat() *Track {
	n := q.playlist.Len()
	if n == 0 {
		return nil
	}
	if q.currentIndex < 0 {
		q.currentIndex = n - 1
	} else {
		q.currentIndex = (q.currentIndex - 1 + n) % n
	}
	return q.Current()
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Add appends tracks to the queue without changing playback.
func (q *PlayingQueue) Add(tracks ...Track) {
	q.playlist.Add(tracks...)
}

// Insert places tracks before pos, clamped to [0, Len].
// Inserting at or before the current entry shifts the cursor so it keeps
// pointing at the same track. Returns the actual insert position.
func (q *PlayingQueue) Insert(pos int, tracks ...Track) int {
	if len(tracks) == 0 {
		return min(max(pos, 0), q.playlist.Len())
	}
	at := q.playlist.Insert(pos, tracks...)
	if q.currentIndex >= 0 && at <= q.currentIndex {
		q.currentIndex += len(tracks)
	}
	return at
}

// Replace clears the queue, adds tracks, and sets index to 0.
// Returns the first track to play.
func (q *PlayingQueue) Replace(tracks ...Track) *Track {
	q.playlist.Clear()
	q.currentIndex = -1
	if len(tracks) == 0 {
		return nil
	}
	q.playlist.Add(tracks...)
	q.currentIndex = 0
	return q.Current()
}

// Restore replaces the queue content and cursor, as loaded from a snapshot.
// An out of range index leaves nothing current.
func (q *PlayingQueue) Restore(tracks []Track, index int) {
	q.playlist.Clear()
	q.playlist.Add(tracks...)
	q.currentIndex = -1
	if index >= 0 && index < len(tracks) {
		q.currentIndex = index
	}
}

// RemoveAt removes the track at the given index.
// Adjusts currentIndex if necessary.
func (q *PlayingQueue) RemoveAt(index int) bool {
	if !q.playlist.Remove(index) {
		return false
	}

	if q.currentIndex > index {
		q.currentIndex--
	} else if q.currentIndex == index {
		// Removed current track: the next one slides into its slot.
		if q.currentIndex >= q.playlist.Len() {
			q.currentIndex = q.playlist.Len() - 1
		}
	}

	return true
}

// Move moves the entry at from to to. The cursor follows the current track.
func (q *PlayingQueue) Move(from, to int) bool {
	if !q.playlist.Move(from, to) {
		return false
	}

	cur := q.currentIndex
	switch {
	case cur < 0 || from == to:
	case cur == from:
		q.currentIndex = to
	case from < cur && to >= cur:
		q.currentIndex--
	case from > cur && to <= cur:
		q.currentIndex++
	}
	return true
}

// MoveIndices shifts every entry in indices by delta, keeping their relative
// order. Fails without changes if any entry would leave the queue.
// Returns the new positions in the order of the sorted input.
func (q *PlayingQueue) MoveIndices(indices []int, delta int) ([]int, bool) {
	if len(indices) == 0 {
		return nil, false
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	if sorted[0]+delta < 0 || sorted[len(sorted)-1]+delta >= q.playlist.Len() {
		return nil, false
	}
	if delta == 0 {
		return sorted, true
	}

	order := slices.Clone(sorted)
	if delta > 0 {
		slices.Reverse(order)
	}
	for _, i := range order {
		q.Move(i, i+delta)
	}

	result := make([]int, len(sorted))
	for i, idx := range sorted {
		result[i] = idx + delta
	}
	return result, true
}

// Lookahead returns how many entries sit at or after the cursor.
// With nothing current the cursor counts as 0.
func (q *PlayingQueue) Lookahead() int {
	return q.playlist.Len() - max(q.currentIndex, 0)
}

// InTail reports whether path appears among the last n entries.
func (q *PlayingQueue) InTail(path string, n int) bool {
	return q.playlist.ContainsFrom(q.playlist.Len()-n, path)
}

// Clear removes all tracks and resets playback.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Track returns the track at index, or nil if out of bounds.
func (q *PlayingQueue) Track(index int) *Track {
	return q.playlist.Track(index)
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
