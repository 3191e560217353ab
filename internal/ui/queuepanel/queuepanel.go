// Package queuepanel renders the play queue with per-track scores and
// handles cursor, selection, and reordering keys.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilt/internal/keymap"
	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/ui"
)

// JumpToTrackMsg asks to play the entry at Index.
type JumpToTrackMsg struct {
	Index int
}

// RemoveTracksMsg asks to remove entries. Indices are sorted descending.
type RemoveTracksMsg struct {
	Indices []int
}

// MoveTracksMsg asks to shift entries by Delta positions.
type MoveTracksMsg struct {
	Indices []int
	Delta   int
}

// Model represents the queue panel state.
type Model struct {
	ui.Base
	keys   *keymap.Resolver
	limits score.Limits

	tracks  []playback.Track
	current int
	scores  map[string]int

	cursor   int
	offset   int
	selected map[int]bool
}

// New creates a queue panel.
func New(keys *keymap.Resolver, limits score.Limits) Model {
	return Model{
		keys:     keys,
		limits:   limits,
		current:  -1,
		scores:   make(map[string]int),
		selected: make(map[int]bool),
	}
}

// SetQueue replaces the displayed queue. A changed queue drops the
// selection.
func (m *Model) SetQueue(tracks []playback.Track, current int) {
	if len(tracks) != len(m.tracks) {
		m.clearSelection()
	}
	m.tracks = tracks
	m.current = current
	if m.cursor >= len(tracks) {
		m.cursor = max(len(tracks)-1, 0)
	}
	m.ensureCursorVisible()
}

// SetScores merges known scores into the panel.
func (m *Model) SetScores(scores map[string]int) {
	for path, v := range scores {
		m.scores[path] = v
	}
}

// SetScore records the score of one track.
func (m *Model) SetScore(path string, v int) {
	m.scores[path] = v
}

// ScoreOf returns the known score of path.
func (m Model) ScoreOf(path string) (int, bool) {
	v, ok := m.scores[path]
	return v, ok
}

// MissingScores returns the queued paths with no known score.
func (m Model) MissingScores() []string {
	var missing []string
	for _, t := range m.tracks {
		if _, ok := m.scores[t.Path]; !ok {
			missing = append(missing, t.Path)
		}
	}
	return missing
}

// Cursor returns the cursor index.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the selected indices in ascending order.
func (m Model) Selected() []int {
	return sortedKeys(m.selected)
}

// Update handles key messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	switch m.keys.Resolve(keyMsg.String()) {
	case keymap.ActionToggleSelect:
		if m.cursor < len(m.tracks) {
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}
			m.moveCursor(1)
		}
	case keymap.ActionMoveDown:
		m.moveCursor(1)
	case keymap.ActionMoveUp:
		m.moveCursor(-1)
	case keymap.ActionJumpStart:
		m.cursor = 0
		m.offset = 0
	case keymap.ActionJumpEnd:
		m.moveCursor(len(m.tracks))
	case keymap.ActionCurrent:
		m.SyncCursor()
	case keymap.ActionSelect:
		if m.cursor < len(m.tracks) {
			idx := m.cursor
			m.clearSelection()
			return m, func() tea.Msg { return JumpToTrackMsg{Index: idx} }
		}
	case keymap.ActionDelete:
		if indices := m.targets(); len(indices) > 0 {
			m.clearSelection()
			return m, func() tea.Msg { return RemoveTracksMsg{Indices: indices} }
		}
	case keymap.ActionClearSelect:
		m.clearSelection()
	case keymap.ActionMoveItemDown:
		return m, m.requestMove(1)
	case keymap.ActionMoveItemUp:
		return m, m.requestMove(-1)
	}

	return m, nil
}

func (m Model) requestMove(delta int) tea.Cmd {
	indices := m.targets()
	if len(indices) == 0 {
		return nil
	}
	return func() tea.Msg { return MoveTracksMsg{Indices: indices, Delta: delta} }
}

