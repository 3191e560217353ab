package queuepanel

import (
	"maps"
	"slices"

	"github.com/llehouerou/tilt/internal/ui"
)

// SyncCursor moves the cursor to the playing entry.
func (m *Model) SyncCursor() {
	if m.current >= 0 && m.current < len(m.tracks) {
		m.cursor = m.current
		m.ensureCursorVisible()
	}
}

// Moved follows a completed move: the selection and cursor shift with the
// moved entries.
func (m *Model) Moved(newIndices []int, delta int) {
	if len(m.selected) > 0 {
		m.clearSelection()
		for _, idx := range newIndices {
			m.selected[idx] = true
		}
	}
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.tracks)-1, 0))
	m.ensureCursorVisible()
}

// moveCursor moves the cursor by delta positions and ensures visibility.
func (m *Model) moveCursor(delta int) {
	if len(m.tracks) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.tracks)-1)
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts the scroll offset to keep the cursor in view,
// with a margin when the list is tall enough.
func (m *Model) ensureCursorVisible() {
	height := m.ListHeight()
	if height <= 0 {
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)

	if m.cursor < m.offset+margin {
		m.offset = m.cursor - margin
	}
	if m.cursor >= m.offset+height-margin {
		m.offset = m.cursor - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.tracks)-height, 0))
}

// clearSelection removes all selected items.
func (m *Model) clearSelection() {
	clear(m.selected)
}

// targets returns the selected indices, or the cursor entry when nothing
// is selected, sorted descending.
func (m Model) targets() []int {
	if len(m.tracks) == 0 {
		return nil
	}
	var indices []int
	if len(m.selected) > 0 {
		indices = sortedKeys(m.selected)
	} else {
		indices = []int{m.cursor}
	}
	slices.Reverse(indices)
	return indices
}

func sortedKeys(set map[int]bool) []int {
	return slices.Sorted(maps.Keys(set))
}
