package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/ui/render"
	"github.com/llehouerou/tilt/internal/ui/styles"
)

const (
	playingSymbol  = "▶"
	selectedSymbol = "●"
	unknownScore   = "  ?"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.InnerWidth()
	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderTrackList(innerWidth, m.ListHeight())

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders position or selection count on the left and the
// history/lookahead split on the right.
func (m Model) renderHeader(innerWidth int) string {
	s := styles.T().S()

	var left string
	style := s.Title
	if len(m.selected) > 0 {
		left = fmt.Sprintf("Queue [%d selected]", len(m.selected))
		style = s.Selected.Bold(true)
	} else {
		left = fmt.Sprintf("Queue (%d/%d)", m.current+1, len(m.tracks))
	}

	right := ""
	if m.current >= 0 {
		right = fmt.Sprintf("%d played · %d ahead ", m.current, len(m.tracks)-m.current-1)
	}
	left = render.TruncateAndPad(left, max(innerWidth-lipgloss.Width(right), 0))
	return style.Render(left) + s.Muted.Render(right)
}

// renderTrackList renders the visible window of the queue.
func (m Model) renderTrackList(innerWidth, listHeight int) string {
	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.offset
		if idx >= len(m.tracks) {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.tracks[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine renders "▶ +3 Title  Artist ●".
func (m Model) renderTrackLine(track playback.Track, idx, width int) string {
	prefix := "  "
	if idx == m.current {
		prefix = playingSymbol + " "
	}
	suffix := "  "
	if m.selected[idx] {
		suffix = " " + selectedSymbol
	}

	scoreText := unknownScore
	v, known := m.scores[track.Path]
	if known {
		scoreText = render.Score(v)
	}

	contentWidth := max(width-lipgloss.Width(prefix)-lipgloss.Width(scoreText)-1-lipgloss.Width(suffix), 0)
	titleWidth := contentWidth / 2
	title := track.Title
	if title == "" {
		title = track.Path
	}
	body := render.TruncateAndPad(title, titleWidth) +
		render.TruncateAndPad(track.Artist, contentWidth-titleWidth)

	style := m.trackStyle(idx)
	scoreStyle := style
	if known && idx >= m.current {
		scoreStyle = style.Foreground(styles.ScoreColor(v, m.limits.Min, m.limits.Max))
	}
	return style.Render(prefix) + scoreStyle.Render(scoreText) + style.Render(" "+body+suffix)
}

// trackStyle dims played history and highlights the playing entry.
func (m Model) trackStyle(idx int) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor && m.IsFocused()
	isPlaying := idx == m.current
	isPlayed := m.current >= 0 && idx < m.current

	switch {
	case isCursor && isPlaying:
		return s.Cursor.Inherit(s.Playing)
	case isCursor && isPlayed:
		return s.Cursor.Inherit(s.History)
	case isCursor:
		return s.Cursor
	case isPlaying:
		return s.Playing
	case isPlayed:
		return s.History
	default:
		return s.Base
	}
}
