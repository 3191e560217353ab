// Package playerbar renders the one-line now-playing bar.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/ui/render"
	"github.com/llehouerou/tilt/internal/ui/styles"
)

// Height is the bar height including its border.
const Height = 3

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	minBarWidth = 5
	separator   = "   "
)

// State holds everything needed to render the player bar.
type State struct {
	Playback playback.State
	Title    string
	Artist   string
	Album    string
	Position time.Duration
	Duration time.Duration

	Score      int
	ScoreKnown bool
	Chance     float64 // 0-1; shown when > 0
	Limits     score.Limits
}

// NewState snapshots the service for rendering. Stopped or trackless
// services give an empty State. Score fields are left to the caller.
func NewState(svc playback.Service) State {
	track := svc.CurrentTrack()
	if track == nil || svc.State() == playback.StateStopped {
		return State{}
	}
	s := State{
		Playback: svc.State(),
		Title:    track.Title,
		Artist:   track.Artist,
		Album:    track.Album,
		Position: svc.Position(),
		Duration: svc.Duration(),
		Limits:   svc.Limits(),
	}
	if s.Duration == 0 {
		s.Duration = track.Duration
	}
	return s
}

// Render returns the bar for the given width, or "" when stopped.
func Render(s State, width int) string {
	if s.Playback == playback.StateStopped {
		return ""
	}
	th := styles.T()
	st := th.S()
	innerWidth := max(width-6, 0) // border + padding

	status := playSymbol
	if s.Playback == playback.StatePaused {
		status = pauseSymbol
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	var infoParts []string
	for _, p := range []string{s.Artist, s.Album} {
		if p != "" {
			infoParts = append(infoParts, p)
		}
	}
	info := strings.Join(infoParts, " · ")

	scoreText := ""
	if s.ScoreKnown {
		scoreText = fmt.Sprintf("score %d", s.Score)
		if s.Chance > 0 {
			scoreText += " (" + render.Chance(s.Chance) + ")"
		}
	}
	timeText := render.Duration(s.Position) + " / " + render.Duration(s.Duration)

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(timeText) + len(separator)
	if scoreText != "" {
		fixed += lipgloss.Width(scoreText) + len(separator)
	}
	available := max(innerWidth-fixed-minBarWidth-len(separator), 10)

	text := title
	if info != "" {
		text += separator + info
	}
	text = render.Truncate(text, available)
	barWidth := max(innerWidth-fixed-lipgloss.Width(text)-len(separator), minBarWidth)

	var b strings.Builder
	b.WriteString(st.Title.Render(text))
	b.WriteString(separator)
	if scoreText != "" {
		b.WriteString(styles.ScoreStyle(s.Score, s.Limits.Min, s.Limits.Max).Render(scoreText))
		b.WriteString(separator)
	}
	b.WriteString(status + "  ")
	b.WriteString(progressBar(s.Position, s.Duration, barWidth))
	b.WriteString(separator)
	b.WriteString(st.Muted.Render(timeText))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 2).
		Width(width - 2).
		Render(b.String())
}

func progressBar(position, duration time.Duration, width int) string {
	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(max(int(float64(width)*ratio), 0), width)
	th := styles.T()
	return lipgloss.NewStyle().Foreground(th.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(th.FgSubtle).Render(strings.Repeat("─", width-filled))
}
