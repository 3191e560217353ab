package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilt/internal/ui"
	"github.com/llehouerou/tilt/internal/ui/playerbar"
	"github.com/llehouerou/tilt/internal/ui/render"
	"github.com/llehouerou/tilt/internal/ui/styles"
)

// resize gives the queue panel whatever the player bar and footer leave.
func (m *Model) resize() {
	m.help.Width = m.Width
	panelHeight := max(m.Height-playerbar.Height-m.footerHeight(), 0)
	m.QueuePanel.SetSize(m.Width, panelHeight)
}

func (m Model) footerHeight() int {
	if m.showHelp {
		return lipgloss.Height(m.help.View(m.helpKeys))
	}
	return ui.StatusHeight
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	bar := playerbar.Render(m.playerState(), m.Width)
	if bar == "" {
		bar = m.idleBar()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.QueuePanel.View(),
		bar,
		m.footer(),
	)
}

func (m Model) playerState() playerbar.State {
	s := playerbar.NewState(m.svc)
	if cur := m.svc.CurrentTrack(); cur != nil {
		s.Score, s.ScoreKnown = m.QueuePanel.ScoreOf(cur.Path)
	}
	s.Chance = m.chance
	return s
}

// idleBar keeps the layout stable while stopped.
func (m Model) idleBar() string {
	st := styles.T().S()
	text := st.Muted.Render("Stopped · space to play")
	return styles.PanelStyle(false).
		Padding(0, 2).
		Width(m.Width - 2).
		Render(text)
}

func (m Model) footer() string {
	if m.showHelp {
		return m.help.View(m.helpKeys)
	}
	st := styles.T().S()
	if m.statusErr {
		return st.Error.Render(render.Truncate(m.status, m.Width))
	}
	short := m.help.ShortHelpView(m.helpKeys.ShortHelp())
	text := render.Truncate(m.status, max(m.Width-lipgloss.Width(short)-1, 0))
	return render.Row(st.Muted.Render(text), short, m.Width)
}
