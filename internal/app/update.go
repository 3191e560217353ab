package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/errmsg"
	"github.com/llehouerou/tilt/internal/keymap"
	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/ui/queuepanel"
	"github.com/llehouerou/tilt/internal/ui/render"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case queuepanel.JumpToTrackMsg:
		return m, m.run(errmsg.OpPlaybackStart, func() error { return m.svc.JumpTo(msg.Index) })

	case queuepanel.RemoveTracksMsg:
		return m, m.run(errmsg.OpQueueRemove, func() error {
			for _, idx := range msg.Indices {
				if err := m.svc.Remove(idx); err != nil {
					return err
				}
			}
			return nil
		})

	case queuepanel.MoveTracksMsg:
		if moved, ok := m.svc.MoveIndices(msg.Indices, msg.Delta); ok {
			m.QueuePanel.Moved(moved, msg.Delta)
		}
		return m, nil

	case ScoresLoadedMsg:
		m.QueuePanel.SetScores(msg)
		return m, nil

	case LibraryFilesMsg:
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpLibraryWatch, msg.Err))
		} else if msg.Added > 0 {
			m.setStatus(fmt.Sprintf("%d new tracks in library", msg.Added))
		}
		return m, WatchLibraryCmd(m.watcher, m.registry)

	case StderrMsg:
		m.logger.Debug("audio backend", zap.String("stderr", string(msg)))
		return m, WatchStderrCmd(m.stderr)

	case ErrorMsg:
		m.setError(errmsg.Format(msg.Op, msg.Err))
		return m, nil

	case NotifiedMsg:
		if msg.Err != nil {
			m.logger.Warn("score notification failed", zap.Error(msg.Err))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m, TickCmd()

	case ServiceStateChangedMsg:
		return m, WatchServiceEvents(m.sub)

	case ServiceTrackChangedMsg:
		m.chance = 0
		if msg.Current != nil {
			m.setStatus("Playing " + trackLabel(*msg.Current))
		}
		m.QueuePanel.SetQueue(m.svc.Queue(), msg.Index)
		m.QueuePanel.SyncCursor()
		return m, WatchServiceEvents(m.sub)

	case ServiceQueueChangedMsg:
		m.QueuePanel.SetQueue(msg.Tracks, msg.Index)
		return m, tea.Batch(
			WatchServiceEvents(m.sub),
			LoadScoresCmd(m.svc, m.QueuePanel.MissingScores()),
		)

	case ServiceScoreChangedMsg:
		m.QueuePanel.SetScore(msg.Path, msg.Score)
		if cur := m.svc.CurrentTrack(); cur != nil && cur.Path == msg.Path {
			m.chance = msg.Chance
		}
		if msg.Skip {
			m.setStatus(fmt.Sprintf("Skipped too fast: %s now %d", filepath.Base(msg.Path), msg.Score))
			return m, WatchServiceEvents(m.sub)
		}
		m.setStatus(fmt.Sprintf("Score %d (%s chance)", msg.Score, render.Chance(msg.Chance)))
		return m, tea.Batch(
			WatchServiceEvents(m.sub),
			NotifyScoreCmd(m.notifier, m.ids, playback.ScoreChange(msg)),
		)

	case ServiceErrorMsg:
		m.setError(errmsg.FormatWith(errmsg.Op(msg.Operation), filepath.Base(msg.Path), msg.Err))
		return m, WatchServiceEvents(m.sub)

	case ServiceClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
		return m, nil
	case keymap.ActionPlayPause:
		return m, m.run(errmsg.OpPlaybackStart, m.svc.Toggle)
	case keymap.ActionStop:
		return m, m.run(errmsg.OpPlaybackStart, m.svc.Stop)
	case keymap.ActionNextTrack:
		return m, m.run(errmsg.OpPlaybackNext, m.svc.Next)
	case keymap.ActionPrevTrack:
		return m, m.run(errmsg.OpPlaybackStart, m.svc.Previous)
	case keymap.ActionSeekForward:
		return m, m.run(errmsg.OpPlaybackSeek, func() error { return m.svc.Seek(seekStep * time.Second) })
	case keymap.ActionSeekBack:
		return m, m.run(errmsg.OpPlaybackSeek, func() error { return m.svc.Seek(-seekStep * time.Second) })
	case keymap.ActionUpvote:
		return m, m.vote(m.svc.Upvote)
	case keymap.ActionDownvote:
		return m, m.vote(m.svc.Downvote)
	case keymap.ActionRefill:
		return m, m.refill()
	case keymap.ActionClearQueue:
		m.svc.ClearQueue()
		return m, nil
	}

	var cmd tea.Cmd
	m.QueuePanel, cmd = m.QueuePanel.Update(msg)
	return m, cmd
}

// run performs a service call off the update loop and reports failures.
func (m Model) run(op errmsg.Op, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return ErrorMsg{Op: op, Err: err}
		}
		return nil
	}
}

// vote adjusts the current track. The resulting ScoreChange arrives
// through the subscription.
func (m Model) vote(fn func() (playback.ScoreChange, error)) tea.Cmd {
	return func() tea.Msg {
		if _, err := fn(); err != nil {
			if errors.Is(err, playback.ErrNoTrack) {
				return ErrorMsg{Op: errmsg.OpScoreUpdate, Err: errors.New("nothing is playing")}
			}
			return ErrorMsg{Op: errmsg.OpScoreUpdate, Err: err}
		}
		return nil
	}
}

func (m Model) refill() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Refill()
		if err != nil {
			return ErrorMsg{Op: errmsg.OpQueueFill, Err: err}
		}
		if res.Empty {
			return ErrorMsg{Op: errmsg.OpQueueFill, Err: playback.ErrEmptyQueue}
		}
		return nil
	}
}

func trackLabel(t playback.Track) string {
	label := t.Title
	if label == "" {
		label = filepath.Base(t.Path)
	}
	if t.Artist != "" {
		label += " · " + t.Artist
	}
	return label
}
