package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilt/internal/library"
	"github.com/llehouerou/tilt/internal/notify"
	"github.com/llehouerou/tilt/internal/playback"
)

const tickInterval = time.Second

// TickCmd returns a command that sends TickMsg after a second.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents waits for the next playback service event.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg(e)
		case e := <-sub.ScoreChanged:
			return ServiceScoreChangedMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// LoadScoresCmd fetches the scores of paths.
func LoadScoresCmd(svc playback.Service, paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	return func() tea.Msg {
		return ScoresLoadedMsg(svc.Scores(paths))
	}
}

// WatchLibraryCmd waits for a batch of new files and registers them.
func WatchLibraryCmd(w *library.Watcher, reg library.Registrar) tea.Cmd {
	if w == nil || reg == nil {
		return nil
	}
	return func() tea.Msg {
		paths, ok := <-w.Events()
		if !ok {
			return nil
		}
		added, err := reg.Register(paths...)
		return LibraryFilesMsg{Paths: paths, Added: added, Err: err}
	}
}

// WatchStderrCmd waits for the next captured stderr line.
func WatchStderrCmd(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return StderrMsg(line)
	}
}

// NotifyScoreCmd shows a desktop notification for a score change.
func NotifyScoreCmd(n notify.Notifier, ids notify.IDStore, e playback.ScoreChange) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		err := notify.SendScore(n, ids, notify.Score{
			Path:   e.Path,
			Score:  e.Score,
			Delta:  e.Delta,
			Chance: e.Chance,
		})
		return NotifiedMsg{Err: err}
	}
}
