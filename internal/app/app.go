package app

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/keymap"
	"github.com/llehouerou/tilt/internal/library"
	"github.com/llehouerou/tilt/internal/notify"
	"github.com/llehouerou/tilt/internal/playback"
	"github.com/llehouerou/tilt/internal/ui/queuepanel"
)

const seekStep = 5 // seconds

// Deps are the collaborators the UI drives. Service is required; the rest
// are optional.
type Deps struct {
	Service  playback.Service
	Notifier notify.Notifier
	IDs      notify.IDStore
	Watcher  *library.Watcher
	Registry library.Registrar
	Stderr   <-chan string
	Logger   *zap.Logger
}

// Model is the root application model.
type Model struct {
	svc    playback.Service
	sub    *playback.Subscription
	keys   *keymap.Resolver
	logger *zap.Logger

	notifier notify.Notifier
	ids      notify.IDStore
	watcher  *library.Watcher
	registry library.Registrar
	stderr   <-chan string

	QueuePanel queuepanel.Model
	help       help.Model
	helpKeys   keymap.HelpMap
	showHelp   bool

	status    string
	statusErr bool
	chance    float64 // of the current track, from the last score change

	Width  int
	Height int
}

// New creates the application model and subscribes to the service.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := keymap.Default()

	panel := queuepanel.New(keys, deps.Service.Limits())
	panel.SetFocused(true)
	panel.SetQueue(deps.Service.Queue(), deps.Service.QueueIndex())

	return Model{
		svc:        deps.Service,
		sub:        deps.Service.Subscribe(),
		keys:       keys,
		logger:     logger,
		notifier:   deps.Notifier,
		ids:        deps.IDs,
		watcher:    deps.Watcher,
		registry:   deps.Registry,
		stderr:     deps.Stderr,
		QueuePanel: panel,
		help:       help.New(),
		helpKeys:   keymap.NewHelpMap("playback", "score", "queue", "global"),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		WatchServiceEvents(m.sub),
		WatchLibraryCmd(m.watcher, m.registry),
		WatchStderrCmd(m.stderr),
		LoadScoresCmd(m.svc, m.QueuePanel.MissingScores()),
	)
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

// Run starts the TUI and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
