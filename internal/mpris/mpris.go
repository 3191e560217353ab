//go:build linux

// Package mpris publishes the player on the session bus so media keys and
// desktop widgets can drive it.
package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"go.uber.org/zap"

	"github.com/llehouerou/tilt/internal/playback"
)

// busName becomes org.mpris.MediaPlayer2.tilt.
const busName = "tilt"

// Adapter serves one playback service as an MPRIS media player.
type Adapter struct {
	srv    *server.Server
	signal *events.EventHandler
	sub    *playback.Subscription
	logger *zap.Logger
	stop   chan struct{}
}

// New registers svc on the session bus and starts relaying its events.
// Bus errors after startup are logged, never returned.
func New(svc playback.Service, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := server.NewServer(busName, appInfo{}, &transport{svc: svc})
	a := &Adapter{
		srv:    srv,
		signal: events.NewEventHandler(srv),
		sub:    svc.Subscribe(),
		logger: logger,
		stop:   make(chan struct{}),
	}

	go a.serve()
	go a.relay()
	return a, nil
}

func (a *Adapter) serve() {
	if err := a.srv.Listen(); err != nil {
		a.logger.Warn("mpris bus listener exited", zap.Error(err))
	}
}

// relay turns state and track events into PropertiesChanged signals.
func (a *Adapter) relay() {
	for {
		var err error
		select {
		case <-a.stop:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.StateChanged:
			err = a.signal.Player.OnPlayPause()
		case <-a.sub.TrackChanged:
			err = a.signal.Player.OnTitle()
		}
		if err != nil {
			a.logger.Debug("mpris property signal", zap.Error(err))
		}
	}
}

// Close stops relaying and releases the bus name.
func (a *Adapter) Close() error {
	close(a.stop)
	return a.srv.Stop()
}
