package player

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/llehouerou/tilt/internal/library"
)

// TrackInfo describes the loaded track.
type TrackInfo struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// The speaker is process-wide and initialized once with the first track's rate.
var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	return speakerErr
}

// Player plays local audio files through the system speaker.
type Player struct {
	state      State
	ctrl       *beep.Ctrl
	streamer   beep.StreamSeekCloser
	format     beep.Format
	trackInfo  *TrackInfo
	generation atomic.Uint64
	finishedCh chan Finished
	done       chan struct{}
	closeDone  func()
}

// New creates a stopped player.
func New() *Player {
	return &Player{
		state:      Stopped,
		finishedCh: make(chan Finished, 1),
		done:       make(chan struct{}),
		closeDone:  func() {},
	}
}

// Play stops the current track and starts path.
// Open errors wrap the underlying fs error, so permission failures
// match fs.ErrPermission.
func (p *Player) Play(path string) error {
	p.Stop()

	// Drain a finish signal left by the previous track
	select {
	case <-p.finishedCh:
	default:
	}

	if !CanPlay(path) {
		return fmt.Errorf("play %s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	streamer, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	var out beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		out = beep.Resample(4, format.SampleRate, speakerRate, streamer)
	}

	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: out}

	tags := library.ReadTrack(path)
	p.trackInfo = &TrackInfo{
		Path:     path,
		Title:    tags.Title,
		Artist:   tags.Artist,
		Album:    tags.Album,
		Duration: format.SampleRate.D(streamer.Len()),
	}

	p.state = Playing
	done := make(chan struct{})
	closeDone := sync.OnceFunc(func() { close(done) })
	p.done = done
	p.closeDone = closeDone
	gen := p.generation.Add(1)

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		closeDone()
		// A stale callback from a replaced track must not end the new one
		if p.generation.Load() != gen {
			return
		}
		select {
		case p.finishedCh <- Finished{Path: path, Generation: gen}:
		default:
		}
	})))

	return nil
}

// State returns the playback state.
func (p *Player) State() State { return p.state }

// TrackInfo returns the loaded track, or nil when stopped.
func (p *Player) TrackInfo() *TrackInfo { return p.trackInfo }

// Duration returns the loaded track's length.
func (p *Player) Duration() time.Duration {
	if p.trackInfo == nil {
		return 0
	}
	return p.trackInfo.Duration
}

// Finished reports the natural end of the track started at Generation.
type Finished struct {
	Path       string
	Generation uint64
}

// FinishedChan receives once each time a track plays to its end.
func (p *Player) FinishedChan() <-chan Finished {
	return p.finishedCh
}

// Generation returns the counter of the loaded track.
func (p *Player) Generation() uint64 {
	return p.generation.Load()
}

// Done is closed when the current track stops for any reason.
func (p *Player) Done() <-chan struct{} {
	return p.done
}
