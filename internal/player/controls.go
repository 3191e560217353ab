package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop stops playback and releases resources.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	// Invalidate the pending end-of-track callback
	p.generation.Add(1)
	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	p.ctrl = nil
	p.trackInfo = nil
	p.state = Stopped
	p.closeDone()
}

// Pause pauses playback.
func (p *Player) Pause() {
	if !p.state.CanPause() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	if !p.state.CanResume() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Toggle toggles between playing and paused states.
func (p *Player) Toggle() {
	switch p.state {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
	}
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Position())
}

// Seek moves the playback position by delta. Seeking past the end
// finishes the track.
func (p *Player) Seek(delta time.Duration) {
	if p.streamer == nil || p.state == Stopped {
		return
	}

	speaker.Lock()
	pos := p.streamer.Position() + p.format.SampleRate.N(delta)
	if pos >= p.streamer.Len() {
		speaker.Unlock()
		ev := Finished{Path: p.trackInfo.Path, Generation: p.generation.Load()}
		select {
		case p.finishedCh <- ev:
		default:
		}
		return
	}
	_ = p.streamer.Seek(max(pos, 0))
	speaker.Unlock()
}
