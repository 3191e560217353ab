// Package cmus drives a running cmus through cmus-remote, so tilt can pick
// the next track while cmus does the playing.
package cmus

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrNotRunning is returned when cmus-remote cannot reach cmus.
var ErrNotRunning = errors.New("cmus is not running")

// Runner executes a command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs real processes.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not running") {
			return nil, ErrNotRunning
		}
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Status is the player state reported by cmus-remote -Q.
type Status struct {
	Status   string // playing, paused, stopped
	File     string
	Position time.Duration
	Duration time.Duration
	Artist   string
	Title    string
	Album    string
}

// ParseStatus parses the output of cmus-remote -Q. Unknown lines are ignored.
func ParseStatus(out []byte) Status {
	var st Status
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, _ := strings.Cut(sc.Text(), " ")
		value = strings.TrimSpace(value)
		switch key {
		case "status":
			st.Status = value
		case "file":
			st.File = value
		case "position":
			st.Position = seconds(value)
		case "duration":
			st.Duration = seconds(value)
		case "tag":
			name, tagValue, _ := strings.Cut(value, " ")
			switch name {
			case "artist":
				st.Artist = tagValue
			case "title":
				st.Title = tagValue
			case "album":
				st.Album = tagValue
			}
		}
	}
	return st
}

func seconds(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func lines(out []byte) []string {
	var result []string
	for line := range strings.SplitSeq(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return result
}

// Remote wraps the cmus-remote commands the hook needs.
type Remote struct {
	bin    string
	runner Runner
}

// NewRemote creates a remote calling bin through runner.
func NewRemote(bin string, runner Runner) *Remote {
	if bin == "" {
		bin = "cmus-remote"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Remote{bin: bin, runner: runner}
}

func (r *Remote) run(ctx context.Context, args ...string) ([]byte, error) {
	return r.runner.Run(ctx, r.bin, args...)
}

// Status queries the player state.
func (r *Remote) Status(ctx context.Context) (Status, error) {
	out, err := r.run(ctx, "-Q")
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(out), nil
}

// Queue lists the files in the cmus play queue.
func (r *Remote) Queue(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "-C", "save -q -")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// Library lists the files in the cmus library.
func (r *Remote) Library(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "-C", "save -l -")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// Enqueue appends path to the play queue.
func (r *Remote) Enqueue(ctx context.Context, path string) error {
	_, err := r.run(ctx, "-q", path)
	return err
}

// Prepend puts path at the head of the play queue.
func (r *Remote) Prepend(ctx context.Context, path string) error {
	_, err := r.run(ctx, "-C", "add -Q "+path)
	return err
}

// PlayFile starts playing path immediately.
func (r *Remote) PlayFile(ctx context.Context, path string) error {
	_, err := r.run(ctx, "-C", "player-play "+path)
	return err
}

// Previous asks cmus for its own previous track.
func (r *Remote) Previous(ctx context.Context) error {
	_, err := r.run(ctx, "-r")
	return err
}
