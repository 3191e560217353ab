//go:build !windows

// Package stderr captures output that C audio backends (ALSA, PulseAudio)
// write straight to file descriptor 2, so it cannot corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	origFd    int
	pipeRead  *os.File
	pipeWrite *os.File
	messages  chan string
	logger    *zap.Logger
	stopOnce  sync.Once
	done      chan struct{}
}

// Start begins capturing stderr. Call it before the speaker is initialized.
// On error the program can continue with stderr untouched.
func Start(logger *zap.Logger) (*Capture, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		origFd:    orig,
		pipeRead:  r,
		pipeWrite: w,
		messages:  make(chan string, 100),
		logger:    logger,
		done:      make(chan struct{}),
	}
	go c.read()
	return c, nil
}

func (c *Capture) read() {
	defer close(c.done)
	defer close(c.messages)

	scanner := bufio.NewScanner(c.pipeRead)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.logger.Warn("captured stderr", zap.String("line", line))
		select {
		case c.messages <- line:
		default:
		}
	}
}

// Messages delivers captured lines. It is closed after Stop.
func (c *Capture) Messages() <-chan string {
	return c.messages
}

// WriteOriginal writes to the real stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.origFd, []byte(msg))
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	c.stopOnce.Do(func() {
		_ = syscall.Dup2(c.origFd, int(os.Stderr.Fd()))
		_ = syscall.Close(c.origFd)
		c.pipeWrite.Close()
		<-c.done
		c.pipeRead.Close()
	})
}
