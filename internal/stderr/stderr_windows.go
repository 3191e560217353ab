//go:build windows

// Package stderr provides a no-op capture for Windows, whose audio
// backends do not write to stderr.
package stderr

import (
	"os"

	"go.uber.org/zap"
)

// Capture is a no-op on Windows.
type Capture struct {
	messages chan string
}

// Start returns a capture that never receives anything.
func Start(_ *zap.Logger) (*Capture, error) {
	return &Capture{messages: make(chan string)}, nil
}

// Messages never delivers.
func (c *Capture) Messages() <-chan string { return c.messages }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
