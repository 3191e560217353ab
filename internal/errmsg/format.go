// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryScan  Op = "scan library"
	OpLibraryWatch Op = "watch library"

	// Score operations
	OpScoreUpdate Op = "update score"

	// Queue operations
	OpQueueLoad   Op = "load queue"
	OpQueueFill   Op = "fill queue"
	OpQueueRemove Op = "remove from queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpPlaybackNext  Op = "play next track"

	// cmus operations
	OpCmusStatus Op = "handle cmus status change"
	OpCmusPlay   Op = "play in cmus"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is an error tagged with the operation that failed. Its message is
// the Format rendering, so command line errors read like TUI status lines.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return Format(e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with op. Returns nil for a nil err; an error already tagged
// is returned unchanged.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}
	return &Error{Op: op, Err: err}
}
