// Package score holds per-track affinity scores and the rules for changing them.
package score

import (
	"errors"
	"time"
)

// Default score limits.
const (
	DefaultMin   = -1
	DefaultMax   = 15
	DefaultScore = 2
)

// ErrStoreClosed is returned by a Store that was never opened or is already closed.
// It is distinct from an unknown track, which quietly reads as the default score.
var ErrStoreClosed = errors.New("score store is not open")

// Entry is a track identifier with its current score.
type Entry struct {
	ID         string // absolute file path
	Score      int
	LastPlayed time.Time
}

// Store is the durable mapping from track identifier to score.
type Store interface {
	// Get returns the score of id, or the default score if id is unknown.
	Get(id string) (int, error)
	// Set upserts the score of id and stamps it with at.
	Set(id string, score int, at time.Time) error
	// ListAll returns every known track ordered by descending score,
	// ties in storage order.
	ListAll() ([]Entry, error)
	// Register inserts ids that are not yet known with the default score.
	// Returns the number of newly inserted ids.
	Register(ids ...string) (int, error)
}

// Limits bounds the score range.
type Limits struct {
	Min     int
	Max     int
	Default int
}

// DefaultLimits returns the stock limits.
func DefaultLimits() Limits {
	return Limits{Min: DefaultMin, Max: DefaultMax, Default: DefaultScore}
}

// Valid reports whether the limits describe a usable range.
func (l Limits) Valid() bool {
	return l.Min < l.Max && l.Default >= l.Min && l.Default <= l.Max
}

// Clamp restricts v to [Min, Max].
func (l Limits) Clamp(v int) int {
	return min(max(v, l.Min), l.Max)
}
