package playback

import (
	"errors"
	"time"

	"github.com/llehouerou/tilt/internal/playlist"
	"github.com/llehouerou/tilt/internal/score"
)

var (
	// ErrEmptyQueue is returned when there is nothing to play, even after
	// filling from the library.
	ErrEmptyQueue = errors.New("library is empty")
	// ErrInvalidIndex is returned for queue positions out of range.
	ErrInvalidIndex = errors.New("invalid queue index")
	// ErrNoTrack is returned by votes when nothing is current.
	ErrNoTrack = errors.New("no current track")
	// ErrNoPlayableTrack is returned when every queue entry failed to play.
	ErrNoPlayableTrack = errors.New("no playable track in queue")
)

// Service defines the playback service contract. It owns the queue manager
// and the score controller; every method is serialized, so the TUI, MPRIS
// and the end-of-track goroutine may call it concurrently.
type Service interface {
	// Playback control
	Play() error
	Pause() error
	Stop() error
	Toggle() error
	Next() error // applies the quick-skip penalty before advancing
	Previous() error
	JumpTo(index int) error
	Seek(delta time.Duration) error

	// Queue manipulation
	Refill() (playlist.FillResult, error)
	Insert(pos int, paths ...string) int // negative pos appends
	Remove(index int) error
	Move(from, to int) bool
	MoveIndices(indices []int, delta int) ([]int, bool)
	ClearQueue()
	RestoreQueue() error

	// Scores
	Upvote() (ScoreChange, error)
	Downvote() (ScoreChange, error)
	AdjustScore(path string, delta int) (ScoreChange, error)
	Score(path string) (int, error)
	Scores(paths []string) map[string]int
	Limits() score.Limits

	// State queries
	State() State
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *Track
	Queue() []Track
	QueueIndex() int
	QueueLen() int

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
