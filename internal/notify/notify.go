// Package notify provides desktop notifications via D-Bus, with a
// cross-platform fallback.
package notify

import "fmt"

// AppName identifies tilt to the notification server.
const AppName = "tilt"

const (
	scoreIcon    = "audio-headphones"
	scoreTimeout = 5000
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 when the backend has no notification IDs.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// IDStore remembers the last score notification so the next one replaces
// it, across processes.
type IDStore interface {
	NotificationID() (uint32, error)
	SaveNotificationID(id uint32) error
}

// Score describes a score change to announce.
type Score struct {
	Path   string
	Score  int
	Delta  int
	Chance float64 // 0-1
}

// ScoreNotification builds the notification for a score change, e.g.
// "Upvoted - 5 score" / "12.50% chance of playing".
func ScoreNotification(s Score, replaces uint32) Notification {
	verb := "Upvoted"
	if s.Delta < 0 {
		verb = "Downvoted"
	}
	icon := scoreIcon
	if art := FindAlbumArtPath(s.Path); art != "" {
		icon = art
	}
	return Notification{
		Title:      fmt.Sprintf("%s - %d score", verb, s.Score),
		Body:       fmt.Sprintf("%.2f%% chance of playing", s.Chance*100),
		Icon:       icon,
		Timeout:    scoreTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

// SendScore shows a score notification, replacing the previous one when
// ids remembers it. ids may be nil.
func SendScore(n Notifier, ids IDStore, s Score) error {
	var replaces uint32
	if ids != nil {
		if id, err := ids.NotificationID(); err == nil {
			replaces = id
		}
	}

	id, err := n.Notify(ScoreNotification(s, replaces))
	if err != nil {
		return err
	}
	if ids != nil && id != 0 && id != replaces {
		return ids.SaveNotificationID(id)
	}
	return nil
}
