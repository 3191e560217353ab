//go:build !linux

package notify

import "go.uber.org/zap"

// New returns a notifier using the platform's native notifications.
func New(_ *zap.Logger) (Notifier, error) {
	return beeepNotifier{}, nil
}

// FindAlbumArtPath returns empty on non-Linux platforms.
func FindAlbumArtPath(_ string) string {
	return ""
}
