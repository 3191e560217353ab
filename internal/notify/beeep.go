package notify

import "github.com/gen2brain/beeep"

// beeepNotifier shows notifications through the platform's native
// mechanism. It cannot replace a previous notification.
type beeepNotifier struct{}

func (beeepNotifier) Notify(n Notification) (uint32, error) {
	beeep.AppName = AppName
	return 0, beeep.Notify(n.Title, n.Body, n.Icon)
}

func (beeepNotifier) Close(_ uint32) error {
	return nil
}
