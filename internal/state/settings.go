package state

import (
	"database/sql"
	"errors"
	"strconv"
)

const keyNotificationID = "notification_id"

// Setting returns the value stored under key, or "" if unset.
func (m *Manager) Setting(key string) (string, error) {
	if !m.usable() {
		return "", ErrClosed
	}
	var v string
	err := m.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

// SaveSetting stores value under key.
func (m *Manager) SaveSetting(key, value string) error {
	if !m.usable() {
		return ErrClosed
	}
	_, err := m.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// NotificationID returns the id of the last score notification, 0 if none.
// Hook processes are short-lived, so the id must survive between runs for
// the next notification to replace it.
func (m *Manager) NotificationID() (uint32, error) {
	v, err := m.Setting(keyNotificationID)
	if err != nil || v == "" {
		return 0, err
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, nil //nolint:nilerr // a corrupt id just means no replacement
	}
	return uint32(id), nil
}

// SaveNotificationID stores the id of the last score notification.
func (m *Manager) SaveNotificationID(id uint32) error {
	return m.SaveSetting(keyNotificationID, strconv.FormatUint(uint64(id), 10))
}
