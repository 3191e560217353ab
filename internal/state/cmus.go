package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tilt/internal/db"
)

// PlayRecord is the file the cmus hook last saw playing.
type PlayRecord struct {
	Path    string
	Started time.Time
}

// LastPlay returns the last recorded play. ok is false on first run.
func (m *Manager) LastPlay() (rec PlayRecord, ok bool, err error) {
	if !m.usable() {
		return PlayRecord{}, false, ErrClosed
	}
	var startedMs int64
	err = m.db.QueryRow(`SELECT last_file, play_started FROM cmus_state WHERE id = 1`).
		Scan(&rec.Path, &startedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return PlayRecord{}, false, nil
	}
	if err != nil {
		return PlayRecord{}, false, err
	}
	rec.Started = time.UnixMilli(startedMs)
	return rec, true, nil
}

// RecordPlay stores the file now playing and when it started.
func (m *Manager) RecordPlay(path string, started time.Time) error {
	if !m.usable() {
		return ErrClosed
	}
	_, err := m.db.Exec(`
		INSERT INTO cmus_state (id, last_file, play_started)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_file = excluded.last_file,
			play_started = excluded.play_started
	`, path, started.UnixMilli())
	return err
}

// PushHistory appends path to the play history stack.
func (m *Manager) PushHistory(path string) error {
	if !m.usable() {
		return ErrClosed
	}
	_, err := m.db.Exec(`INSERT INTO cmus_history (path) VALUES (?)`, path)
	return err
}

// PopHistory removes and returns the most recent history entry.
func (m *Manager) PopHistory() (path string, ok bool, err error) {
	if !m.usable() {
		return "", false, ErrClosed
	}
	err = dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRow(`SELECT id, path FROM cmus_history ORDER BY id DESC LIMIT 1`).Scan(&id, &path)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		_, err = tx.Exec(`DELETE FROM cmus_history WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return "", false, err
	}
	return path, ok, nil
}

// HistoryLen returns the number of entries on the history stack.
func (m *Manager) HistoryLen() (int, error) {
	if !m.usable() {
		return 0, ErrClosed
	}
	var n int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM cmus_history`).Scan(&n)
	return n, err
}

// SetFlag raises a one-shot flag.
func (m *Manager) SetFlag(name string) error {
	if !m.usable() {
		return ErrClosed
	}
	_, err := m.db.Exec(`INSERT OR IGNORE INTO cmus_flags (name) VALUES (?)`, name)
	return err
}

// TakeFlag clears a flag and reports whether it was raised.
func (m *Manager) TakeFlag(name string) (bool, error) {
	if !m.usable() {
		return false, ErrClosed
	}
	res, err := m.db.Exec(`DELETE FROM cmus_flags WHERE name = ?`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
