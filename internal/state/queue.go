package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tilt/internal/db"
)

// QueueTrack represents a track in the saved queue.
type QueueTrack struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// QueueState represents the saved queue and cursor.
type QueueState struct {
	CurrentIndex int
	Tracks       []QueueTrack
}

// GetQueue returns the saved queue. An empty database yields an empty queue.
func (m *Manager) GetQueue() (*QueueState, error) {
	if !m.usable() {
		return nil, ErrClosed
	}
	return getQueue(m.db)
}

// SaveQueue saves the queue immediately, dropping any scheduled save.
func (m *Manager) SaveQueue(state QueueState) error {
	if !m.usable() {
		return ErrClosed
	}
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.saveMu.Unlock()
	return saveQueue(m.db, state)
}

func getQueue(db *sql.DB) (*QueueState, error) {
	var currentIndex int
	err := db.QueryRow(`SELECT current_index FROM queue_state WHERE id = 1`).Scan(&currentIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return &QueueState{CurrentIndex: -1}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT path, title, artist, album, track_number, duration_ms
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []QueueTrack
	for rows.Next() {
		var t QueueTrack
		var artist, album sql.Null[string]
		var trackNumber, durationMs sql.Null[int64]

		if err := rows.Scan(&t.Path, &t.Title, &artist, &album, &trackNumber, &durationMs); err != nil {
			return nil, err
		}

		t.Artist = dbutil.Value(artist)
		t.Album = dbutil.Value(album)
		t.TrackNumber = int(dbutil.Value(trackNumber))
		t.Duration = dbutil.Millis(durationMs)
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &QueueState{
		CurrentIndex: currentIndex,
		Tracks:       tracks,
	}, nil
}

func saveQueue(sqlDB *sql.DB, state QueueState) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_tracks`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO queue_state (id, current_index)
			VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index
		`, state.CurrentIndex)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_tracks (position, path, title, artist, album, track_number, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range state.Tracks {
			_, err = stmt.Exec(i, t.Path, t.Title, t.Artist, t.Album, t.TrackNumber, t.Duration.Milliseconds())
			if err != nil {
				return err
			}
		}
		return nil
	})
}
