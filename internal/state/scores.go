package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tilt/internal/db"
	"github.com/llehouerou/tilt/internal/score"
)

// Scores is the SQLite-backed score store.
type Scores struct {
	m            *Manager
	defaultScore int
}

// Scores returns a score store over the manager's database. Unknown tracks
// read as defaultScore.
func (m *Manager) Scores(defaultScore int) *Scores {
	return &Scores{m: m, defaultScore: defaultScore}
}

var _ score.Store = (*Scores)(nil)

func (s *Scores) db() (*sql.DB, error) {
	if s == nil || !s.m.usable() {
		return nil, score.ErrStoreClosed
	}
	return s.m.db, nil
}

// Get returns the score of path, or the default for unknown tracks.
func (s *Scores) Get(path string) (int, error) {
	db, err := s.db()
	if err != nil {
		return 0, err
	}

	var v int
	err = db.QueryRow(`SELECT score FROM song_scores WHERE path = ?`, path).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaultScore, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Set upserts the score of path and stamps last_played.
func (s *Scores) Set(path string, v int, at time.Time) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO song_scores (path, score, last_played)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			score = excluded.score,
			last_played = excluded.last_played
	`, path, v, at.Unix())
	return err
}

// ListAll returns every track, highest score first, ties in insertion order.
func (s *Scores) ListAll() ([]score.Entry, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT path, score, last_played
		FROM song_scores
		ORDER BY score DESC, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []score.Entry
	for rows.Next() {
		var e score.Entry
		var lastPlayed sql.Null[int64]
		if err := rows.Scan(&e.ID, &e.Score, &lastPlayed); err != nil {
			return nil, err
		}
		e.LastPlayed = dbutil.UnixTime(lastPlayed)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Register inserts paths that are not yet known with the default score.
// Returns how many were added.
func (s *Scores) Register(paths ...string) (int, error) {
	db, err := s.db()
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, nil
	}

	added := 0
	err = dbutil.WithTx(db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO song_scores (path, score, last_played)
			VALUES (?, ?, NULL)
			ON CONFLICT(path) DO NOTHING
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range paths {
			res, err := stmt.Exec(p, s.defaultScore)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// Count returns the number of known tracks.
func (s *Scores) Count() (int, error) {
	db, err := s.db()
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM song_scores`).Scan(&n)
	return n, err
}
