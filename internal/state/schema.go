package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS song_scores (
			path TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			last_played INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_song_scores_score ON song_scores(score DESC);

		CREATE TABLE IF NOT EXISTS queue_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1
		);

		CREATE TABLE IF NOT EXISTS queue_tracks (
			position INTEGER PRIMARY KEY,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			album TEXT,
			track_number INTEGER,
			duration_ms INTEGER
		);

		CREATE TABLE IF NOT EXISTS cmus_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			last_file TEXT NOT NULL,
			play_started INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cmus_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cmus_flags (
			name TEXT PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	return nil
}
