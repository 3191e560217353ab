// Package db holds small database/sql helpers shared by the stores.
package db

import (
	"database/sql"
	"time"
)

// WithTx runs fn in a transaction, committing only if fn succeeds.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Value returns the column value, or the zero value for NULL.
func Value[T any](n sql.Null[T]) T {
	if !n.Valid {
		var zero T
		return zero
	}
	return n.V
}

// UnixTime reads a nullable unix-seconds column. NULL is the zero time.
func UnixTime(n sql.Null[int64]) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return time.Unix(n.V, 0)
}

// Millis reads a nullable millisecond duration column.
func Millis(n sql.Null[int64]) time.Duration {
	return time.Duration(Value(n)) * time.Millisecond
}
