package db

import (
	"database/sql"
	"fmt"
)

// PurgeExpired deletes expired refresh tokens, then every visitor left
// without a refresh token together with its client storage.
func PurgeExpired(db *sql.DB) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM visitor_refresh_tokens WHERE expires_at <= NOW()`); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}

	res, err := tx.Exec(`
		DELETE FROM visitors v
		WHERE NOT EXISTS (
			SELECT 1 FROM visitor_refresh_tokens t WHERE t.visitor_id = v.id
		)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("error deleting stale visitors: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing purge: %w", err)
	}

	n, _ := res.RowsAffected()
	return n, nil
}
