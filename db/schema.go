package db

import (
	"database/sql"
	"fmt"
)

const Schema = `
-- Create visitors table
CREATE TABLE IF NOT EXISTS visitors (
    id UUID PRIMARY KEY,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Create visitor_refresh_tokens table
CREATE TABLE IF NOT EXISTS visitor_refresh_tokens (
    selector VARCHAR(32) PRIMARY KEY,
    visitor_id UUID NOT NULL,
    token_hash VARCHAR(255) NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (visitor_id) REFERENCES visitors(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_visitor_refresh_tokens_visitor ON visitor_refresh_tokens(visitor_id);

-- Create client_storage table
CREATE TABLE IF NOT EXISTS client_storage (
    visitor_id UUID NOT NULL,
    key VARCHAR(64) NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (visitor_id, key),
    FOREIGN KEY (visitor_id) REFERENCES visitors(id) ON DELETE CASCADE
);
`

// InitSchema initializes the database schema
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
