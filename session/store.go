package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/lib/pq"
)

// Store is the per-visitor key-value client storage holding session
// tokens and user records.
type Store interface {
	Get(ctx context.Context, visitorID, key string) (string, bool, error)
	Set(ctx context.Context, visitorID, key, value string) error
	Delete(ctx context.Context, visitorID string, keys ...string) error
	Ping(ctx context.Context) error
}

// MemoryStore keeps client storage in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[visitorID][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, visitorID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[visitorID] == nil {
		s.data[visitorID] = make(map[string]string)
	}
	s.data[visitorID][key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, visitorID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data[visitorID], k)
	}
	if len(s.data[visitorID]) == 0 {
		delete(s.data, visitorID)
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// PostgresStore keeps client storage in the client_storage table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM client_storage WHERE visitor_id = $1 AND key = $2`,
		visitorID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, visitorID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_storage (visitor_id, key, value, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (visitor_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
	`, visitorID, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, visitorID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE visitor_id = $1 AND key = ANY($2)`,
		visitorID, pq.Array(keys),
	)
	if err != nil {
		return fmt.Errorf("deleting %v: %w", keys, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
