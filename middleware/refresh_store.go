package middleware

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"
)

var ErrRefreshNotFound = errors.New("refresh token not found")

type RefreshRecord struct {
	Selector  string
	VisitorID string
	Hash      string
	ExpiresAt time.Time
}

// RefreshStore persists visitors and their hashed refresh tokens.
type RefreshStore interface {
	CreateVisitor(ctx context.Context, visitorID string) error
	SaveRefresh(ctx context.Context, rec RefreshRecord) error
	// ConsumeRefresh removes the record of selector and returns it, so a
	// refresh token is redeemed at most once.
	ConsumeRefresh(ctx context.Context, selector string) (RefreshRecord, error)
}

type PostgresRefreshStore struct {
	db *sql.DB
}

func NewPostgresRefreshStore(db *sql.DB) *PostgresRefreshStore {
	return &PostgresRefreshStore{db: db}
}

func (s *PostgresRefreshStore) CreateVisitor(ctx context.Context, visitorID string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO visitors (id) VALUES ($1)`, visitorID)
	return err
}

func (s *PostgresRefreshStore) SaveRefresh(ctx context.Context, rec RefreshRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitor_refresh_tokens (selector, visitor_id, token_hash, expires_at) VALUES ($1, $2, $3, $4)`,
		rec.Selector, rec.VisitorID, rec.Hash, rec.ExpiresAt,
	)
	return err
}

func (s *PostgresRefreshStore) ConsumeRefresh(ctx context.Context, selector string) (RefreshRecord, error) {
	rec := RefreshRecord{Selector: selector}
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM visitor_refresh_tokens WHERE selector = $1 RETURNING visitor_id, token_hash, expires_at`,
		selector,
	).Scan(&rec.VisitorID, &rec.Hash, &rec.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RefreshRecord{}, ErrRefreshNotFound
	}
	return rec, err
}

// MemoryRefreshStore keeps refresh tokens for the process lifetime.
type MemoryRefreshStore struct {
	mu       sync.Mutex
	visitors map[string]bool
	tokens   map[string]RefreshRecord
}

func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{
		visitors: make(map[string]bool),
		tokens:   make(map[string]RefreshRecord),
	}
}

func (s *MemoryRefreshStore) CreateVisitor(_ context.Context, visitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visitors[visitorID] = true
	return nil
}

func (s *MemoryRefreshStore) SaveRefresh(_ context.Context, rec RefreshRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[rec.Selector] = rec
	return nil
}

func (s *MemoryRefreshStore) ConsumeRefresh(_ context.Context, selector string) (RefreshRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tokens[selector]
	if !ok {
		return RefreshRecord{}, ErrRefreshNotFound
	}
	delete(s.tokens, selector)
	return rec, nil
}
