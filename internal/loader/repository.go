package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/database"
)

// schema holds one scorecard document per author. The lower-cased
// handle is the conflict key; the document is replaced whole on every
// run.
const schema = `
CREATE TABLE IF NOT EXISTS scorecards (
	handle_key  TEXT PRIMARY KEY,
	handle      TEXT NOT NULL,
	data        JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists scorecards as JSONB documents.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates the store and ensures the schema exists.
func NewPostgresStore(ctx context.Context, db *database.DB) (*PostgresStore, error) {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure scorecards schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Get returns the stored scorecard for a handle, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, handle string) (*contracts.Scorecard, error) {
	var data []byte
	err := s.db.Pool.QueryRow(ctx,
		`SELECT data FROM scorecards WHERE handle_key = $1`,
		contracts.StorageKey(handle),
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scorecard: %w", err)
	}

	var sc contracts.Scorecard
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode scorecard: %w", err)
	}
	return &sc, nil
}

// Upsert stores a scorecard, replacing any prior version atomically.
func (s *PostgresStore) Upsert(ctx context.Context, sc *contracts.Scorecard) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode scorecard: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO scorecards (handle_key, handle, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (handle_key) DO UPDATE SET
			handle     = EXCLUDED.handle,
			data       = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`,
		contracts.StorageKey(sc.Handle), sc.Handle, data, sc.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert scorecard: %w", err)
	}
	return nil
}

// Handles returns every handle with a stored scorecard, in its
// original casing.
func (s *PostgresStore) Handles(ctx context.Context) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT handle FROM scorecards ORDER BY handle_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list handles: %w", err)
	}
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var handle string
		if err := rows.Scan(&handle); err != nil {
			return nil, fmt.Errorf("failed to scan handle: %w", err)
		}
		handles = append(handles, handle)
	}
	return handles, rows.Err()
}

var _ contracts.ScorecardStore = (*PostgresStore)(nil)

// MemoryStore is an in-process store for tests and for running without
// a database.
type MemoryStore struct {
	mu    sync.RWMutex
	cards map[string]*contracts.Scorecard
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cards: make(map[string]*contracts.Scorecard)}
}

func (s *MemoryStore) Get(_ context.Context, handle string) (*contracts.Scorecard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.cards[contracts.StorageKey(handle)]
	if !ok {
		return nil, contracts.ErrNotFound
	}
	copied := *sc
	return &copied, nil
}

func (s *MemoryStore) Upsert(_ context.Context, sc *contracts.Scorecard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sc
	s.cards[contracts.StorageKey(sc.Handle)] = &copied
	return nil
}

// Handles returns every handle with a stored scorecard, sorted by key.
func (s *MemoryStore) Handles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.cards))
	for key := range s.cards {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	handles := make([]string, 0, len(keys))
	for _, key := range keys {
		handles = append(handles, s.cards[key].Handle)
	}
	return handles, nil
}

var _ contracts.ScorecardStore = (*MemoryStore)(nil)
