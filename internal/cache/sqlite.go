//go:build cgo

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// SQLite is a cache held in a private in-memory SQLite database. It lives
// only as long as the process and can be bounded by entry count (oldest
// entries are evicted first) and by age.
type SQLite struct {
	conn       *sql.DB
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// NewSQLite creates a new in-memory SQLite cache
func NewSQLite(ctx context.Context, maxEntries int, ttl time.Duration) (*SQLite, error) {
	dsn := fmt.Sprintf("file:wordspace-%s?mode=memory&cache=shared", uuid.NewString())

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The database disappears with its last connection
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxIdleTime(0)
	conn.SetConnMaxLifetime(0)

	s := &SQLite{
		conn:       conn,
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
	if err := s.initSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLite) initSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS embeddings (
			word TEXT PRIMARY KEY,
			vector TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_embeddings_created_at ON embeddings(created_at);
	`
	_, err := s.conn.ExecContext(ctx, schema)
	return err
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}

func (s *SQLite) Get(ctx context.Context, word string) (types.Vector, bool, error) {
	var raw string
	var createdAt int64

	err := s.conn.QueryRowContext(ctx,
		`SELECT vector, created_at FROM embeddings WHERE word = ?`, word,
	).Scan(&raw, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query embedding: %w", err)
	}

	if s.expired(createdAt) {
		if _, err := s.conn.ExecContext(ctx, `DELETE FROM embeddings WHERE word = ?`, word); err != nil {
			return nil, false, fmt.Errorf("failed to delete expired embedding: %w", err)
		}
		return nil, false, nil
	}

	var vec types.Vector
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal embedding: %w", err)
	}

	return vec, true, nil
}

func (s *SQLite) Put(ctx context.Context, word string, vec types.Vector) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO embeddings (word, vector, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(word) DO UPDATE SET vector = excluded.vector, created_at = excluded.created_at`,
		word, string(raw), s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert embedding: %w", err)
	}

	if s.maxEntries > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM embeddings WHERE word IN (
				SELECT word FROM embeddings ORDER BY created_at DESC, word LIMIT -1 OFFSET ?
			)`,
			s.maxEntries,
		)
		if err != nil {
			return fmt.Errorf("failed to evict embeddings: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Len(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM embeddings`
	args := []interface{}{}

	if s.ttl > 0 {
		query += " WHERE created_at > ?"
		args = append(args, s.now().Add(-s.ttl).UnixNano())
	}

	var n int
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLite) expired(createdAt int64) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(time.Unix(0, createdAt)) > s.ttl
}
