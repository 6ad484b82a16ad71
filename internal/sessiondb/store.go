package sessiondb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mizutani/innervoice/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	user_id TEXT NOT NULL,
	access_token TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Store persists the anonymous auth session in a single-row sqlite database
// so the device keeps the same user identity across runs. It implements
// domain.SessionCache.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and ensures
// the schema exists. The caller should call Close when done.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the cached session, or ok=false when this device has none.
func (s *Store) Load(ctx context.Context) (domain.Session, bool, error) {
	var sess domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, access_token, refresh_token FROM session WHERE id = 1`,
	).Scan(&sess.UserID, &sess.AccessToken, &sess.RefreshToken)
	if err == sql.ErrNoRows {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("load session: %w", err)
	}
	return sess, true, nil
}

// Save upserts the single session row.
func (s *Store) Save(ctx context.Context, sess domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, access_token, refresh_token, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			updated_at = excluded.updated_at`,
		sess.UserID, sess.AccessToken, sess.RefreshToken, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
