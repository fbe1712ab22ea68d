package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"psched/internal/modules/chat/domain"
	chatout "psched/internal/modules/chat/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteTranscriptStore keeps every user's chat history in one local
// database, namespaced by user key so transcripts never cross accounts.
type SQLiteTranscriptStore struct {
	db *sql.DB
}

func NewSQLiteTranscriptStore(dbPath string) (*SQLiteTranscriptStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteTranscriptStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

var _ chatout.TranscriptStore = (*SQLiteTranscriptStore)(nil)

func (s *SQLiteTranscriptStore) ensureSchema(ctx context.Context) error {
	// seq preserves insertion order; replay depends on it.
	const ddl = `
CREATE TABLE IF NOT EXISTS messages (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  user_key TEXT NOT NULL,
  sender TEXT NOT NULL,
  body TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_key, seq);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create messages table: %w", err)
	}
	return nil
}

func (s *SQLiteTranscriptStore) Append(ctx context.Context, userKey string, message domain.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	const stmt = `
INSERT INTO messages (id, user_key, sender, body, created_at)
VALUES (?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		message.ID,
		userKey,
		string(message.Sender),
		message.Text,
		message.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (s *SQLiteTranscriptStore) List(ctx context.Context, userKey string) ([]domain.Message, error) {
	const query = `
SELECT id, sender, body, created_at FROM messages
WHERE user_key = ?
ORDER BY seq;
`
	rows, err := s.db.QueryContext(ctx, query, userKey)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		var sender, createdAt string
		if err := rows.Scan(&m.ID, &sender, &m.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Sender = domain.Sender(sender)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			m.CreatedAt = ts
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

func (s *SQLiteTranscriptStore) Clear(ctx context.Context, userKey string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE user_key = ?`, userKey); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

func (s *SQLiteTranscriptStore) Close() error {
	return s.db.Close()
}
