package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/secrets-tracker/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// NewID mints a ULID.
func (s *SQLiteStore) NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chats (
		id          TEXT PRIMARY KEY,
		state       TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id          TEXT PRIMARY KEY,
		chat_id     TEXT NOT NULL,
		seq         INTEGER NOT NULL,
		speaker     TEXT NOT NULL,
		is_user     INTEGER NOT NULL DEFAULT 0,
		text        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_chat_seq ON messages(chat_id, seq);

	CREATE TABLE IF NOT EXISTS injections (
		chat_id     TEXT NOT NULL,
		tag         TEXT NOT NULL,
		text        TEXT NOT NULL,
		position    TEXT NOT NULL,
		depth       INTEGER NOT NULL DEFAULT 0,
		persistent  INTEGER NOT NULL DEFAULT 1,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (chat_id, tag)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadState returns the chat's state, creating an empty one on first access.
// The empty state is persisted before being returned, so a chat row always
// exists once a chat has been touched.
func (s *SQLiteStore) LoadState(ctx context.Context, chatID string) (*model.State, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM chats WHERE id = ?`, chatID).Scan(&raw)
	if err == sql.ErrNoRows {
		st := model.NewState()
		if err := s.SaveState(ctx, chatID, st); err != nil {
			return nil, err
		}
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state %s: %w", chatID, err)
	}

	var st model.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("load state %s: %w", chatID, err)
	}
	st.Normalize()
	return &st, nil
}

// SaveState persists the chat's state wholesale.
func (s *SQLiteStore) SaveState(ctx context.Context, chatID string, st *model.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("save state %s: %w", chatID, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chats (id, state, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		chatID, string(b), now, now)
	if err != nil {
		return fmt.Errorf("save state %s: %w", chatID, err)
	}
	return nil
}

// AppendMessage adds a message to the chat feed.
func (s *SQLiteStore) AppendMessage(ctx context.Context, chatID, speaker string, isUser bool, text string) (*model.Message, error) {
	var seq int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE chat_id = ?`, chatID).Scan(&seq)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	m := &model.Message{
		ID:      s.NewID(),
		ChatID:  chatID,
		Seq:     seq,
		Speaker: speaker,
		IsUser:  isUser,
		Text:    text,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (id, chat_id, seq, speaker, is_user, text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ChatID, m.Seq, m.Speaker, boolInt(m.IsUser), m.Text,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return m, nil
}

// RecentMessages returns up to limit trailing messages, oldest first.
func (s *SQLiteStore) RecentMessages(ctx context.Context, chatID string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, seq, speaker, is_user, text FROM (
			SELECT id, chat_id, seq, speaker, is_user, text
			FROM messages WHERE chat_id = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		var isUser int
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Seq, &m.Speaker, &isUser, &m.Text); err != nil {
			return nil, err
		}
		m.IsUser = isUser != 0
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// SetInjection upserts an injection slot. Empty text clears the slot, which
// is how injection is disabled.
func (s *SQLiteStore) SetInjection(ctx context.Context, inj Injection) error {
	if inj.Text == "" {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM injections WHERE chat_id = ? AND tag = ?`, inj.ChatID, inj.Tag)
		return err
	}
	if !ValidPositions[inj.Position] {
		return fmt.Errorf("set injection: invalid position %q", inj.Position)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO injections (chat_id, tag, text, position, depth, persistent, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(chat_id, tag) DO UPDATE SET
		   text = excluded.text, position = excluded.position,
		   depth = excluded.depth, persistent = excluded.persistent,
		   updated_at = excluded.updated_at`,
		inj.ChatID, inj.Tag, inj.Text, string(inj.Position), inj.Depth,
		boolInt(inj.Persistent), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set injection: %w", err)
	}
	return nil
}

// GetInjection reads an injection slot; nil means the slot is clear.
func (s *SQLiteStore) GetInjection(ctx context.Context, chatID, tag string) (*Injection, error) {
	var inj Injection
	var pos string
	var persistent int
	err := s.db.QueryRowContext(ctx,
		`SELECT chat_id, tag, text, position, depth, persistent
		 FROM injections WHERE chat_id = ? AND tag = ?`, chatID, tag).
		Scan(&inj.ChatID, &inj.Tag, &inj.Text, &pos, &inj.Depth, &persistent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get injection: %w", err)
	}
	inj.Position = Position(pos)
	inj.Persistent = persistent != 0
	return &inj, nil
}

// Chats lists known chat ids, most recently updated first.
func (s *SQLiteStore) Chats(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM chats ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
