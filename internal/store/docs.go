package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/md-rashed-zaman/companion/libs/db"
)

// Document names under which the companion persists per-user state.
const (
	DocTasks       = "tasks"
	DocNotes       = "notes"
	DocLedger      = "ledger"
	DocJournal     = "journal"
	DocPreferences = "preferences"
)

// DocStore persists opaque per-user JSON documents under named keys, the
// storage shape the rest of the application shares with the client.
type DocStore struct {
	pool *db.Pool
}

func NewDocStore(pool *db.Pool) *DocStore {
	return &DocStore{pool: pool}
}

// Read unmarshals the named document into v. A missing document leaves v
// untouched and returns false.
func (s *DocStore) Read(ctx context.Context, userID, name string, v any) (bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT doc FROM user_docs WHERE user_id = $1 AND name = $2
	`, userID, name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DocStore) Write(ctx context.Context, userID, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO user_docs (user_id, name, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name) DO UPDATE SET doc = $3, updated_at = now()
	`, userID, name, raw)
	return err
}
