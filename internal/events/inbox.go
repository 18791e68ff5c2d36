package events

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/md-rashed-zaman/companion/libs/db"
)

// Inbox deduplicates consumed events by event_id.
type Inbox struct {
	pool *db.Pool
}

func NewInbox(pool *db.Pool) *Inbox {
	return &Inbox{pool: pool}
}

// Record returns false when the event was already seen.
func (r *Inbox) Record(ctx context.Context, eventID string, eventType string) (bool, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inbox_events (event_id, event_type)
		VALUES ($1, $2)
	`, eventID, eventType)
	if err == nil {
		return true, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return false, nil
	}
	return false, err
}
