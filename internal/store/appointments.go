package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/md-rashed-zaman/companion/internal/model"
	"github.com/md-rashed-zaman/companion/libs/db"
)

// AppointmentStore keeps each user's appointments as a single document and
// replaces it wholesale on write. Concurrent edits are last-writer-wins,
// which is acceptable for a single-user, single-device client.
type AppointmentStore struct {
	pool *db.Pool
}

func NewAppointmentStore(pool *db.Pool) *AppointmentStore {
	return &AppointmentStore{pool: pool}
}

func (s *AppointmentStore) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id FROM appointment_docs
	`)
	if err != nil {
		return nil, err
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
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return ids, nil
}

func (s *AppointmentStore) Read(ctx context.Context, userID string) ([]model.Appointment, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT doc FROM appointment_docs WHERE user_id = $1
	`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var appts []model.Appointment
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &appts); err != nil {
			return nil, err
		}
	}
	return appts, nil
}

func (s *AppointmentStore) WriteAll(ctx context.Context, userID string, appts []model.Appointment) error {
	if appts == nil {
		appts = []model.Appointment{}
	}
	raw, err := json.Marshal(appts)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO appointment_docs (user_id, doc)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET doc = $2, updated_at = now()
	`, userID, raw)
	return err
}
