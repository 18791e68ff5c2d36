package events

import (
	"context"
	"fmt"
	"time"

	"github.com/md-rashed-zaman/companion/libs/db"
	"github.com/redis/go-redis/v9"
)

// Metrics records fired reminders: a per-event row in Postgres for history
// and a daily counter in Redis for the cheap stats endpoint. Redis is
// optional; with a nil client only the rows are kept.
type Metrics struct {
	pool *db.Pool
	rdb  *redis.Client
}

func NewMetrics(pool *db.Pool, rdb *redis.Client) *Metrics {
	return &Metrics{pool: pool, rdb: rdb}
}

func (m *Metrics) RecordFired(ctx context.Context, userID, appointmentID, title string, firedAt time.Time) error {
	_, err := m.pool.Exec(ctx, `
		INSERT INTO reminder_metrics (user_id, appointment_id, title, fired_at)
		VALUES ($1, $2, $3, $4)
	`, userID, appointmentID, title, firedAt)
	if err != nil {
		return err
	}

	if m.rdb != nil {
		key := dailyKey(userID, firedAt)
		if err := m.rdb.Incr(ctx, key).Err(); err != nil {
			return err
		}
		// Counters only need to survive the stats window.
		_ = m.rdb.Expire(ctx, key, 40*24*time.Hour).Err()
	}
	return nil
}

// FiredToday returns the user's counter for the given day, falling back to a
// row count when Redis is absent.
func (m *Metrics) FiredToday(ctx context.Context, userID string, day time.Time) (int64, error) {
	if m.rdb != nil {
		n, err := m.rdb.Get(ctx, dailyKey(userID, day)).Int64()
		if err == nil {
			return n, nil
		}
		if err != redis.Nil {
			return 0, err
		}
		return 0, nil
	}

	var n int64
	err := m.pool.QueryRow(ctx, `
		SELECT count(*) FROM reminder_metrics
		WHERE user_id = $1 AND fired_at::date = $2::date
	`, userID, day).Scan(&n)
	return n, err
}

// FiredTotal counts all recorded reminders for the user.
func (m *Metrics) FiredTotal(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := m.pool.QueryRow(ctx, `
		SELECT count(*) FROM reminder_metrics WHERE user_id = $1
	`, userID).Scan(&n)
	return n, err
}

func dailyKey(userID string, day time.Time) string {
	return fmt.Sprintf("reminders:%s:%s", userID, day.UTC().Format("2006-01-02"))
}
