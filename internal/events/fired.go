package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type reminderFiredEvent struct {
	UserID        string `json:"user_id"`
	AppointmentID string `json:"appointment_id"`
	Title         string `json:"title"`
	FiredAt       string `json:"fired_at"`
}

// ReminderFiredHandler consumes fired-reminder events into the metrics store.
func ReminderFiredHandler(metrics *Metrics) Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt reminderFiredEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return err
		}
		firedAt, err := time.Parse(time.RFC3339, evt.FiredAt)
		if err != nil {
			firedAt = time.Now().UTC()
		}
		return metrics.RecordFired(ctx, evt.UserID, evt.AppointmentID, evt.Title, firedAt)
	}
}
