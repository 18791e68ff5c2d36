package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/companion/internal/model"
	"github.com/md-rashed-zaman/companion/libs/kafkax"
	"github.com/segmentio/kafka-go"
)

const TopicReminderFired = "reminder.fired.v1"

// Publisher emits companion events to Kafka. Publishing is best-effort
// telemetry: the notified flag in the appointment store is the source of
// truth, so a lost event is never replayed.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher returns nil when no brokers are configured; callers treat a
// nil publisher as disabled.
func NewPublisher(brokers string, logger *slog.Logger) *Publisher {
	list := kafkax.SplitBrokers(brokers)
	if len(list) == 0 {
		logger.Warn("event publisher disabled (no kafka brokers configured)")
		return nil
	}
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  list,
		Balancer: &kafka.Hash{},
	})
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	_ = p.writer.Close()
}

// ReminderFired publishes one fired-reminder event.
func (p *Publisher) ReminderFired(ctx context.Context, userID string, appt model.Appointment, firedAt time.Time) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"user_id":        userID,
		"appointment_id": appt.ID,
		"title":          appt.Title,
		"date":           appt.Date,
		"start_time":     appt.StartTime,
		"fired_at":       firedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Error("event payload marshal failed", "err", err)
		return
	}

	msg := kafka.Message{
		Topic: TopicReminderFired,
		Key:   []byte(userID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(TopicReminderFired)},
		},
	}
	msg.Headers = kafkax.InjectTraceHeaders(ctx, msg.Headers)
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("event publish failed", "err", err, "topic", TopicReminderFired)
	}
}
