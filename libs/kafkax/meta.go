package kafkax

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

// EventMeta is the metadata carried on every event message. Messages from
// producers that omit the headers fall back to the key and topic, which keeps
// inbox dedup working at a coarser grain.
type EventMeta struct {
	EventID   string
	EventType string
}

func ExtractEventMeta(msg kafka.Message) EventMeta {
	meta := EventMeta{
		EventID:   HeaderValue(msg.Headers, "event_id"),
		EventType: HeaderValue(msg.Headers, "event_type"),
	}
	if meta.EventID == "" {
		meta.EventID = string(msg.Key)
	}
	if meta.EventType == "" {
		meta.EventType = msg.Topic
	}
	return meta
}

func HeaderValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// SplitBrokers parses a comma-separated broker list, dropping empties.
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
