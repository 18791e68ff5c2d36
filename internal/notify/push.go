package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/companion/internal/model"
)

// PrefsReader exposes the per-user settings the sink needs: the permission
// gate and the push routing topic.
type PrefsReader interface {
	Preferences(ctx context.Context, userID string) (model.Preferences, error)
}

// WebhookSink delivers notifications by POSTing to a push relay
// (ntfy-compatible: a base URL plus per-user topic).
type WebhookSink struct {
	prefs  PrefsReader
	url    string
	token  string
	http   *http.Client
	logger *slog.Logger
}

func NewWebhookSink(prefs PrefsReader, url, token string, logger *slog.Logger) *WebhookSink {
	return &WebhookSink{
		prefs:  prefs,
		url:    strings.TrimSpace(url),
		token:  strings.TrimSpace(token),
		logger: logger,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Granted reports whether the user has push notifications enabled and
// routable. Preference read failures count as not granted.
func (s *WebhookSink) Granted(ctx context.Context, userID string) bool {
	p, err := s.prefs.Preferences(ctx, userID)
	if err != nil {
		s.logger.Error("preferences read failed", "err", err, "user_id", userID)
		return false
	}
	return p.PushEnabled && p.PushTopic != ""
}

// Show is fire-and-forget: delivery failures are logged and swallowed so a
// broken relay never stalls or aborts a reminder scan.
func (s *WebhookSink) Show(ctx context.Context, userID, title, body string) {
	p, err := s.prefs.Preferences(ctx, userID)
	if err != nil {
		s.logger.Error("preferences read failed", "err", err, "user_id", userID)
		return
	}
	if err := s.post(ctx, p.PushTopic, title, body); err != nil {
		s.logger.Error("push delivery failed", "err", err, "user_id", userID)
	}
}

func (s *WebhookSink) post(ctx context.Context, topic, title, body string) error {
	if s.url == "" {
		return errors.New("push webhook url not configured")
	}
	payload := map[string]string{
		"topic": topic,
		"title": title,
		"body":  body,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New("push webhook returned non-2xx")
	}
	return nil
}

// NoopSink accepts everything and shows nothing. Used when no push relay is
// configured.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (s *NoopSink) Granted(_ context.Context, _ string) bool { return false }

func (s *NoopSink) Show(_ context.Context, _, _, _ string) {}
