package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/md-rashed-zaman/companion/internal/model"
)

type fakePrefs struct {
	p   model.Preferences
	err error
}

func (f *fakePrefs) Preferences(_ context.Context, _ string) (model.Preferences, error) {
	return f.p, f.err
}

func TestWebhookSink_Show(t *testing.T) {
	var got map[string]string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	prefs := &fakePrefs{p: model.Preferences{PushEnabled: true, PushTopic: "u1-topic"}}
	sink := NewWebhookSink(prefs, srv.URL, "relay-token", slog.New(slog.DiscardHandler))

	sink.Show(context.Background(), "u1", "Important appointment!", "Dentist starts at 09:10.")

	if got["topic"] != "u1-topic" || got["title"] != "Important appointment!" {
		t.Fatalf("unexpected payload: %v", got)
	}
	if auth != "Bearer relay-token" {
		t.Fatalf("unexpected auth header: %q", auth)
	}
}

func TestWebhookSink_Granted(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	sink := NewWebhookSink(&fakePrefs{p: model.Preferences{PushEnabled: true, PushTopic: "t"}}, "http://relay", "", logger)
	if !sink.Granted(context.Background(), "u1") {
		t.Fatal("expected granted")
	}

	sink = NewWebhookSink(&fakePrefs{p: model.Preferences{PushEnabled: false, PushTopic: "t"}}, "http://relay", "", logger)
	if sink.Granted(context.Background(), "u1") {
		t.Fatal("push disabled: expected not granted")
	}

	sink = NewWebhookSink(&fakePrefs{p: model.Preferences{PushEnabled: true}}, "http://relay", "", logger)
	if sink.Granted(context.Background(), "u1") {
		t.Fatal("no topic: expected not granted")
	}
}

func TestWebhookSink_ShowSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	prefs := &fakePrefs{p: model.Preferences{PushEnabled: true, PushTopic: "t"}}
	sink := NewWebhookSink(prefs, srv.URL, "", slog.New(slog.DiscardHandler))

	// Must not panic or propagate anything.
	sink.Show(context.Background(), "u1", "title", "body")
}
