package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrioritize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tasks []TaskInput `json:"tasks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Tasks) != 2 {
			t.Errorf("unexpected request: %+v err=%v", req, err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"suggestions": []Suggestion{
				{TaskID: "t1", Title: "Write report", Reason: "due soonest", SuggestedStart: "09:00", SuggestedMinutes: 60},
			},
		})
	}))
	defer srv.Close()

	c := NewPrioritizeClient(srv.URL)
	got, err := c.Prioritize(context.Background(), []TaskInput{
		{ID: "t1", Title: "Write report", Due: "2024-06-01T17:00:00Z"},
		{ID: "t2", Title: "Buy milk"},
	})
	if err != nil {
		t.Fatalf("Prioritize failed: %v", err)
	}
	if len(got) != 1 || got[0].TaskID != "t1" || got[0].SuggestedMinutes != 60 {
		t.Fatalf("unexpected suggestions: %+v", got)
	}
}

func TestPrioritize_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))
	defer srv.Close()

	c := NewPrioritizeClient(srv.URL)
	if _, err := c.Prioritize(context.Background(), nil); err == nil || err.Error() != "model overloaded" {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestChatComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-key" {
			t.Errorf("missing credential header")
		}
		var req struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Prompt != "plan my day" {
			t.Errorf("unexpected prompt %q", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "start with the report"})
	}))
	defer srv.Close()

	c := NewChatClient(srv.URL, "secret-key")
	msg, err := c.Complete(context.Background(), "plan my day")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if msg != "start with the report" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestChatComplete_Unconfigured(t *testing.T) {
	c := NewChatClient("", "")
	if c.Enabled() {
		t.Fatal("empty client must be disabled")
	}
	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Fatal("expected error when unconfigured")
	}
}
