package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/md-rashed-zaman/companion/internal/ai"
	"github.com/md-rashed-zaman/companion/internal/quotes"
	"github.com/md-rashed-zaman/companion/libs/auth"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	return New(
		nil, nil, nil, nil,
		ai.NewPrioritizeClient(""),
		ai.NewChatClient("", ""),
		quotes.NewFeed("", logger),
		logger,
		Config{JWTSecret: testSecret},
	)
}

func signTestToken(t *testing.T, sub string) string {
	t.Helper()
	now := time.Now()
	token, err := auth.SignHS256(auth.Claims{
		Sub: sub,
		Iat: now.Unix(),
		Exp: now.Add(time.Hour).Unix(),
	}, testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestRequireAuth_MissingToken(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)

	h.requireAuth(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	h.requireAuth(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	h := newTestHandler(t)
	now := time.Now()
	token, err := auth.SignHS256(auth.Claims{
		Sub: "u1",
		Iat: now.Unix(),
		Exp: now.Add(time.Hour).Unix(),
	}, "other-secret")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	h.requireAuth(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_ValidTokenCarriesUserID(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "user-42"))

	h.requireAuth(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["user_id"] != "user-42" {
		t.Errorf("user_id = %q, want %q", body["user_id"], "user-42")
	}
}

func TestAppointmentRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  appointmentRequest
		want string
	}{
		{
			name: "valid",
			req:  appointmentRequest{Title: "Dentist", Date: "2026-09-01", StartTime: "09:30"},
			want: "",
		},
		{
			name: "valid with end time",
			req:  appointmentRequest{Title: "Dentist", Date: "2026-09-01", StartTime: "09:30", EndTime: "10:00"},
			want: "",
		},
		{
			name: "trims whitespace",
			req:  appointmentRequest{Title: "  Dentist  ", Date: " 2026-09-01 ", StartTime: " 09:30 "},
			want: "",
		},
		{
			name: "missing title",
			req:  appointmentRequest{Date: "2026-09-01", StartTime: "09:30"},
			want: "title is required",
		},
		{
			name: "bad date",
			req:  appointmentRequest{Title: "Dentist", Date: "01/09/2026", StartTime: "09:30"},
			want: "date must be YYYY-MM-DD",
		},
		{
			name: "bad start time",
			req:  appointmentRequest{Title: "Dentist", Date: "2026-09-01", StartTime: "9:30am"},
			want: "start_time must be HH:MM",
		},
		{
			name: "bad end time",
			req:  appointmentRequest{Title: "Dentist", Date: "2026-09-01", StartTime: "09:30", EndTime: "later"},
			want: "end_time must be HH:MM",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.validate(); got != tt.want {
				t.Errorf("validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  taskRequest
		want string
	}{
		{
			name: "valid",
			req:  taskRequest{Title: "Buy groceries"},
			want: "",
		},
		{
			name: "valid with due",
			req:  taskRequest{Title: "Buy groceries", Due: "2026-09-01T10:00:00Z"},
			want: "",
		},
		{
			name: "missing title",
			req:  taskRequest{},
			want: "title is required",
		},
		{
			name: "bad due",
			req:  taskRequest{Title: "Buy groceries", Due: "tomorrow"},
			want: "due must be RFC 3339",
		},
		{
			name: "negative estimate",
			req:  taskRequest{Title: "Buy groceries", EstimatedMinutes: -5},
			want: "estimated_minutes must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.validate(); got != tt.want {
				t.Errorf("validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodGet, "/v1/quote", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("quote status = %d, want %d", rec.Code, http.StatusOK)
	}
	var single map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&single); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if single["quote"] == "" {
		t.Error("quote of the day is empty")
	}

	rec = httptest.NewRecorder()
	h.Quotes(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("quotes status = %d, want %d", rec.Code, http.StatusOK)
	}
	var list []string
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode quotes: %v", err)
	}
	if len(list) == 0 {
		t.Error("quote list is empty")
	}
}

func TestPrioritize_NotConfigured(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ai/prioritize", strings.NewReader("{}"))

	h.Prioritize(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestChat_EmptyPrompt(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ai/chat", strings.NewReader(`{"prompt":"  "}`))

	h.Chat(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPositiveIntParam(t *testing.T) {
	if n, err := positiveIntParam("", 30); err != nil || n != 30 {
		t.Errorf("empty: got (%d, %v), want (30, nil)", n, err)
	}
	if n, err := positiveIntParam("45", 30); err != nil || n != 45 {
		t.Errorf("45: got (%d, %v), want (45, nil)", n, err)
	}
	if _, err := positiveIntParam("0", 30); err == nil {
		t.Error("0: expected error")
	}
	if _, err := positiveIntParam("abc", 30); err == nil {
		t.Error("abc: expected error")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := verifyPassword(hash, "hunter2"); err != nil {
		t.Errorf("verify correct password: %v", err)
	}
	if err := verifyPassword(hash, "hunter3"); err == nil {
		t.Error("verify wrong password: expected error")
	}
}
