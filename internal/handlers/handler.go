package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/companion/internal/ai"
	"github.com/md-rashed-zaman/companion/internal/events"
	"github.com/md-rashed-zaman/companion/internal/quotes"
	"github.com/md-rashed-zaman/companion/internal/store"
)

// Handler bundles the API surface of companiond.
type Handler struct {
	users      *store.UserRepository
	appts      *store.AppointmentStore
	docs       *store.DocStore
	metrics    *events.Metrics
	prioritize *ai.PrioritizeClient
	chat       *ai.ChatClient
	feed       *quotes.Feed
	logger     *slog.Logger
	jwtSecret  string
	tokenTTL   time.Duration
}

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func New(
	users *store.UserRepository,
	appts *store.AppointmentStore,
	docs *store.DocStore,
	metrics *events.Metrics,
	prioritize *ai.PrioritizeClient,
	chat *ai.ChatClient,
	feed *quotes.Feed,
	logger *slog.Logger,
	cfg Config,
) *Handler {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &Handler{
		users:      users,
		appts:      appts,
		docs:       docs,
		metrics:    metrics,
		prioritize: prioritize,
		chat:       chat,
		feed:       feed,
		logger:     logger,
		jwtSecret:  cfg.JWTSecret,
		tokenTTL:   cfg.TokenTTL,
	}
}

// Register mounts all routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/auth/register", h.RegisterUser)
	mux.HandleFunc("/v1/auth/login", h.Login)

	authed := func(fn http.HandlerFunc) http.Handler { return h.requireAuth(fn) }

	mux.Handle("/v1/me", authed(h.Me))
	mux.Handle("/v1/appointments", authed(h.Appointments))
	mux.Handle("/v1/appointments/{id}", authed(h.AppointmentByID))
	mux.Handle("/v1/appointments/{id}/calendar-link", authed(h.CalendarLink))
	mux.Handle("/v1/calendar.ics", authed(h.CalendarICS))
	mux.Handle("/v1/tasks", authed(h.Tasks))
	mux.Handle("/v1/tasks/{id}", authed(h.TaskByID))
	mux.Handle("/v1/notes", authed(h.docHandler(store.DocNotes, h.emptyNotes)))
	mux.Handle("/v1/ledger", authed(h.docHandler(store.DocLedger, h.emptyLedger)))
	mux.Handle("/v1/journal", authed(h.docHandler(store.DocJournal, h.emptyJournal)))
	mux.Handle("/v1/preferences", authed(h.Preferences))
	mux.Handle("/v1/ai/prioritize", authed(h.Prioritize))
	mux.Handle("/v1/ai/chat", authed(h.Chat))
	mux.Handle("/v1/planner/slots", authed(h.PlannerSlots))
	mux.Handle("/v1/stats/reminders", authed(h.ReminderStats))

	mux.HandleFunc("/v1/quote", h.Quote)
	mux.HandleFunc("/v1/quotes", h.Quotes)
}
