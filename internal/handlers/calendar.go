package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/companion/internal/calendar"
)

func (h *Handler) CalendarLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := UserIDFromContext(r.Context())
	id := r.PathValue("id")

	appts, err := h.appts.Read(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load appointments", http.StatusInternalServerError)
		return
	}
	for _, a := range appts {
		if a.ID != id {
			continue
		}
		link, err := calendar.GoogleLink(a, strings.TrimSpace(r.URL.Query().Get("details")))
		if err != nil {
			http.Error(w, "appointment has malformed times", http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": link})
		return
	}
	http.Error(w, "appointment not found", http.StatusNotFound)
}

func (h *Handler) CalendarICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	appts, err := h.appts.Read(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "failed to load appointments", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="companion.ics"`)
	_, _ = w.Write([]byte(calendar.ExportICS(appts)))
}
