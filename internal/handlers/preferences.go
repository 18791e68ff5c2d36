package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/companion/internal/model"
	"github.com/md-rashed-zaman/companion/internal/store"
)

func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	switch r.Method {
	case http.MethodGet:
		prefs, err := h.docs.Preferences(r.Context(), userID)
		if err != nil {
			http.Error(w, "failed to load preferences", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(prefs)

	case http.MethodPut:
		var prefs model.Preferences
		if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		prefs.PushTopic = strings.TrimSpace(prefs.PushTopic)
		prefs.Timezone = strings.TrimSpace(prefs.Timezone)
		if prefs.PushEnabled && prefs.PushTopic == "" {
			http.Error(w, "push_topic required when push is enabled", http.StatusBadRequest)
			return
		}
		if prefs.Timezone != "" {
			if _, err := time.LoadLocation(prefs.Timezone); err != nil {
				http.Error(w, "invalid timezone", http.StatusBadRequest)
				return
			}
		}
		if err := h.docs.Write(r.Context(), userID, store.DocPreferences, prefs); err != nil {
			http.Error(w, "failed to save preferences", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
