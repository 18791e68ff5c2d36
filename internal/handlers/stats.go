package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

func (h *Handler) ReminderStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := UserIDFromContext(r.Context())

	today, err := h.metrics.FiredToday(r.Context(), userID, time.Now())
	if err != nil {
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}
	total, err := h.metrics.FiredTotal(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{
		"today": today,
		"total": total,
	})
}
