package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/md-rashed-zaman/companion/internal/planner"
)

func (h *Handler) PlannerSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	from := strings.TrimSpace(q.Get("from"))
	if from == "" {
		from = "08:00"
	}
	to := strings.TrimSpace(q.Get("to"))
	if to == "" {
		to = "20:00"
	}
	duration, err := positiveIntParam(q.Get("duration"), 30)
	if err != nil {
		http.Error(w, "duration must be a positive integer", http.StatusBadRequest)
		return
	}
	step, err := positiveIntParam(q.Get("step"), 30)
	if err != nil {
		http.Error(w, "step must be a positive integer", http.StatusBadRequest)
		return
	}

	appts, err := h.appts.Read(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "failed to load appointments", http.StatusInternalServerError)
		return
	}

	slots, err := planner.OpenSlots(date, appts, from, to, duration, step, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"date":  date,
		"slots": slots,
	})
}

func positiveIntParam(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
