package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/companion/internal/model"
)

type appointmentRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

func (req *appointmentRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	req.Location = strings.TrimSpace(req.Location)

	if req.Title == "" {
		return "title is required"
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		return "start_time must be HH:MM"
	}
	if req.EndTime != "" {
		if _, err := time.Parse("15:04", req.EndTime); err != nil {
			return "end_time must be HH:MM"
		}
	}
	return ""
}

func (h *Handler) Appointments(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	switch r.Method {
	case http.MethodGet:
		appts, err := h.appts.Read(r.Context(), userID)
		if err != nil {
			http.Error(w, "failed to load appointments", http.StatusInternalServerError)
			return
		}
		if appts == nil {
			appts = []model.Appointment{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(appts)

	case http.MethodPost:
		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if msg := req.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		appts, err := h.appts.Read(r.Context(), userID)
		if err != nil {
			http.Error(w, "failed to load appointments", http.StatusInternalServerError)
			return
		}
		appt := model.Appointment{
			ID:        uuid.NewString(),
			Title:     req.Title,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Location:  req.Location,
			Notified:  false,
		}
		if err := h.appts.WriteAll(r.Context(), userID, append(appts, appt)); err != nil {
			http.Error(w, "failed to save appointment", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(appt)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) AppointmentByID(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	id := r.PathValue("id")

	appts, err := h.appts.Read(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load appointments", http.StatusInternalServerError)
		return
	}
	idx := -1
	for i, a := range appts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(appts[idx])

	case http.MethodPut:
		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if msg := req.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		prev := appts[idx]
		next := model.Appointment{
			ID:        prev.ID,
			Title:     req.Title,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Location:  req.Location,
			Notified:  prev.Notified,
		}
		// Rescheduling re-arms the reminder.
		if next.Date != prev.Date || next.StartTime != prev.StartTime {
			next.Notified = false
		}
		appts[idx] = next
		if err := h.appts.WriteAll(r.Context(), userID, appts); err != nil {
			http.Error(w, "failed to save appointment", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(next)

	case http.MethodDelete:
		if err := h.appts.WriteAll(r.Context(), userID, append(appts[:idx], appts[idx+1:]...)); err != nil {
			http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
