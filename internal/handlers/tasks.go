package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/companion/internal/model"
	"github.com/md-rashed-zaman/companion/internal/store"
)

type taskRequest struct {
	Title            string `json:"title"`
	Done             *bool  `json:"done"`
	Due              string `json:"due"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

func (req *taskRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	req.Due = strings.TrimSpace(req.Due)
	if req.Title == "" {
		return "title is required"
	}
	if req.Due != "" {
		if _, err := time.Parse(time.RFC3339, req.Due); err != nil {
			return "due must be RFC 3339"
		}
	}
	if req.EstimatedMinutes < 0 {
		return "estimated_minutes must not be negative"
	}
	return ""
}

func (h *Handler) readTasks(r *http.Request) ([]model.Task, error) {
	var tasks []model.Task
	if _, err := h.docs.Read(r.Context(), UserIDFromContext(r.Context()), store.DocTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	switch r.Method {
	case http.MethodGet:
		tasks, err := h.readTasks(r)
		if err != nil {
			http.Error(w, "failed to load tasks", http.StatusInternalServerError)
			return
		}
		if tasks == nil {
			tasks = []model.Task{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tasks)

	case http.MethodPost:
		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if msg := req.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		tasks, err := h.readTasks(r)
		if err != nil {
			http.Error(w, "failed to load tasks", http.StatusInternalServerError)
			return
		}
		task := model.Task{
			ID:               uuid.NewString(),
			Title:            req.Title,
			Due:              req.Due,
			EstimatedMinutes: req.EstimatedMinutes,
			CreatedAt:        time.Now().UTC(),
		}
		if err := h.docs.Write(r.Context(), userID, store.DocTasks, append(tasks, task)); err != nil {
			http.Error(w, "failed to save task", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(task)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) TaskByID(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	id := r.PathValue("id")

	tasks, err := h.readTasks(r)
	if err != nil {
		http.Error(w, "failed to load tasks", http.StatusInternalServerError)
		return
	}
	idx := -1
	for i, t := range tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if msg := req.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		tasks[idx].Title = req.Title
		tasks[idx].Due = req.Due
		tasks[idx].EstimatedMinutes = req.EstimatedMinutes
		if req.Done != nil {
			tasks[idx].Done = *req.Done
		}
		if err := h.docs.Write(r.Context(), userID, store.DocTasks, tasks); err != nil {
			http.Error(w, "failed to save task", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tasks[idx])

	case http.MethodDelete:
		if err := h.docs.Write(r.Context(), userID, store.DocTasks, append(tasks[:idx], tasks[idx+1:]...)); err != nil {
			http.Error(w, "failed to delete task", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
