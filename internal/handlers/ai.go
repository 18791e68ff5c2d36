package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/companion/internal/ai"
)

func (h *Handler) Prioritize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.prioritize.Enabled() {
		http.Error(w, "prioritization not available", http.StatusServiceUnavailable)
		return
	}

	tasks, err := h.readTasks(r)
	if err != nil {
		http.Error(w, "failed to load tasks", http.StatusInternalServerError)
		return
	}

	var inputs []ai.TaskInput
	for _, t := range tasks {
		if t.Done {
			continue
		}
		inputs = append(inputs, ai.TaskInput{
			ID:               t.ID,
			Title:            t.Title,
			Due:              t.Due,
			EstimatedMinutes: t.EstimatedMinutes,
		})
	}
	if len(inputs) == 0 {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"suggestions": []ai.Suggestion{}})
		return
	}

	suggestions, err := h.prioritize.Prioritize(r.Context(), inputs)
	if err != nil {
		h.logger.Error("prioritization failed", "err", err)
		http.Error(w, "prioritization failed", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"suggestions": suggestions})
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	message, err := h.chat.Complete(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("chat completion failed", "err", err)
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "assistant unavailable"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
