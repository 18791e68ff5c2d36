package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TaskInput is what the prioritization service sees per task.
type TaskInput struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Due              string `json:"due,omitempty"`
	EstimatedMinutes int    `json:"estimated_minutes,omitempty"`
}

type Suggestion struct {
	TaskID           string `json:"task_id"`
	Title            string `json:"title"`
	Reason           string `json:"reason"`
	SuggestedStart   string `json:"suggested_start"`
	SuggestedMinutes int    `json:"suggested_minutes"`
}

// PrioritizeClient calls the task-prioritization service. The service is
// opaque; failures carry a generic message and are not retried.
type PrioritizeClient struct {
	url  string
	http *http.Client
}

func NewPrioritizeClient(url string) *PrioritizeClient {
	return &PrioritizeClient{
		url: strings.TrimSpace(url),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *PrioritizeClient) Enabled() bool { return c.url != "" }

func (c *PrioritizeClient) Prioritize(ctx context.Context, tasks []TaskInput) ([]Suggestion, error) {
	if c.url == "" {
		return nil, errors.New("prioritization service not configured")
	}
	raw, err := json.Marshal(map[string]any{"tasks": tasks})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("prioritization service returned %d", resp.StatusCode)
	}

	var out struct {
		Suggestions []Suggestion `json:"suggestions"`
		Error       string       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, errors.New(out.Error)
	}
	return out.Suggestions, nil
}
