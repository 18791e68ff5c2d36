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

// ChatClient proxies prompts to a chat-completion API. The credential lives
// server-side only and is never echoed to clients.
type ChatClient struct {
	url  string
	key  string
	http *http.Client
}

func NewChatClient(url, key string) *ChatClient {
	return &ChatClient{
		url: strings.TrimSpace(url),
		key: strings.TrimSpace(key),
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *ChatClient) Enabled() bool { return c.url != "" && c.key != "" }

func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("chat completion not configured")
	}
	raw, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat completion returned %d", resp.StatusCode)
	}

	var out struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", errors.New(out.Error)
	}
	if out.Message == "" {
		return "", errors.New("empty completion")
	}
	return out.Message, nil
}
