// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openai implements a minimal chat-completions client for
// OpenAI-compatible APIs. Only the pieces the roles need are modeled:
// non-streaming completions with deterministic sampling settings.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/pdf-finder/internal/httputil"
	"github.com/pdiddy/pdf-finder/pkg/types"
)

// DefaultBaseURL is the OpenAI API endpoint. Config can point it at any
// compatible provider or an httptest server.
const DefaultBaseURL = "https://api.openai.com/v1"

// requestTimeout bounds one completion call end to end.
const requestTimeout = 120 * time.Second

// Client calls a chat-completions API with fixed model and sampling
// settings. It satisfies the roles' backend interface.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	temp       float64
	seed       int
	maxRetries int
	http       *http.Client
}

// NewClient builds a Client from agent configuration. An empty BaseURL
// selects the OpenAI endpoint.
func NewClient(cfg types.AgentConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		temp:       cfg.Temperature,
		seed:       cfg.Seed,
		maxRetries: cfg.MaxRetries,
		http:       &http.Client{Timeout: requestTimeout},
	}
}

// Chat API types (OpenAI-compatible).

type chatMessage struct {
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Seed        int           `json:"seed,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason"`
	Message      chatMessage `json:"message"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Complete sends the transcript to the chat API and returns the assistant's
// reply. Rate-limited calls are retried with backoff before failing.
func (c *Client) Complete(ctx context.Context, messages []types.Message) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: c.temp,
		Seed:        c.seed,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{
			Role:    m.Role,
			Name:    m.Name,
			Content: m.Content,
		})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return "", fmt.Errorf("chat API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat API returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("parsing chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
