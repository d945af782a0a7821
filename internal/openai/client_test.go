// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-finder/internal/httputil"
	"github.com/pdiddy/pdf-finder/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testAgentConfig(baseURL string) types.AgentConfig {
	return types.AgentConfig{
		Model:      "gpt-4",
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Seed:       42,
		MaxRetries: 2,
	}
}

func TestComplete(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"id":"cmpl-1","model":"gpt-4","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"1. Paper One - https://example.org/a.pdf"}}]}`)
	}))
	defer ts.Close()

	c := NewClient(testAgentConfig(ts.URL))
	reply, err := c.Complete(context.Background(), []types.Message{
		{Role: "system", Content: "You find PDFs."},
		{Role: "user", Content: "topic: ml in healthcare"},
	})
	require.NoError(t, err)

	assert.Equal(t, "1. Paper One - https://example.org/a.pdf", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4", gotReq.Model)
	assert.Equal(t, 42, gotReq.Seed)
	assert.Zero(t, gotReq.Temperature)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestCompleteRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer ts.Close()

	c := NewClient(testAgentConfig(ts.URL))
	reply, err := c.Complete(context.Background(), []types.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCompleteAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key"}}`)
	}))
	defer ts.Close()

	c := NewClient(testAgentConfig(ts.URL))
	_, err := c.Complete(context.Background(), []types.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "bad key")
}

func TestCompleteNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer ts.Close()

	c := NewClient(testAgentConfig(ts.URL))
	_, err := c.Complete(context.Background(), []types.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
