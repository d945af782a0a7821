// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the PDF fetcher. All knobs are explicit so
// tests can construct isolated fetchers without process-wide state.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// HeadTimeout is the timeout for the lightweight existence check
	// issued before the full download (default 10s).
	HeadTimeout time.Duration `json:"head_timeout" yaml:"head_timeout"`

	// ChunkSize is the buffer size for streaming the response body to
	// disk (default 8192 bytes).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// DownloadDir is the directory downloaded PDFs are written into.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`
}

// AgentConfig holds shared settings for roles that call a chat-completions API.
type AgentConfig struct {
	// Model is the chat model identifier (e.g. "gpt-4").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint. Empty means the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Temperature is the sampling temperature (the roles use 0 for
	// reproducible URL lists).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Seed pins provider-side sampling when the API supports it.
	Seed int `json:"seed" yaml:"seed"`

	// MaxRetries is the number of retry attempts for rate-limited API
	// calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxRounds limits the research/download relay to prevent runaway
	// conversations (default 3).
	MaxRounds int `json:"max_rounds" yaml:"max_rounds"`
}

// SessionConfig holds settings for session persistence.
type SessionConfig struct {
	// DataDir is the directory holding the session database and
	// transcript exports (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Agent   AgentConfig   `json:"agent" yaml:"agent"`
	Session SessionConfig `json:"session" yaml:"session"`
}
