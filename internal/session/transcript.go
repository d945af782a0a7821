// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

const transcriptsDir = "transcripts"

// WriteTranscript exports a session as YAML under dataDir/transcripts/,
// named by session ID. The export is a human-readable companion to the
// database record.
func WriteTranscript(session *types.Session, dataDir string) (string, error) {
	dir := filepath.Join(dataDir, transcriptsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating transcripts directory: %w", err)
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshaling transcript: %w", err)
	}

	path := filepath.Join(dir, session.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing transcript: %w", err)
	}
	return path, nil
}

// ReadTranscript loads a YAML transcript export back into a session record.
func ReadTranscript(path string) (*types.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var session types.Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing transcript %s: %w", path, err)
	}
	return &session, nil
}
