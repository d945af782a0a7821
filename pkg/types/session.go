// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DownloadOutcome pairs a requested URL with its fetch result so session
// records stay meaningful after the transcript is gone.
type DownloadOutcome struct {
	URL    string         `json:"url" yaml:"url"`
	Result DownloadResult `json:"result" yaml:"result"`
}

// Session is the record of one research/download run: the topic, the full
// message transcript, and every download attempted.
type Session struct {
	// ID is a UUID assigned when the session starts.
	ID string `json:"id" yaml:"id"`

	// Topic is the research topic the session was started with.
	Topic string `json:"topic" yaml:"topic"`

	// StartedAt is when the coordinator began the relay.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Rounds is the number of relay rounds actually run.
	Rounds int `json:"rounds" yaml:"rounds"`

	// Messages is the transcript in order.
	Messages []Message `json:"messages" yaml:"messages"`

	// Downloads lists every fetch attempted during the session.
	Downloads []DownloadOutcome `json:"downloads" yaml:"downloads"`
}

// Attempted returns the number of downloads attempted.
func (s Session) Attempted() int {
	return len(s.Downloads)
}

// Succeeded returns the number of successful downloads.
func (s Session) Succeeded() int {
	n := 0
	for _, d := range s.Downloads {
		if d.Result.OK() {
			n++
		}
	}
	return n
}
