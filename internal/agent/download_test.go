// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"numbered list",
			"1. Paper One\nhttps://example.org/a.pdf\n2. Paper Two\nhttps://example.org/b.pdf",
			[]string{"https://example.org/a.pdf", "https://example.org/b.pdf"},
		},
		{
			"trailing punctuation trimmed",
			"See https://example.org/a.pdf, and https://example.org/b.pdf.",
			[]string{"https://example.org/a.pdf", "https://example.org/b.pdf"},
		},
		{
			"duplicates removed",
			"https://example.org/a.pdf then https://example.org/a.pdf again",
			[]string{"https://example.org/a.pdf"},
		},
		{
			"query strings kept",
			"download via https://example.org/view?id=123&dl=1",
			[]string{"https://example.org/view?id=123&dl=1"},
		},
		{"no urls", "no links here", nil},
		{"http scheme", "http://example.org/a.pdf", []string{"http://example.org/a.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractURLs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractURLs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// drive runs the role until it yields a message, answering every function
// call with a canned result and recording the requested URLs.
func drive(t *testing.T, role Role, transcript []types.Message) (types.Message, []string) {
	t.Helper()
	var urls []string
	var pending *types.FunctionResult
	for i := 0; i < 20; i++ {
		turn, err := role.Respond(context.Background(), transcript, pending)
		if err != nil {
			t.Fatalf("Respond: %v", err)
		}
		pending = nil
		if turn.Call != nil {
			if turn.Call.Name != DownloadFunc {
				t.Fatalf("Call.Name = %q, want %q", turn.Call.Name, DownloadFunc)
			}
			u := turn.Call.Args["url"]
			urls = append(urls, u)
			pending = &types.FunctionResult{
				Name:    turn.Call.Name,
				Content: fmt.Sprintf("Successfully downloaded to x.pdf (10 bytes) [%s]", u),
			}
			continue
		}
		return *turn.Message, urls
	}
	t.Fatal("role never produced a message")
	return types.Message{}, nil
}

func TestDownloadRoleDownloadsEachURL(t *testing.T) {
	role := NewDownloadRole("pdf_downloads")
	transcript := []types.Message{
		{Role: "user", Name: "user_proxy", Content: "find PDFs about X"},
		{Role: "assistant", Name: "research_agent", Content: "1. A - https://example.org/a.pdf\n2. B - https://example.org/b.pdf"},
	}

	msg, urls := drive(t, role, transcript)

	want := []string{"https://example.org/a.pdf", "https://example.org/b.pdf"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("requested URLs = %v, want %v", urls, want)
	}
	if msg.Name != "download_agent" {
		t.Errorf("Name = %q, want download_agent", msg.Name)
	}
	if !strings.Contains(msg.Content, "URL: https://example.org/a.pdf") {
		t.Errorf("report missing first URL:\n%s", msg.Content)
	}
	if !strings.Contains(msg.Content, "Result: Successfully downloaded") {
		t.Errorf("report missing results:\n%s", msg.Content)
	}
	if !strings.Contains(msg.Content, "Final Summary: 2 downloads attempted") {
		t.Errorf("report missing summary:\n%s", msg.Content)
	}
}

func TestDownloadRoleSetsSaveDir(t *testing.T) {
	role := NewDownloadRole("some/dir")
	transcript := []types.Message{
		{Role: "assistant", Name: "research_agent", Content: "https://example.org/a.pdf"},
	}
	turn, err := role.Respond(context.Background(), transcript, nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if turn.Call == nil {
		t.Fatal("expected a function call")
	}
	if turn.Call.Args["save_dir"] != "some/dir" {
		t.Errorf("save_dir = %q, want %q", turn.Call.Args["save_dir"], "some/dir")
	}
}

func TestDownloadRoleNoURLs(t *testing.T) {
	role := NewDownloadRole("pdf_downloads")
	transcript := []types.Message{
		{Role: "assistant", Name: "research_agent", Content: "I could not find any PDFs."},
	}

	msg, urls := drive(t, role, transcript)
	if len(urls) != 0 {
		t.Errorf("requested URLs = %v, want none", urls)
	}
	if !strings.Contains(msg.Content, "Final Summary: 0 downloads attempted") {
		t.Errorf("summary = %q, want 0 attempts", msg.Content)
	}
}

func TestDownloadRoleIgnoresRepeatedURLs(t *testing.T) {
	role := NewDownloadRole("pdf_downloads")
	first := []types.Message{
		{Role: "assistant", Name: "research_agent", Content: "https://example.org/a.pdf"},
	}
	_, urls := drive(t, role, first)
	if len(urls) != 1 {
		t.Fatalf("first batch requested %v, want one URL", urls)
	}

	// A later research message repeating the same URL yields no new calls.
	second := append(first,
		types.Message{Role: "assistant", Name: "download_agent", Content: "Final Summary: 1 downloads attempted"},
		types.Message{Role: "assistant", Name: "research_agent", Content: "https://example.org/a.pdf again"},
	)
	msg, urls := drive(t, role, second)
	if len(urls) != 0 {
		t.Errorf("second batch requested %v, want none", urls)
	}
	if !strings.Contains(msg.Content, "Final Summary: 0 downloads attempted") {
		t.Errorf("second summary = %q, want 0 attempts", msg.Content)
	}
}

func TestDownloadRoleIgnoresNonResearchMessages(t *testing.T) {
	role := NewDownloadRole("pdf_downloads")
	transcript := []types.Message{
		{Role: "user", Name: "user_proxy", Content: "see https://example.org/from-user.pdf"},
	}
	msg, urls := drive(t, role, transcript)
	if len(urls) != 0 {
		t.Errorf("requested URLs = %v, want none (only research messages are scanned)", urls)
	}
	if !strings.Contains(msg.Content, "Final Summary: 0 downloads attempted") {
		t.Errorf("summary = %q", msg.Content)
	}
}
