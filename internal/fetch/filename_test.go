// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"testing"
)

// hashed returns the fallback name DeriveFilename is documented to produce.
func hashed(rawURL string) string {
	sum := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:10] + ".pdf"
}

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain pdf", "https://example.org/papers/report.pdf", "report.pdf"},
		{"query stripped", "https://example.org/papers/report.pdf?dl=1", "report.pdf"},
		{"uppercase extension", "https://example.org/REPORT.PDF", "REPORT.PDF"},
		{"no extension", "https://example.org/view?id=123", hashed("https://example.org/view?id=123")},
		{"html page", "https://example.org/papers/index.html", hashed("https://example.org/papers/index.html")},
		{"trailing slash", "https://example.org/papers/", hashed("https://example.org/papers/")},
		{"bare host", "https://example.org", hashed("https://example.org")},
		{"unsafe characters dropped", "https://example.org/my paper (v2).pdf", "mypaperv2.pdf"},
		{"allowed punctuation kept", "https://example.org/my-paper_v2.final.pdf", "my-paper_v2.final.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveFilename(tt.url)
			if got != tt.want {
				t.Errorf("DeriveFilename(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDeriveFilenameDeterministic(t *testing.T) {
	url := "https://example.org/view?id=123"
	first := DeriveFilename(url)
	for i := 0; i < 3; i++ {
		if got := DeriveFilename(url); got != first {
			t.Fatalf("DeriveFilename(%q) changed between calls: %q then %q", url, first, got)
		}
	}
	if len(first) != len("0123456789.pdf") {
		t.Errorf("fallback name %q should be 10 hex characters plus .pdf", first)
	}
}

var safeNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+\.pdf$`)

func TestDeriveFilenameCharacterSet(t *testing.T) {
	urls := []string{
		"https://example.org/papers/report.pdf",
		"https://example.org/a b/c%20d/weird!@#$.pdf",
		"https://example.org/view?id=123",
		"https://example.org/../../etc/passwd",
		"ftp://example.org/file.pdf?x=../../y",
		"",
	}
	for _, u := range urls {
		got := DeriveFilename(u)
		if !safeNamePattern.MatchString(got) {
			t.Errorf("DeriveFilename(%q) = %q, contains characters outside [A-Za-z0-9._-] or lacks .pdf", u, got)
		}
	}
}
