// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

// DownloadFunc is the function-call name the download role requests for
// each URL. The coordinator maps it to the fetcher.
const DownloadFunc = "download_pdf"

// urlPattern matches http(s) URLs inside free-form research text.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// DownloadRole turns research messages into download_pdf function calls,
// one per URL, and reports each result verbatim. It carries state across
// its turns within a session: which transcript messages it has already
// scanned, which URLs it has seen, and the reports for the current batch.
type DownloadRole struct {
	targetDir string

	scanned  int             // transcript messages already parsed for URLs
	seen     map[string]bool // URLs requested at any point in the session
	queue    []string        // URLs awaiting a function call
	current  string          // URL whose result is pending
	reports  []string        // per-URL report lines for the current batch
	attempts int             // downloads attempted in the current batch
}

// NewDownloadRole returns a download role that saves into targetDir.
func NewDownloadRole(targetDir string) *DownloadRole {
	return &DownloadRole{
		targetDir: targetDir,
		seen:      make(map[string]bool),
	}
}

// Name implements Role.
func (d *DownloadRole) Name() string { return "download_agent" }

// Respond folds a pending download result into the batch report, then
// either requests the next download or, when the batch is drained, emits
// the report message ending in the batch summary.
func (d *DownloadRole) Respond(_ context.Context, transcript []types.Message, pending *types.FunctionResult) (Turn, error) {
	if pending != nil {
		d.reports = append(d.reports, fmt.Sprintf("URL: %s\nResult: %s", d.current, pending.Content))
		d.current = ""
	}

	if len(d.queue) == 0 {
		d.scanTranscript(transcript)
	}

	if len(d.queue) > 0 {
		u := d.queue[0]
		d.queue = d.queue[1:]
		d.current = u
		d.attempts++
		return Turn{Call: &types.FunctionCall{
			Name: DownloadFunc,
			Args: map[string]string{"url": u, "save_dir": d.targetDir},
		}}, nil
	}

	var b strings.Builder
	for _, r := range d.reports {
		b.WriteString(r)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Final Summary: %d downloads attempted", d.attempts)

	msg := &types.Message{Role: "assistant", Name: d.Name(), Content: b.String()}
	d.reports = nil
	d.attempts = 0
	return Turn{Message: msg}, nil
}

// scanTranscript queues URLs from research messages not yet parsed,
// skipping any URL already requested this session.
func (d *DownloadRole) scanTranscript(transcript []types.Message) {
	for ; d.scanned < len(transcript); d.scanned++ {
		m := transcript[d.scanned]
		if m.Name != "research_agent" {
			continue
		}
		for _, u := range ExtractURLs(m.Content) {
			if d.seen[u] {
				continue
			}
			d.seen[u] = true
			d.queue = append(d.queue, u)
		}
	}
}

// ExtractURLs finds http(s) URLs in text, trimming trailing punctuation and
// deduplicating while preserving order.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	var urls []string
	seen := make(map[string]bool)
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:!?")
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}
	return urls
}
