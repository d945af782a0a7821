// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

// BatchResult holds the outcome of a sequential batch of fetches.
type BatchResult struct {
	Succeeded int
	Failed    int
	Outcomes  []types.DownloadOutcome
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any fetch failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchBatch downloads each URL in order, printing per-item status lines
// and a summary to w. Each URL is independent: one failure never stops the
// rest of the batch.
func (f *Fetcher) FetchBatch(urls []string, targetDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, u := range urls {
		res := f.Fetch(types.DownloadRequest{URL: u, TargetDir: targetDir})
		if res.OK() {
			fmt.Fprintf(w, "ok:      %s\n", res.Message)
			result.Succeeded++
		} else {
			fmt.Fprintf(w, "failed:  %s (%s)\n", u, res.Message)
			result.Failed++
		}
		result.Outcomes = append(result.Outcomes, types.DownloadOutcome{URL: u, Result: res})
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d failed (total: %d)\n",
		result.Succeeded, result.Failed, result.Total())
	return result
}
