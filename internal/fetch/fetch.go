// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch verifies candidate PDF URLs, streams them to disk, and
// reports structured outcomes. Failures never surface as errors: every
// attempt produces a DownloadResult whose message can be relayed verbatim.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

const (
	defaultHeadTimeout = 10 * time.Second
	defaultTimeout     = 30 * time.Second
	defaultChunkSize   = 8192

	// defaultUserAgent mimics a desktop browser; some hosts reject
	// obvious non-browser clients outright.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Fetcher downloads PDFs one URL at a time. It holds two HTTP clients: a
// short-timeout client for the existence check and a longer-timeout client
// for the download itself.
type Fetcher struct {
	cfg  types.FetchConfig
	head *http.Client
	get  *http.Client
}

// New returns a Fetcher for the given configuration. Zero-valued fields
// fall back to defaults (10s existence check, 30s download, 8192-byte
// chunks, browser-like User-Agent).
func New(cfg types.FetchConfig) *Fetcher {
	if cfg.HeadTimeout <= 0 {
		cfg.HeadTimeout = defaultHeadTimeout
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Fetcher{
		cfg:  cfg,
		head: &http.Client{Timeout: cfg.HeadTimeout},
		get:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch checks that req.URL denotes a retrievable PDF, streams it to a
// uniquely named file under req.TargetDir, and reports the outcome. The
// target directory must already exist; creating it once up front is the
// caller's job. Calls are independent: no state is shared between them.
func (f *Fetcher) Fetch(req types.DownloadRequest) types.DownloadResult {
	// Existence check before committing to a full download.
	headReq, err := http.NewRequest(http.MethodHead, req.URL, nil)
	if err != nil {
		return failure("Network error: %v", err)
	}
	headReq.Header.Set("User-Agent", f.cfg.UserAgent)

	headResp, err := f.head.Do(headReq)
	if err != nil {
		return failure("Network error: %v", err)
	}
	io.Copy(io.Discard, headResp.Body)
	headResp.Body.Close()
	if headResp.StatusCode != http.StatusOK {
		return failure("URL not accessible: HTTP %d", headResp.StatusCode)
	}

	getReq, err := http.NewRequest(http.MethodGet, req.URL, nil)
	if err != nil {
		return failure("Network error: %v", err)
	}
	getReq.Header.Set("User-Agent", f.cfg.UserAgent)
	getReq.Header.Set("Accept", "application/pdf")

	resp, err := f.get.Do(getReq)
	if err != nil {
		return failure("Network error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("Failed to download: HTTP %d", resp.StatusCode)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	contentDisp := strings.ToLower(resp.Header.Get("Content-Disposition"))
	if !strings.Contains(contentType, "pdf") &&
		!strings.Contains(contentDisp, "pdf") &&
		!pathEndsInPDF(req.URL) {
		return failure("URL does not point to a PDF file (content-type: %s)", contentType)
	}

	filename := DeriveFilename(req.URL)
	path := filepath.Join(req.TargetDir, filename)

	written, res := f.writeBody(path, resp.Body)
	if res != nil {
		return *res
	}
	if written == 0 {
		os.Remove(path)
		return failure("Downloaded file is empty")
	}

	return types.DownloadResult{
		Status:  types.StatusSuccess,
		Message: fmt.Sprintf("Successfully downloaded to %s (%d bytes)", filename, written),
		Path:    path,
	}
}

// writeBody streams body to path in fixed-size chunks, returning the byte
// count. On failure it returns a failed result; a file that received no
// bytes is removed so no empty artifact is left behind.
func (f *Fetcher) writeBody(path string, body io.Reader) (int64, *types.DownloadResult) {
	out, err := os.Create(path)
	if err != nil {
		return 0, failureP("Error downloading: %v", err)
	}

	buf := make([]byte, f.cfg.ChunkSize)
	var written int64
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				removeIfEmpty(path, written)
				return written, failureP("Error downloading: %v", werr)
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			removeIfEmpty(path, written)
			return written, failureP("Network error: %v", rerr)
		}
	}

	if err := out.Close(); err != nil {
		removeIfEmpty(path, written)
		return written, failureP("Error downloading: %v", err)
	}
	return written, nil
}

// pathEndsInPDF reports whether the URL path (query string excluded)
// carries a .pdf extension, case-insensitively.
func pathEndsInPDF(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.HasSuffix(strings.ToLower(rawURL), ".pdf")
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

func removeIfEmpty(path string, written int64) {
	if written == 0 {
		os.Remove(path)
	}
}

func failure(format string, args ...any) types.DownloadResult {
	return types.DownloadResult{
		Status:  types.StatusFailed,
		Message: fmt.Sprintf(format, args...),
	}
}

func failureP(format string, args ...any) *types.DownloadResult {
	r := failure(format, args...)
	return &r
}
