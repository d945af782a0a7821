// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DownloadStatus indicates the outcome of a single fetch attempt.
type DownloadStatus string

const (
	StatusSuccess DownloadStatus = "success"
	StatusFailed  DownloadStatus = "failed"
)

// DownloadRequest describes one URL to fetch and where to put the file.
// Constructed per call; the target directory must already exist.
type DownloadRequest struct {
	// URL is the candidate PDF URL.
	URL string `json:"url" yaml:"url"`

	// TargetDir is the directory the file is written into.
	TargetDir string `json:"target_dir" yaml:"target_dir"`
}

// DownloadResult is the structured outcome of a fetch attempt. Failures are
// reported here rather than as errors: every fetch returns a result, and the
// Message is suitable for logging or relaying to an agent verbatim.
type DownloadResult struct {
	// Status is success or failed.
	Status DownloadStatus `json:"status" yaml:"status"`

	// Message describes the outcome in human-readable form.
	Message string `json:"message" yaml:"message"`

	// Path is the full path of the downloaded file. Empty unless Status is success.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// OK reports whether the download succeeded.
func (r DownloadResult) OK() bool {
	return r.Status == StatusSuccess
}
