package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-finder/internal/fetch"
	"github.com/pdiddy/pdf-finder/pkg/types"
)

const (
	defaultDownloadDir = "pdf_downloads"
	defaultHeadTimeout = 10 * time.Second
	defaultGetTimeout  = 30 * time.Second
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Download PDF files from known URLs",
	Long: `Fetch verifies each URL references a retrievable PDF, streams it to a
uniquely named file in the download directory, and reports the outcome.
URLs are processed sequentially and independently: one failure never
stops the rest.`,
	RunE: runFetch,
}

func init() {
	addFetchFlags(fetchCmd)

	rootCmd.AddCommand(fetchCmd)
}

// addFetchFlags registers the downloader knobs shared by fetch and run.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", defaultDownloadDir, "directory downloads are written into")
	cmd.Flags().Duration("timeout", 0, "download request timeout (default 30s)")
	cmd.Flags().Duration("head-timeout", 0, "existence check timeout (default 10s)")
	cmd.Flags().String("user-agent", "", "User-Agent header (default: browser-like)")
}

func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultGetTimeout
	}
	headTimeout, _ := cmd.Flags().GetDuration("head-timeout")
	if headTimeout == 0 {
		headTimeout = defaultHeadTimeout
	}
	userAgent, _ := cmd.Flags().GetString("user-agent")
	dir, _ := cmd.Flags().GetString("dir")

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		HeadTimeout: headTimeout,
		DownloadDir: dir,
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF URLs")
	}

	cfg := fetchConfig(cmd)
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("creating download directory %s: %w", cfg.DownloadDir, err)
	}

	result := fetch.New(cfg).FetchBatch(args, cfg.DownloadDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d download(s) failed", result.Failed)
	}
	return nil
}
