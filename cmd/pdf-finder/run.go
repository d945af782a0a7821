// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-finder/internal/agent"
	"github.com/pdiddy/pdf-finder/internal/fetch"
	"github.com/pdiddy/pdf-finder/internal/openai"
	"github.com/pdiddy/pdf-finder/internal/secrets"
	"github.com/pdiddy/pdf-finder/internal/session"
	"github.com/pdiddy/pdf-finder/pkg/types"
)

const (
	defaultModel   = "gpt-4"
	defaultRounds  = 3
	defaultDataDir = "data"

	// defaultSeed pins provider-side sampling for reproducible URL lists.
	defaultSeed = 42
)

var runCmd = &cobra.Command{
	Use:   "run [topic]",
	Short: "Run a research session: find PDFs about a topic and download them",
	Long: `Run starts a scripted conversation between two roles. The research role
asks a chat model for candidate PDF URLs about the topic; the download
role fetches each one and reports the result. The finished session is
stored in a local database with a YAML transcript export.`,
	RunE: runSession,
}

func init() {
	runCmd.Flags().String("model", defaultModel, "chat model identifier")
	runCmd.Flags().String("base-url", "", "chat API base URL (default: OpenAI)")
	runCmd.Flags().Int("rounds", defaultRounds, "maximum relay rounds")
	runCmd.Flags().String("data-dir", defaultDataDir, "directory for the session database and transcripts")
	runCmd.Flags().Bool("no-save", false, "skip persisting the session")
	addFetchFlags(runCmd)

	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research topic (e.g. \"artificial intelligence in healthcare\")")
	}
	topic := strings.Join(args, " ")

	// Config file first, then the secrets directory, then the environment.
	apiKey := viper.GetString("agent.api_key")
	if apiKey == "" {
		apiKey = secrets.APIKey(loadedSecrets)
	}
	if apiKey == "" {
		return fmt.Errorf("no API key configured: create .secrets/openai-api-key or set OPENAI_API_KEY")
	}

	model, _ := cmd.Flags().GetString("model")
	baseURL, _ := cmd.Flags().GetString("base-url")
	rounds, _ := cmd.Flags().GetInt("rounds")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	noSave, _ := cmd.Flags().GetBool("no-save")

	agentCfg := types.AgentConfig{
		Model:     model,
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Seed:      defaultSeed,
		MaxRounds: rounds,
	}

	fetchCfg := fetchConfig(cmd)
	if err := os.MkdirAll(fetchCfg.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("creating download directory %s: %w", fetchCfg.DownloadDir, err)
	}
	fetcher := fetch.New(fetchCfg)

	coord := agent.NewCoordinator([]agent.Role{
		agent.NewResearchRole(openai.NewClient(agentCfg)),
		agent.NewDownloadRole(fetchCfg.DownloadDir),
	}, agentCfg.MaxRounds, os.Stdout)

	var outcomes []types.DownloadOutcome
	coord.Register(agent.DownloadFunc, func(fnArgs map[string]string) string {
		res := fetcher.Fetch(types.DownloadRequest{
			URL:       fnArgs["url"],
			TargetDir: fnArgs["save_dir"],
		})
		outcomes = append(outcomes, types.DownloadOutcome{URL: fnArgs["url"], Result: res})
		return res.Message
	})

	sess, runErr := coord.Run(cmd.Context(), topic)
	sess.Downloads = outcomes

	if !noSave {
		if err := saveSession(sess, dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not persist session: %v\n", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("Session %s: %d/%d downloads succeeded over %d round(s)\n",
		sess.ID, sess.Succeeded(), sess.Attempted(), sess.Rounds)
	return nil
}

func saveSession(sess *types.Session, dataDir string) error {
	store, err := session.NewStore(types.SessionConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(context.Background(), sess); err != nil {
		return err
	}
	path, err := session.WriteTranscript(sess, dataDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Transcript written to %s\n", path)
	return nil
}
