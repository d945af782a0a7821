package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-finder/internal/session"
	"github.com/pdiddy/pdf-finder/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List stored sessions or show one session's transcript",
	Long: `History lists stored research sessions, most recent first. With a
session ID it prints that session's transcript and download outcomes.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("data-dir", defaultDataDir, "directory for the session database and transcripts")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")

	store, err := session.NewStore(types.SessionConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if len(args) > 0 {
		return showSession(ctx, store, args[0])
	}
	return listSessions(ctx, store)
}

func listSessions(ctx context.Context, store *session.Store) error {
	summaries, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}

	for _, s := range summaries {
		fmt.Printf("%s  %s  %d/%d downloaded  %q\n",
			s.ID, s.StartedAt.Format(time.RFC3339), s.Succeeded, s.Attempted, s.Topic)
	}
	return nil
}

func showSession(ctx context.Context, store *session.Store, id string) error {
	sess, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Session %s\nTopic:   %s\nStarted: %s\nRounds:  %d\n\n",
		sess.ID, sess.Topic, sess.StartedAt.Format(time.RFC3339), sess.Rounds)

	for _, m := range sess.Messages {
		fmt.Printf("%s:\n%s\n\n", m.Name, m.Content)
	}

	if len(sess.Downloads) > 0 {
		fmt.Println("Downloads:")
		for _, d := range sess.Downloads {
			fmt.Printf("  [%s] %s: %s\n", d.Result.Status, d.URL, d.Result.Message)
		}
	}
	return nil
}
