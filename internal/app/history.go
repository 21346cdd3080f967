package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/forty9unbeaten/dirwatcher/internal/store"
)

var (
	historyLimit int
	historyFile  string

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List recorded magic-text matches",
		Long: `List matches recorded by past and current watch runs, newest first.

Each entry shows when the match was detected, which file it was found in,
the line number, and the matching line itself. Use --file to narrow the
listing to a single file and --limit to control how many entries appear.`,
		Example: `  # The 20 most recent matches
  dirwatcher history

  # The last 5 matches in one file
  dirwatcher history --limit 5 --file /var/log/app/server.log`,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of matches to list")
	historyCmd.Flags().StringVar(&historyFile, "file", "", "only show matches from this file")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", historyLimit)
	}

	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No matches recorded yet. Start a watch with 'dirwatcher watch'.")
		return nil
	}

	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	matches, err := st.RecentMatches(historyLimit, historyFile)
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches recorded.")
		return nil
	}

	for _, m := range matches {
		fmt.Printf("%s  %s:%d  %q found in: %s\n",
			m.DetectedAt.Format(time.DateTime),
			m.File, m.LineNo, m.MagicText, m.LineText)
	}

	return nil
}
