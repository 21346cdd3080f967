package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/forty9unbeaten/dirwatcher/internal/store"
	"github.com/forty9unbeaten/dirwatcher/internal/watcher"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check daemon status and match statistics",
	Long: `Display the current status of the dirwatcher daemon and the match
history database.

Shows:
  • Daemon running status and PID
  • Database location and validity
  • Total matches recorded
  • Most recent match
  • Time since the first recorded watch session`,
	Example: `  # Check status
  dirwatcher status`,
	RunE: runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return fmt.Errorf("failed to get PID file path: %w", err)
	}

	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}

	daemonRunning, err := watcher.IsDaemonRunning(pidFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if daemonRunning {
		pid := 0
		if pidData, err := os.ReadFile(pidFile); err == nil {
			pid, _ = strconv.Atoi(strings.TrimSpace(string(pidData)))
		}
		fmt.Printf("Daemon:   running (PID %d)\n", pid)
	} else {
		fmt.Println("Daemon:   not running")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Database: %s (not created yet)\n", path)
		fmt.Println("\nNo matches recorded. Start a watch with 'dirwatcher watch'.")
		return nil
	}
	fmt.Printf("Database: %s\n", path)

	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	count, err := st.CountMatches()
	if err != nil {
		return fmt.Errorf("failed to count matches: %w", err)
	}
	fmt.Printf("Matches:  %d recorded\n", count)

	if last, err := st.LastMatch(); err == nil && last != nil {
		fmt.Printf("Latest:   %q in %s on line %d (%s)\n",
			last.MagicText, last.File, last.LineNo,
			last.DetectedAt.Format(time.DateTime))
	}

	if first, err := st.FirstSessionStart(); err == nil && !first.IsZero() {
		fmt.Printf("Tracking: since %s (%s)\n",
			first.Format(time.DateTime),
			time.Since(first).Round(time.Minute))
	}

	if sess, err := st.LastSession(); err == nil && sess != nil {
		state := "still running or interrupted"
		if sess.EndedAt != nil {
			state = "ended " + sess.EndedAt.Format(time.DateTime)
		}
		fmt.Printf("Last run: %s (*%s, magic text %q) started %s, %s\n",
			sess.Dir, sess.Ext, sess.MagicText,
			sess.StartedAt.Format(time.DateTime), state)
	}

	return nil
}
