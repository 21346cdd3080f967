package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string

	// RootCmd is the root command for dirwatcher
	RootCmd = &cobra.Command{
		Use:   "dirwatcher",
		Short: "Poll a directory and report magic text in newly appended lines",
		Long: `dirwatcher monitors a directory for files with a given extension and
scans newly appended content of each matched file for a target string of
text ("magic text"), reporting every occurrence with its line number.

Detection is polling-based: each cycle re-lists the directory, starts
tracking new matching files, drops vanished ones, and reads each tracked
file incrementally from its last known line. The watcher is built to run
indefinitely and shrugs off transient filesystem churn.

Quick Start:
  1. dirwatcher watch /var/log/app log --magictext error
  2. Leave it running (or use --daemon)
  3. dirwatcher history

Examples:
  # Watch in the foreground, polling every half second
  dirwatcher watch ./drops log --magictext "connection fail" --interval 0.5

  # Run as a background daemon
  dirwatcher watch ./drops log --magictext error --daemon

  # Stop the daemon
  dirwatcher watch --stop

  # Inspect recorded matches
  dirwatcher history --limit 50`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("dirwatcher: directory polling with magic-text reporting")
			fmt.Println()
			fmt.Println("Run 'dirwatcher watch --help' to start watching a directory.")
			fmt.Println("Run 'dirwatcher --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "match history database path (default: ~/.dirwatcher/dirwatcher.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file path (default: ~/.dirwatcher/config.yaml)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// stateDir returns ~/.dirwatcher, creating it if needed.
func stateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".dirwatcher")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create dirwatcher directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dirwatcher.db"), nil
}

// getConfigPath returns the config file path, using the flag value or default
func getConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}
