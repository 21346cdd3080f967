package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/forty9unbeaten/dirwatcher/internal/config"
	"github.com/forty9unbeaten/dirwatcher/internal/logging"
	"github.com/forty9unbeaten/dirwatcher/internal/output"
	"github.com/forty9unbeaten/dirwatcher/internal/store"
	"github.com/forty9unbeaten/dirwatcher/internal/watcher"
)

var (
	watchMagicText   string
	watchInterval    float64
	watchVerbosity   int
	watchNoHistory   bool
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool

	watchCmd = &cobra.Command{
		Use:   "watch [dir] [ext]",
		Short: "Monitor a directory for magic text in matching files",
		Long: `Start the polling watch loop over a directory.

Every polling interval the watcher re-lists the directory, tracks files
whose names end in the given extension, reads each tracked file from the
line it last stopped at, and reports any new line containing the magic
text together with its absolute line number.

dir, ext and the magic text may come from the command line or from the
YAML config file; the command line wins. The extension carries no leading
dot by convention ("log", not ".log").

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as a detached background process
  • Stop: Stop a running daemon

Matches are also recorded in the history database unless --no-history is
given; see 'dirwatcher history'. Tracked-file offsets are held in memory
only — a restart re-reads each file from the top.`,
		Example: `  # Watch ./drops for *.log lines containing "error"
  dirwatcher watch ./drops log --magictext error

  # Poll every 250ms at debug verbosity
  dirwatcher watch ./drops log -t error -i 0.25 --verbosity 1

  # Run as a background daemon
  dirwatcher watch ./drops log -t error --daemon

  # Stop the running daemon
  dirwatcher watch --stop`,
		Args: cobra.MaximumNArgs(2),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().StringVarP(&watchMagicText, "magictext", "t", "", "text to search for in newly appended lines")
	watchCmd.Flags().Float64VarP(&watchInterval, "interval", "i", 1.0, "polling interval in seconds (fractional allowed)")
	watchCmd.Flags().IntVar(&watchVerbosity, "verbosity", config.VerbosityInfo, "log verbosity, 1 (debug) to 5 (fatal)")
	watchCmd.Flags().BoolVar(&watchNoHistory, "no-history", false, "do not record matches in the history database")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.dirwatcher/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.dirwatcher/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

// buildWatchConfig assembles the watch configuration from the config file
// and command-line inputs, normalizes and validates it. Any problem here
// is fatal before the loop starts.
func buildWatchConfig(cmd *cobra.Command, args []string) (config.Watch, error) {
	cfgPath, err := getConfigPath()
	if err != nil {
		return config.Watch{}, err
	}

	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return config.Watch{}, err
	}

	// Command line wins over the config file.
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	if len(args) > 1 {
		cfg.Ext = args[1]
	}
	if cmd.Flags().Changed("magictext") {
		cfg.Text = watchMagicText
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = watchInterval
	}
	if cmd.Flags().Changed("verbosity") {
		cfg.Verbosity = watchVerbosity
	}

	if err := cfg.Normalize(); err != nil {
		return config.Watch{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Watch{}, err
	}
	return cfg, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchDaemon && watchStop {
		return fmt.Errorf("--daemon and --stop are mutually exclusive")
	}

	// Get default paths if not specified
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	// Handle stop command
	if watchStop {
		return stopWatchDaemon()
	}

	cfg, err := buildWatchConfig(cmd, args)
	if err != nil {
		return err
	}

	// Handle daemon mode: fork a child carrying the resolved configuration.
	if watchDaemon {
		return startWatchDaemon(cfg)
	}

	logger, err := logging.New(os.Stderr, cfg.Verbosity)
	if err != nil {
		return err
	}

	var st *store.Store
	if !watchNoHistory {
		path, err := getDBPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		st, err = store.New(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer st.Close()
		if err := st.CreateSchema(); err != nil {
			return fmt.Errorf("failed to create database schema: %w", err)
		}
	}

	w := watcher.New(cfg, logger, st)

	// Handle daemon child process
	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}

	// Run in foreground
	return runWatchForeground(w)
}

func stopWatchDaemon() error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon...")
	spinner.Start()
	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon stopped")

	return nil
}

// daemonChildArgs rebuilds the argument vector for the forked child so
// that it reruns this command with the fully resolved configuration.
func daemonChildArgs(cfg config.Watch) []string {
	args := []string{
		"watch", cfg.Dir, cfg.Ext,
		"--magictext", cfg.Text,
		"--interval", strconv.FormatFloat(cfg.Interval, 'f', -1, 64),
		"--verbosity", strconv.Itoa(cfg.Verbosity),
		"--daemon-child",
		"--pid-file", watchPIDFile,
		"--log-file", watchLogFile,
	}
	if watchNoHistory {
		args = append(args, "--no-history")
	}
	if dbPath != "" {
		args = append(args, "--db", dbPath)
	}
	return args
}

func startWatchDaemon(cfg config.Watch) error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running (PID file: %s)", watchPIDFile)
	}

	spinner := output.NewSpinner("Starting daemon...")
	spinner.Start()
	if err := watcher.StartDaemon(watchPIDFile, watchLogFile, daemonChildArgs(cfg)); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon started")

	fmt.Printf("\nDirectory watch daemon started\n")
	fmt.Printf("  Watching: %s (*%s, magic text %q)\n", cfg.Dir, cfg.Ext, cfg.Text)
	fmt.Printf("  PID file: %s\n", watchPIDFile)
	fmt.Printf("  Log file: %s\n", watchLogFile)
	fmt.Printf("\nTo stop: dirwatcher watch --stop\n")

	return nil
}

func runWatchForeground(w *watcher.Watcher) error {
	fmt.Println("Starting directory watch (press Ctrl+C to stop)...")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watch loop failed: %w", err)
	}

	fmt.Println("Directory watch stopped")
	return nil
}
