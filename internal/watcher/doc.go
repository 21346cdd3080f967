// Package watcher implements the polling file-watch engine.
//
// Each poll cycle re-lists the watched directory, reconciles the set of
// tracked files against the listing, then incrementally reads every
// tracked file from its recorded line offset and scans newly appended
// lines for the configured magic text. Detection is purely poll-based;
// there is no filesystem event subscription.
//
// Tracked state is a per-file line offset held in memory only. A restart
// begins with an empty registry and re-reads files from the top. Files
// are assumed append-only: if a file shrinks below its offset, the cycle
// simply sees zero new lines.
//
// Key features:
//   - Per-cycle directory reconciliation (new files tracked at offset 0,
//     vanished files dropped)
//   - Offset-based incremental line reads, each line scanned exactly once
//   - Per-file error recovery (a vanished or unreadable file never aborts
//     the cycle)
//   - Optional match history recording into the SQLite store
//   - Daemon mode support with PID file management
//   - Graceful shutdown with SIGTERM/SIGINT/SIGHUP handling
//
// Example usage:
//
//	cfg := config.Default()
//	cfg.Dir, cfg.Ext, cfg.Text = "/var/log/app", ".log", "error"
//	if err := cfg.Normalize(); err != nil {
//		log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
//	w := watcher.New(cfg, logger, nil)
//
//	ctx, stop := signal.NotifyContext(context.Background(),
//		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
//	defer stop()
//
//	if err := w.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
package watcher
