package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/forty9unbeaten/dirwatcher/internal/config"
	"github.com/forty9unbeaten/dirwatcher/internal/store"
)

// Watcher polls a directory for files matching the configured extension
// and scans newly appended lines of each for the magic text. All state
// lives in memory for the lifetime of one Run call.
type Watcher struct {
	cfg      config.Watch
	log      *slog.Logger
	store    *store.Store // optional, nil disables history recording
	registry Registry

	started   time.Time
	sessionID int64
}

// New creates a Watcher. The store may be nil, in which case matches are
// only reported through the logger.
func New(cfg config.Watch, logger *slog.Logger, st *store.Store) *Watcher {
	return &Watcher{
		cfg:      cfg,
		log:      logger,
		store:    st,
		registry: make(Registry),
	}
}

// Registry returns the tracked-file registry.
func (w *Watcher) Registry() Registry {
	return w.registry
}

// Run executes the watch loop until ctx is cancelled. Each iteration
// completes a full cycle (reconcile, then read-and-match) before the
// cancellation check; a cycle in progress is never interrupted. Only
// configuration problems surface as errors — transient filesystem
// failures are logged and retried on the next cycle.
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.PollInterval() <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", w.cfg.Interval)
	}

	w.started = time.Now()
	w.log.Info("watch started",
		"pid", os.Getpid(),
		"dir", w.cfg.Dir,
		"ext", w.cfg.Ext,
		"text", w.cfg.Text,
		"interval", w.cfg.PollInterval(),
	)

	if w.store != nil {
		id, err := w.store.BeginSession(w.started, w.cfg.Dir, w.cfg.Ext, w.cfg.Text)
		if err != nil {
			w.log.Warn("could not record session start", "error", err)
		} else {
			w.sessionID = id
		}
	}

	ticker := time.NewTicker(w.cfg.PollInterval())
	defer ticker.Stop()

	for {
		w.Cycle()

		select {
		case <-ctx.Done():
			w.shutdown()
			return nil
		case <-ticker.C:
		}
	}
}

// Cycle performs one full list → reconcile → read-and-match pass. It is
// exported so tests can drive the engine without the sleep loop.
func (w *Watcher) Cycle() {
	listing, err := ListMatching(w.cfg.Dir, w.cfg.Ext)
	if err != nil {
		// Directory unavailable: leave the registry untouched and retry
		// on the next cycle.
		w.log.Error("directory unavailable", "dir", w.cfg.Dir, "error", err)
		return
	}

	added, removed := w.registry.Reconcile(listing)
	for _, path := range added {
		w.log.Info("tracking new file", "file", filepath.Base(path))
	}
	for _, path := range removed {
		w.log.Info("file no longer present, dropped from tracking", "file", filepath.Base(path))
	}
	w.log.Debug("cycle listing", "files", len(listing), "added", len(added), "removed", len(removed))

	for _, path := range w.registry.Paths() {
		w.scanFile(path)
	}
}

// scanFile incrementally reads one tracked file and reports matches in
// its new lines. Errors are recovered per file and never propagate.
func (w *Watcher) scanFile(path string) {
	offset := w.registry[path]

	lines, err := ReadNewLines(path, offset)
	if errors.Is(err, fs.ErrNotExist) {
		// Vanished between listing and read: the next reconcile drops it.
		w.log.Warn("file vanished before read", "file", filepath.Base(path))
		return
	}
	if err != nil {
		w.log.Warn("could not read file", "file", filepath.Base(path), "error", err)
		return
	}
	if len(lines) == 0 {
		return
	}

	w.log.Debug("read new lines", "file", filepath.Base(path), "lines", len(lines), "offset", offset)

	for _, m := range FindMatches(path, lines, offset, w.cfg.Text) {
		w.report(m)
	}

	// Advance past everything just read, matched or not, so each line is
	// scanned exactly once.
	w.registry[path] = offset + len(lines)
}

// report emits one match to the log sink and, when a store is attached,
// records it in the match history.
func (w *Watcher) report(m Match) {
	w.log.Info(fmt.Sprintf("%q found in file %s on line %d", w.cfg.Text, filepath.Base(m.Path), m.LineNo))

	if w.store == nil {
		return
	}
	err := w.store.InsertMatch(&store.Match{
		File:       m.Path,
		LineNo:     m.LineNo,
		LineText:   m.Line,
		MagicText:  w.cfg.Text,
		DetectedAt: time.Now(),
	})
	if err != nil {
		w.log.Warn("could not record match", "file", filepath.Base(m.Path), "error", err)
	}
}

// shutdown emits the closing banner and closes out the session record.
func (w *Watcher) shutdown() {
	uptime := time.Since(w.started).Round(time.Second)
	w.log.Info("watch stopped",
		"ended", time.Now().Format(time.RFC3339),
		"uptime", uptime,
	)

	if w.store != nil && w.sessionID != 0 {
		if err := w.store.EndSession(w.sessionID, time.Now()); err != nil {
			w.log.Warn("could not record session end", "error", err)
		}
	}
}
