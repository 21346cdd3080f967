// Package logging builds the structured log sink the watcher reports
// through. The watcher core never writes to a fixed destination itself;
// it hands semantic events to a *slog.Logger built here, backed by a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"

	"github.com/forty9unbeaten/dirwatcher/internal/config"
)

// Level translates a verbosity code (1–5) into a handler level. An
// out-of-range code is a configuration error.
func Level(verbosity int) (log.Level, error) {
	switch verbosity {
	case config.VerbosityDebug:
		return log.DebugLevel, nil
	case config.VerbosityInfo:
		return log.InfoLevel, nil
	case config.VerbosityWarn:
		return log.WarnLevel, nil
	case config.VerbosityError:
		return log.ErrorLevel, nil
	case config.VerbosityFatal:
		return log.FatalLevel, nil
	default:
		return 0, fmt.Errorf("invalid verbosity %d: must be 1-5", verbosity)
	}
}

// New returns a logger writing to w at the severity selected by verbosity.
func New(w io.Writer, verbosity int) (*slog.Logger, error) {
	level, err := Level(verbosity)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "dirwatcher",
		Level:           level,
	})

	return slog.New(handler), nil
}
