// Package logging sets up the structured run log every gexfviz invocation
// writes to: one shared gexfviz.log file under the configured log directory,
// appended to by every run, with each record tagged by the run's correlation
// id, plus a mirror on stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup opens for appending (creating dirs as needed) logDir/gexfviz.log and
// returns a *slog.Logger that writes structured records to both that file
// and stderr, tagged with run_id so one run's records can be picked out
// when several runs share the file. The returned close func must be
// deferred by the caller.
func Setup(logDir, runID string) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, err
	}
	path := filepath.Join(logDir, "gexfviz.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	mw := io.MultiWriter(f, os.Stderr)
	handler := slog.NewTextHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler).With("run_id", runID)
	return logger, f.Close, nil
}
