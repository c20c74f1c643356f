// Package logging builds the console logger.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options holds configuration for console logging.
type Options struct {
	Level           string
	ReportTimestamp bool
}

// New creates a leveled console logger writing to w. An unrecognized level
// falls back to info.
func New(w io.Writer, opts Options) *log.Logger {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          "taskdeck",
	})
}
