package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w. Debug output is enabled when verbose
// is set, otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          "linkext",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
