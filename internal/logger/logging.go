// Package logger configures charmbracelet/log for the binary and hands out
// per-component loggers.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Output is where every logger built here writes. Stdout carries the IPC
// stream, so logs go to stderr.
var Output io.Writer = os.Stderr

// timestamps mirrors the global logger once Setup has run
var timestamps bool

// New returns a logger prefixed with the component name that follows the
// level and timestamp choice made by Setup.
func New(component string) *log.Logger {
	return NewWithConfig(component, log.GetLevel(), timestamps)
}

// NewWithConfig returns a prefixed logger with an explicit level.
// An empty component gives an unprefixed logger.
func NewWithConfig(component string, level log.Level, showTimestamp bool) *log.Logger {
	return log.NewWithOptions(Output, log.Options{
		Prefix:          component,
		Level:           level,
		ReportTimestamp: showTimestamp,
		Formatter:       log.TextFormatter,
	})
}

// Setup points the package level logger at Output and picks its level.
// Debug mode adds timestamps; otherwise only warnings and above are shown.
func Setup(debug bool) {
	timestamps = debug
	log.SetOutput(Output)
	log.SetReportTimestamp(debug)
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}
