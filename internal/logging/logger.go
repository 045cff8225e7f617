package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DebugEnabled returns true if debug mode is enabled via BT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("BT_DEBUG") != ""
}

// New builds the application logger. Output to a terminal is rendered with the
// console writer; anything else (files, pipes, buffers) gets JSON lines.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose || DebugEnabled() {
		level = zerolog.DebugLevel
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// OpenFile opens (or creates) an append-only log file. The TUI owns the
// terminal, so interactive sessions log here instead of stderr.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
