// Package logging builds the process logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
)

// Options controls how New formats log output.
type Options struct {
	Level   string // zerolog level name; empty means info
	Console bool   // human-readable console output instead of JSON lines
}

// New returns a timestamped zerolog logger writing to w.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if name := strings.TrimSpace(strings.ToLower(opts.Level)); name != "" {
		parsed, err := zerolog.ParseLevel(name)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level), nil
}

// Logr bridges a zerolog logger to logr for packages that log through logr.
// logr's V(1) maps to zerolog's debug level, V(2) to trace.
func Logr(l zerolog.Logger) logr.Logger {
	return zerologr.New(&l)
}
