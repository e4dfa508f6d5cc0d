// Package logger builds the service-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog.Logger writing JSON lines to stdout.
// In development the level drops to debug and output is human readable.
func New(appEnv string) zerolog.Logger {
	return NewWithWriter(os.Stdout, appEnv)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "vidar").
		Logger()

	if appEnv == "development" {
		l = l.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return l
}
