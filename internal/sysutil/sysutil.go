// Package sysutil holds process-level setup shared by the server binary:
// the global zerolog level, output format, and context fallback.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetLogLevel sets the global zerolog level. "warning" is accepted for warn;
// empty and unknown names mean info. The level in effect is returned.
func SetLogLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel || lvl < zerolog.DebugLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return lvl
}

// ConfigureLogging installs the process logger on w (stderr when nil): JSON
// lines stamped with RFC 3339 times, or console output when pretty. The same
// logger backs zerolog.Ctx for contexts that carry no request logger, such
// as start-up and shutdown.
func ConfigureLogging(level string, pretty bool, w io.Writer) zerolog.Logger {
	SetLogLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := w
	if out == nil {
		out = os.Stderr
	}
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return log.Logger
}
