package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	base  zerolog.Logger
	ready bool
	out   io.Writer = os.Stderr
)

// Init configures the global logger.
//
// Logs go to stderr so stdout stays reserved for quotes and candles.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: warn)
//   - LOG_PRETTY: true|false (default: true)
func Init() {
	level := parseLevel(getenv("LOG_LEVEL", "warn"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "true"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}
	base = zerolog.New(w).With().Timestamp().Logger().Level(level)
	ready = true
}

// SetVerbose lowers the level to debug; used for -v/--verbose.
func SetVerbose() {
	base = L().Level(zerolog.DebugLevel)
}

// SetOutput redirects log output and re-initializes the logger.
func SetOutput(w io.Writer) {
	out = w
	Init()
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	if !ready {
		Init()
	}
	return &base
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
