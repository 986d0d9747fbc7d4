// Package logging wraps zerolog into the small, structured logging surface
// the orchestrator and master use for phase tracing and lifecycle events,
// in place of the teacher's log.Printf/log.Fatalf call sites.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(defaultWriter()).With().Timestamp().Logger()
)

func defaultWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
}

// SetOutput redirects all subsequent log lines to w. Tests use this to
// capture and assert on log output instead of writing to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel bounds the minimum level that is emitted.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Level(level)
}

// Fields is a shorthand for the key/value pairs passed to With.
type Fields map[string]interface{}

// With returns a logger event builder pre-populated with fields, mirroring
// zerolog's own With().Str(...) chaining idiom.
func With(fields Fields) *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return addFields(log.Info(), fields)
}

func addFields(e *zerolog.Event, fields Fields) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}

// Info logs a structured info-level event. Use With(...).Msg(...) directly
// when more than a handful of fields are needed.
func Info(msg string, fields Fields) {
	mu.RLock()
	defer mu.RUnlock()
	addFields(log.Info(), fields).Msg(msg)
}

// Warn logs a structured warn-level event, used for recoverable conditions
// such as a worker failing to process one batch (see package batch).
func Warn(msg string, fields Fields) {
	mu.RLock()
	defer mu.RUnlock()
	addFields(log.Warn(), fields).Msg(msg)
}

// Error logs a structured error-level event.
func Error(msg string, err error, fields Fields) {
	mu.RLock()
	defer mu.RUnlock()
	addFields(log.Error().Err(err), fields).Msg(msg)
}

// Debug logs a structured debug-level event, used for per-task tracing
// that would be too noisy at Info level.
func Debug(msg string, fields Fields) {
	mu.RLock()
	defer mu.RUnlock()
	addFields(log.Debug(), fields).Msg(msg)
}
