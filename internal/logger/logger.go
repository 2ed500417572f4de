// SPDX-License-Identifier: Apache-2.0

// Package logger is a thin wrapper around zerolog.Logger used throughout the
// SOGS client. The Logger type embeds zerolog.Logger so the full zerolog API
// is available directly; components receive a *Logger and derive child
// loggers with per-server or per-room fields.
package logger

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger for the given role label (e.g. "poller",
// "transport"). Output is JSON on stderr with a timestamp and a "func"
// caller field recording the fully-qualified function name.
func New(role string) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(os.Stderr).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Field returns a child *Logger carrying the given string field in addition
// to everything the receiver already carries.
func (l *Logger) Field(key, value string) *Logger {
	child := l.Logger.With().Str(key, value).Logger()
	return &Logger{child}
}
