// Package logging provides the Logger interface the engine logs through and
// the slog, zerolog and Graylog plumbing the command line tool sets up.
package logging

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// Logger is satisfied by *slog.Logger and *ZerologLogger.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Nop returns a Logger that discards every record.
func Nop() Logger {
	return slog.New(slog.DiscardHandler)
}

// OrNop returns l, or a discarding Logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}
