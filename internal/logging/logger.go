// Package logging provides the structured logger shared by the CLI and the
// engine's orchestration layer. Output is slog JSON on stderr; levels are
// parsed with logrus so config accepts its familiar level names.
package logging

import (
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON slog logger at the given level. Unknown level names
// fall back to info.
func New(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(level),
	}))
}

// WithComponent tags a logger with the engine component it serves.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}

// WithOperation tags a logger with the operation being executed.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String("operation", operation))
}

func slogLevel(level string) slog.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return slog.LevelInfo
	}
	switch parsed {
	case logrus.TraceLevel, logrus.DebugLevel:
		return slog.LevelDebug
	case logrus.WarnLevel:
		return slog.LevelWarn
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
