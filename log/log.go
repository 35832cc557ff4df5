package log

import (
	"log/slog"
	"os"
)

// Logger is the structured logger used across packages
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Fatalw(msg string, keysAndValues ...any)
}

// logger falls back to slog, which drops Debug by default
type logger struct{}

// Default 默认实例
var Default Logger = &logger{}

// Set replaces the default logger, nil is ignored
func Set(logger Logger) {
	if logger != nil {
		Default = logger
	}
}

// Get returns the current logger
func Get() Logger {
	return Default
}

func (z *logger) Debugw(msg string, keysAndValues ...any) {
	slog.Debug(msg, keysAndValues...)
}

func (z *logger) Infow(msg string, keysAndValues ...any) {
	slog.Info(msg, keysAndValues...)
}

func (z *logger) Warnw(msg string, keysAndValues ...any) {
	slog.Warn(msg, keysAndValues...)
}

func (z *logger) Errorw(msg string, keysAndValues ...any) {
	slog.Error(msg, keysAndValues...)
}

func (z *logger) Fatalw(msg string, keysAndValues ...any) {
	slog.Error(msg, keysAndValues...)
	os.Exit(1)
}
