package logger

import (
	"log/slog"
	"os"
)

// Interface is the structured logger passed to every repository, use case
// and handler. The *w variants take alternating keys and values.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
}

type slogAdapter struct {
	sl *slog.Logger
}

// NewLogger wraps the process logger configured by Init.
func NewLogger() Interface {
	return &slogAdapter{sl: Get()}
}

// NewLoggerWithSlog wraps an explicit slog logger, mostly for tests.
func NewLoggerWithSlog(sl *slog.Logger) Interface {
	return &slogAdapter{sl: sl}
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.sl.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.sl.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.sl.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.sl.Error(msg, args...) }

// Fatal logs at error level and exits the process.
func (a *slogAdapter) Fatal(msg string, args ...any) {
	a.sl.Error(msg, args...)
	_ = Sync()
	os.Exit(1)
}

func (a *slogAdapter) With(args ...any) Interface {
	return &slogAdapter{sl: a.sl.With(args...)}
}

// Named tags every record with a component name.
func (a *slogAdapter) Named(name string) Interface {
	return &slogAdapter{sl: a.sl.With("component", name)}
}

func (a *slogAdapter) Debugw(msg string, keysAndValues ...interface{}) { a.Debug(msg, keysAndValues...) }
func (a *slogAdapter) Infow(msg string, keysAndValues ...interface{})  { a.Info(msg, keysAndValues...) }
func (a *slogAdapter) Warnw(msg string, keysAndValues ...interface{})  { a.Warn(msg, keysAndValues...) }
func (a *slogAdapter) Errorw(msg string, keysAndValues ...interface{}) { a.Error(msg, keysAndValues...) }
func (a *slogAdapter) Fatalw(msg string, keysAndValues ...interface{}) { a.Fatal(msg, keysAndValues...) }
