package hexgl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/kael-ip/hexgl/platform"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// livePlatforms holds the platforms of contexts that are not yet disposed,
// keyed by context slot.
var livePlatforms sync.Map

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for hexgl and its platform bindings.
// By default, hexgl produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by hexgl:
//   - [slog.LevelDebug]: entry point resolution, pixel format scans
//   - [slog.LevelInfo]: context lifecycle (created, disposed)
//   - [slog.LevelWarn]: native release failures
//
// Example:
//
//	hexgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	livePlatforms.Range(func(_, v any) bool {
		propagateLogger(v.(platform.Platform), l)
		return true
	})
}

// Logger returns the current logger used by hexgl.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by platforms that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a platform if it implements the
// loggerSetter interface. Called from both SetLogger and Create so that a
// platform always has the current logger.
func propagateLogger(p platform.Platform, l *slog.Logger) {
	if ls, ok := p.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
