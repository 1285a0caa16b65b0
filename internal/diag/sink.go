// Package diag is the process-wide diagnostic channel for failures that are
// recovered locally instead of being returned to the caller.
//
// Components that must never fail across their public boundary (for example
// project.Scaffolder) push a formatted message here and hand the caller an
// empty result. The default sink writes through log/slog.
package diag

import (
	"log/slog"
	"sync"
)

// Sink accepts formatted error messages for out-of-band reporting.
// PushError must not fail or panic.
type Sink interface {
	PushError(msg string)
}

// SlogSink forwards diagnostics to a slog.Logger at error level.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns a sink backed by logger.
// A nil logger means slog.Default() at the time of each push.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

// PushError implements Sink.
func (s *SlogSink) PushError(msg string) {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error(msg, "channel", "diag")
}

var (
	mu      sync.RWMutex
	current Sink = NewSlogSink(nil)
)

// Default returns the process-wide sink.
func Default() Sink {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetDefault replaces the process-wide sink and returns the previous one.
// Passing nil restores the slog-backed sink.
func SetDefault(s Sink) Sink {
	mu.Lock()
	defer mu.Unlock()
	prev := current
	if s == nil {
		s = NewSlogSink(nil)
	}
	current = s
	return prev
}

// PushError sends msg to the process-wide sink.
func PushError(msg string) {
	Default().PushError(msg)
}
