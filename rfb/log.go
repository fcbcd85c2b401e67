package rfb

import (
	"io"
	"log/slog"
)

// Logger is the structured logging sink the core writes diagnostics to.
// It is satisfied by *slog.Logger; callers that don't care can pass
// NewDiscardLogger(), and the zero Server falls back to it automatically.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewDiscardLogger returns a Logger that drops everything, used when a
// caller does not supply one explicitly.
func NewDiscardLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *Server) log() Logger {
	if s.logger == nil {
		return NewDiscardLogger()
	}
	return s.logger
}
