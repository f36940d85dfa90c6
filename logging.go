package histcore

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the diagnostic logging surface a Builder accepts. Every
// call it receives is advisory: per-call dispatch summaries,
// subtraction-cancellation warnings, and similar. Nothing logged through it carries correctness
// weight, and tests must never assert on log output.
type Logger interface {
	Debug(component, message string, fields map[string]any)
	Warn(component, message string, fields map[string]any)
	Error(component string, err error, fields map[string]any)
}

// noopLogger is installed when a Builder is constructed without an
// explicit Logger, so every call site can log unconditionally.
type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]any) {}
func (noopLogger) Warn(string, string, map[string]any)  {}
func (noopLogger) Error(string, error, map[string]any)  {}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewZerolog builds a Logger writing JSON lines to writer at level.
func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &ZerologAdapter{logger: logger}
}

// NewConsoleLogger builds a Logger writing human-readable lines to
// stdout at level, for interactive use (e.g. a training CLI built on
// top of this package).
func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}
	return NewZerolog(consoleWriter, level)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]any) {
	event := z.logger.Debug().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Warn(component, message string, fields map[string]any) {
	event := z.logger.Warn().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]any) {
	event := z.logger.Error().Str("component", component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("operation failed")
}
