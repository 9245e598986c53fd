package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// -----------------------------------------------------------------------------

// Logger wraps a zap SugaredLogger behind the printf-style surface used
// throughout the gateway (Info/Warning/Error/Critical with format args).
type Logger struct {
	name  string
	sugar *zap.SugaredLogger
}

// -----------------------------------------------------------------------------

// NewLogger creates a named logger emitting structured JSON to stdout.
// Unknown or empty levels fall back to "info".
func NewLogger(level string, name string) *Logger {
	atomic := zap.NewAtomicLevel()
	if err := atomic.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		atomic.SetLevel(zapcore.InfoLevel)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		NameKey:    "logger",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(l.String()))
		},
	}

	cfg := zap.Config{
		Level:            atomic,
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	base, err := cfg.Build()
	if err != nil {
		// Build only fails on invalid config; fall back to the default production logger.
		base = zap.Must(zap.NewProduction())
	}

	return &Logger{
		name:  name,
		sugar: base.Named(name).Sugar(),
	}
}

// -----------------------------------------------------------------------------

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{name: "nop", sugar: zap.NewNop().Sugar()}
}

// -----------------------------------------------------------------------------

// Debug logs a formatted debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs a formatted info message.
func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs a formatted warning message.
func (l *Logger) Warning(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs a formatted error message.
func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs a formatted error message at the highest non-exiting level.
// The caller decides whether to terminate the process.
func (l *Logger) Critical(format string, args ...any) {
	l.sugar.Errorf("CRITICAL: "+format, args...)
}

// -----------------------------------------------------------------------------

// Sync flushes buffered log entries. Call before process exit.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
