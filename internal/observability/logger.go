// Package observability owns logger construction for the CLI and server.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is the shared logger for command implementations. It defaults to
// a no-op logger until InitCLILogger runs; commands can always log through it
// without nil checks.
var CLILogger = zap.NewNop()

// NewLogger builds a structured logger at the given level. Logs go to stderr
// so command output on stdout stays machine-readable.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// InitCLILogger replaces the shared CLI logger.
func InitCLILogger(level string) error {
	logger, err := NewLogger(level)
	if err != nil {
		return err
	}
	CLILogger = logger
	return nil
}

// Sync flushes buffered log entries. Called on command exit.
func Sync() {
	_ = CLILogger.Sync()
}
