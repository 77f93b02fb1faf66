package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// wraps a zap sugared logger with the small surface the CLI needs
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates a console logger. Verbose enables debug output.
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		// fall back to a no-op logger rather than failing the whole run
		return &Logger{zap.NewNop().Sugar()}
	}
	return &Logger{logger.Sugar()}
}
