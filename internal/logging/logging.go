package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the sugared zap logger used across the CLI.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger on stderr. Verbose enables debug output
// with caller information.
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.TimeKey = ""

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}

	return &Logger{l.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// Sync flushes buffered entries, ignoring the error stderr returns on some platforms.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
