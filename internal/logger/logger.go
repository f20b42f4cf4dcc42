package logger

import (
    "fmt"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// Logger is the leveled logging surface the rest of the code depends on.
type Logger interface {
    Debugf(format string, args ...any)
    Infof(format string, args ...any)
    Warnf(format string, args ...any)
    Errorf(format string, args ...any)
    Fatalf(format string, args ...any)
}

// New builds a console zap logger at the given level ("debug", "info",
// "warn", "error"). The returned func flushes buffered entries and should
// be deferred by the caller.
func New(level string) (Logger, func(), error) {
    lvl, err := zapcore.ParseLevel(level)
    if err != nil {
        return nil, nil, fmt.Errorf("parse log level %q: %w", level, err)
    }

    cfg := zap.NewProductionConfig()
    cfg.Level = zap.NewAtomicLevelAt(lvl)
    cfg.Encoding = "console"
    cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

    z, err := cfg.Build(zap.AddCallerSkip(1))
    if err != nil {
        return nil, nil, fmt.Errorf("build logger: %w", err)
    }
    sugared := z.Sugar()
    return sugared, func() { _ = z.Sync() }, nil
}

// Nop returns a logger that discards everything. For tests.
func Nop() Logger {
    return zap.NewNop().Sugar()
}
