package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger constructs a zap logger with the provided level (default warn).
// It writes console-encoded lines with ISO8601 timestamps to stderr so that
// command output on stdout stays clean.
func NewLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	lvl := level
	if lvl == "" {
		lvl = "warn"
	}
	l, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(l)
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.CallerKey = "caller"
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.Sampling = nil
	return zcfg.Build()
}

// WithComponent attaches a component field.
func WithComponent(logger *zap.Logger, component string) *zap.Logger {
	if component == "" {
		return logger
	}
	return logger.With(zap.String("component", component))
}

// WithProject attaches project identifiers. Empty values are skipped.
func WithProject(logger *zap.Logger, projectID, shortID string) *zap.Logger {
	fields := make([]zap.Field, 0, 2)
	if projectID != "" {
		fields = append(fields, zap.String("project_id", projectID))
	}
	if shortID != "" {
		fields = append(fields, zap.String("short_id", shortID))
	}
	return logger.With(fields...)
}

// ValidLevel reports whether level is accepted by NewLogger.
func ValidLevel(level string) bool {
	if level == "" {
		return true
	}
	_, err := zapcore.ParseLevel(level)
	return err == nil
}
