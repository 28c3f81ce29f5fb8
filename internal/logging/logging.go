// Package logging builds the process logger.
package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RunIDKey is the field carrying the run identifier on every entry.
const RunIDKey = "run_id"

// New returns a JSON production logger, at debug level when verbose, with
// a fresh run identifier attached.
func New(verbose bool) (*zap.Logger, string, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger, runID := WithRunID(logger)

	return logger, runID, nil
}

// WithRunID tags l with a new random run identifier.
func WithRunID(l *zap.Logger) (*zap.Logger, string) {
	id := uuid.NewString()
	return l.With(zap.String(RunIDKey, id)), id
}
