package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// StageRunner executes plan tasks in order, stopping at the first failure
type StageRunner struct {
	logger *zap.Logger
}

// NewStageRunner creates a new stage runner
func NewStageRunner(logger *zap.Logger) *StageRunner {
	return &StageRunner{logger: logger.Named("stages")}
}

// Run executes one stage. A cancelled context fails the stage before it starts.
func (r *StageRunner) Run(ctx context.Context, taskID string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("stage %s: %w", taskID, err)
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Error("stage failed",
			zap.String("task", taskID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return fmt.Errorf("stage %s: %w", taskID, err)
	}

	r.logger.Debug("stage complete", zap.String("task", taskID), zap.Duration("elapsed", elapsed))
	return nil
}
