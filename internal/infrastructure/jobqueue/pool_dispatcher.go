package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

// ChunkRunner executes one chunk. It is the chunk job service's RunChunk.
type ChunkRunner func(ctx context.Context, task jobprogress.ChunkTask) error

// PoolDispatcher runs chunks in-process on a bounded ants pool. Dispatch
// blocks while every worker is busy.
type PoolDispatcher struct {
	pool   *ants.Pool
	run    ChunkRunner
	logger *logging.Logger
}

func NewPoolDispatcher(size int, run ChunkRunner, logger *logging.Logger) (*PoolDispatcher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if size <= 0 {
		size = 4
	}
	pool, err := ants.NewPool(size, ants.WithPanicHandler(func(p any) {
		logger.Error("chunk worker panic", "panic", fmt.Sprint(p))
	}))
	if err != nil {
		return nil, fmt.Errorf("create chunk worker pool: %w", err)
	}
	return &PoolDispatcher{pool: pool, run: run, logger: logger}, nil
}

func (d *PoolDispatcher) Dispatch(ctx context.Context, task jobprogress.ChunkTask) error {
	runCtx := context.WithoutCancel(ctx)
	if err := d.pool.Submit(func() {
		start := time.Now()
		if err := d.run(runCtx, task); err != nil {
			d.logger.WarnContext(runCtx, "chunk failed", "job_id", task.JobID, "range", task.Range, "error", err)
			return
		}
		d.logger.DebugContext(runCtx, "chunk done",
			"job_id", task.JobID, "range", task.Range, "ids", len(task.IDs), "duration_ms", time.Since(start).Milliseconds())
	}); err != nil {
		return fmt.Errorf("submit chunk %s: %w", task.Range, err)
	}
	return nil
}

// Running reports how many chunks are executing.
func (d *PoolDispatcher) Running() int {
	return d.pool.Running()
}

// Close waits up to timeout for running chunks before releasing workers.
func (d *PoolDispatcher) Close(timeout time.Duration) error {
	if err := d.pool.ReleaseTimeout(timeout); err != nil {
		return fmt.Errorf("release chunk worker pool: %w", err)
	}
	return nil
}
