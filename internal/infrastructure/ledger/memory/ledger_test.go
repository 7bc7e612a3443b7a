package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_ReconcilesConcurrentChunks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger(time.Hour, 1000)
	require.NoError(t, ledger.Init(ctx, "job-1", "players", 250))

	sizes := []int64{100, 100, 50}
	var wg sync.WaitGroup
	for i, size := range sizes {
		wg.Add(1)
		go func(i int, size int64) {
			defer wg.Done()
			errs := []jobprogress.ErrorEntry{{RangeOrID: fmt.Sprintf("chunk-%d", i), ErrorMessage: "boom"}}
			recorded, err := ledger.RecordChunk(ctx, "job-1", fmt.Sprintf("chunk-%d", i), jobprogress.Delta{Processed: size, Successful: size - 1, Failed: 1}, errs)
			assert.NoError(t, err)
			assert.True(t, recorded)
		}(i, size)
	}
	wg.Wait()

	got, ok, err := ledger.Get(ctx, "job-1", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(250), got.Processed)
	assert.Equal(t, int64(247), got.Successful)
	assert.Equal(t, int64(3), got.Failed)
	assert.Equal(t, got.Processed, got.Successful+got.Failed)
	assert.Equal(t, jobprogress.StatusCompleted, got.Status)
	assert.InDelta(t, 100.0, got.ProgressPercent, 0.0001)
	assert.Len(t, got.Errors, 3)
}

func TestLedger_CapsErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger(time.Hour, 150)
	require.NoError(t, ledger.Init(ctx, "job-1", "teams", 500))

	errs := make([]jobprogress.ErrorEntry, 200)
	for i := range errs {
		errs[i] = jobprogress.ErrorEntry{RangeOrID: fmt.Sprint(i), ErrorMessage: "failed"}
	}
	_, err := ledger.RecordChunk(ctx, "job-1", "", jobprogress.Delta{Processed: 200, Failed: 200}, errs)
	require.NoError(t, err)

	got, _, err := ledger.Get(ctx, "job-1", 500)
	require.NoError(t, err)
	assert.Len(t, got.Errors, jobprogress.DefaultErrorLimit)
	assert.Equal(t, "0", got.Errors[0].RangeOrID)
	assert.Len(t, ledger.jobs["job-1"].progress.Errors, 150)
}

func TestLedger_ManagerErrorSticks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger(time.Hour, 10)
	require.NoError(t, ledger.Init(ctx, "job-1", "fixtures", 0))
	require.NoError(t, ledger.MarkManagerError(ctx, "job-1", []byte(`{"status":"error_manager_task","error":"list ids"}`)))

	got, ok, err := ledger.Get(ctx, "job-1", 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, jobprogress.StatusErrorManagerTask, got.Status)
	assert.Zero(t, got.ProgressPercent)
	assert.Contains(t, got.ManagerError, "list ids")
}

func TestLedger_ExpiresJobs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger(time.Minute, 10)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return now }

	require.NoError(t, ledger.Init(ctx, "job-1", "venues", 10))
	now = now.Add(2 * time.Minute)

	_, ok, err := ledger.Get(ctx, "job-1", 10)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedger_RedeliveredChunkCountsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger(time.Hour, 10)
	require.NoError(t, ledger.Init(ctx, "job-1", "players", 100))

	delta := jobprogress.Delta{Processed: 100, Successful: 100}
	for i := 0; i < 3; i++ {
		recorded, err := ledger.RecordChunk(ctx, "job-1", "1-100", delta, nil)
		require.NoError(t, err)
		assert.Equal(t, i == 0, recorded)
	}
	_, err := ledger.RecordChunk(ctx, "job-1", "", jobprogress.Delta{Processed: 1, Successful: 1}, nil)
	require.NoError(t, err)

	got, _, err := ledger.Get(ctx, "job-1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(101), got.Processed)
	assert.Equal(t, jobprogress.StatusCompleted, got.Status)
}

func TestLedger_CompleteEmptyJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger(time.Hour, 10)
	require.NoError(t, ledger.Init(ctx, "job-1", "venues", 0))
	require.NoError(t, ledger.Complete(ctx, "job-1"))

	got, ok, err := ledger.Get(ctx, "job-1", 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, jobprogress.StatusCompleted, got.Status)
	assert.Zero(t, got.ProgressPercent)
}
