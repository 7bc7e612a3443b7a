package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, cfg Config) (*Ledger, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLedger(client, cfg, logging.NewNop()), srv
}

func TestLedger_ReconcilesConcurrentChunks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger, _ := newTestLedger(t, Config{TTL: time.Hour})
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
	assert.Equal(t, "players", got.Domain)
	assert.Equal(t, int64(250), got.Total)
	assert.Equal(t, int64(250), got.Processed)
	assert.Equal(t, got.Processed, got.Successful+got.Failed)
	assert.Equal(t, jobprogress.StatusCompleted, got.Status)
	assert.InDelta(t, 100.0, got.ProgressPercent, 0.0001)
	assert.Len(t, got.Errors, 3)
}

func TestLedger_ProcessingUntilAllChunksReport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger, _ := newTestLedger(t, Config{})
	require.NoError(t, ledger.Init(ctx, "job-2", "teams", 250))
	_, err := ledger.RecordChunk(ctx, "job-2", "", jobprogress.Delta{Processed: 100, Successful: 100}, nil)
	require.NoError(t, err)

	got, _, err := ledger.Get(ctx, "job-2", 10)
	require.NoError(t, err)
	assert.Equal(t, jobprogress.StatusProcessing, got.Status)
	assert.InDelta(t, 40.0, got.ProgressPercent, 0.0001)
	assert.Empty(t, got.Errors)
}

func TestLedger_CapsStoredAndReturnedErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger, srv := newTestLedger(t, Config{MaxErrors: 120})
	require.NoError(t, ledger.Init(ctx, "job-3", "venues", 300))

	errs := make([]jobprogress.ErrorEntry, 300)
	for i := range errs {
		errs[i] = jobprogress.ErrorEntry{RangeOrID: fmt.Sprint(i), ErrorMessage: "failed"}
	}
	_, err := ledger.RecordChunk(ctx, "job-3", "", jobprogress.Delta{Processed: 300, Failed: 300}, errs)
	require.NoError(t, err)

	stored, err := srv.List(ledger.errorsKey("job-3"))
	require.NoError(t, err)
	assert.Len(t, stored, 120)

	got, _, err := ledger.Get(ctx, "job-3", 1000)
	require.NoError(t, err)
	assert.Len(t, got.Errors, jobprogress.DefaultErrorLimit)
	assert.Equal(t, "0", got.Errors[0].RangeOrID)
}

func TestLedger_ManagerErrorAndExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger, srv := newTestLedger(t, Config{TTL: time.Minute})
	require.NoError(t, ledger.Init(ctx, "job-4", "coaches", 0))
	require.NoError(t, ledger.MarkManagerError(ctx, "job-4", []byte(`{"status":"error_manager_task","error":"boom"}`)))

	got, ok, err := ledger.Get(ctx, "job-4", 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, jobprogress.StatusErrorManagerTask, got.Status)
	assert.Zero(t, got.ProgressPercent)

	srv.FastForward(2 * time.Minute)
	_, ok, err = ledger.Get(ctx, "job-4", 10)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedger_UnknownJob(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t, Config{})
	_, ok, err := ledger.Get(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedger_RedeliveredChunkCountsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger, srv := newTestLedger(t, Config{TTL: time.Hour})
	require.NoError(t, ledger.Init(ctx, "job-5", "players", 150))

	errs := []jobprogress.ErrorEntry{{RangeOrID: "7", ErrorMessage: "boom"}}
	delta := jobprogress.Delta{Processed: 100, Successful: 99, Failed: 1}
	recorded, err := ledger.RecordChunk(ctx, "job-5", "1-100", delta, errs)
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = ledger.RecordChunk(ctx, "job-5", "1-100", delta, errs)
	require.NoError(t, err)
	assert.False(t, recorded)

	got, _, err := ledger.Get(ctx, "job-5", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Processed)
	assert.Equal(t, int64(99), got.Successful)
	assert.Len(t, got.Errors, 1)
	assert.Equal(t, jobprogress.StatusProcessing, got.Status)

	members, err := srv.Members(ledger.chunksKey("job-5"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1-100"}, members)
	assert.Greater(t, srv.TTL(ledger.chunksKey("job-5")), time.Duration(0))

	require.NoError(t, ledger.Init(ctx, "job-5", "players", 150))
	assert.False(t, srv.Exists(ledger.chunksKey("job-5")))
}

func TestLedger_CompleteEmptyJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger, _ := newTestLedger(t, Config{})
	require.NoError(t, ledger.Init(ctx, "job-6", "coaches", 0))
	require.NoError(t, ledger.Complete(ctx, "job-6"))

	got, ok, err := ledger.Get(ctx, "job-6", 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, jobprogress.StatusCompleted, got.Status)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.ProgressPercent)
}
