package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:           config.EnvDev,
		ServiceName:      "football-stats",
		HTTPAddr:         ":0",
		StorageDriver:    config.DriverMemory,
		LedgerDriver:     config.DriverMemory,
		LedgerTTL:        time.Hour,
		LedgerMaxErrors:  100,
		ChunkSize:        100,
		ChunkConcurrency: 2,
		WorkerPoolSize:   2,
		InternalJobToken: "token",
		CacheEnabled:     true,
		CacheTTL:         time.Minute,
	}
}

func TestNew_MemoryDrivers(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, err = a.Repos.Teams.BulkUpsert(context.Background(), []team.Team{{ID: 33, Name: "Manchester United"}})
	require.NoError(t, err)

	handler := a.HTTPHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"provider_circuit":"disabled"`)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/33", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Manchester United")

	srv, err := a.NewHTTPServer()
	require.NoError(t, err)
	assert.Equal(t, ":0", srv.Addr)
}

func TestNew_UpdateAllRunsThroughPool(t *testing.T) {
	t.Parallel()

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"get":"teams","parameters":{},"errors":[],"results":0,"paging":{"current":1,"total":1},"response":[]}`))
	}))
	t.Cleanup(provider.Close)

	cfg := memoryConfig()
	cfg.APIFootballBaseURL = provider.URL
	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, err = a.Repos.Teams.BulkUpsert(context.Background(), []team.Team{{ID: 33, Name: "Manchester United"}})
	require.NoError(t, err)

	jobID, err := a.Jobs.UpdateAll(context.Background(), "teams")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		progress, err := a.Jobs.Status(context.Background(), jobID)
		return err == nil && progress.Status == jobprogress.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	progress, err := a.Jobs.Status(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), progress.Total)
	assert.Equal(t, int64(1), progress.Failed)
}

func TestBuildRepositories_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"
	_, _, err := BuildRepositories(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestBuildLedger_BadRedisURL(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.LedgerDriver = config.DriverRedis
	cfg.RedisURL = "://not-a-url"
	_, _, err := BuildLedger(context.Background(), cfg, logging.NewNop())
	require.ErrorContains(t, err, "parse REDIS_URL")
}
