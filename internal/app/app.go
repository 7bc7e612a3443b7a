package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/football-stats/external/apifootball"
	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/football-stats/internal/infrastructure/scheduler"
	"github.com/riskibarqy/football-stats/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/football-stats/internal/platform/id"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/platform/resilience"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

const poolDrainTimeout = 30 * time.Second

// App is the wired service: provider client, storage, ledger, chunk
// dispatch and orchestrators. The API server and the CLI share it.
type App struct {
	Config    config.Config
	Logger    *logging.Logger
	Provider  *apifootball.Client
	Repos     usecase.Repositories
	Services  *usecase.Services
	Jobs      *usecase.ChunkJobService
	Scheduler *scheduler.Scheduler

	pool    *jobqueue.PoolDispatcher
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	repos, closeRepos, err := BuildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build repositories: %w", err)
	}
	a.Repos = repos
	a.closers = append(a.closers, closeRepos)

	ledger, closeLedger, err := BuildLedger(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build ledger: %w", err)
	}
	a.closers = append(a.closers, closeLedger)

	a.Provider = apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:       cfg.APIFootballBaseURL,
		APIKey:        cfg.APIFootballKey,
		Timeout:       cfg.APIFootballTimeout,
		RatePerMinute: cfg.APIFootballRatePerMinute,
		Logger:        logger.Named("apifootball"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMax,
		},
	})
	a.Services = usecase.NewServices(a.Provider, repos, logger)

	dispatcher, err := a.buildDispatcher(cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Jobs = usecase.NewChunkJobService(ledger, dispatcher, a.Services.ChunkTasks, idgen.NewUUIDGenerator(), usecase.ChunkJobConfig{
		ChunkSize:   cfg.ChunkSize,
		Concurrency: cfg.ChunkConcurrency,
	}, logger)

	a.Scheduler = scheduler.New(logger,
		scheduler.SeasonSweepJob(cfg.SchedulerSweepCron, a.Services.Sweeps, cfg.SchedulerSeason, cfg.SchedulerSweepDomains),
		scheduler.TimezoneJob(cfg.SchedulerTimezoneCron, a.Services.Timezones),
	)

	logger.InfoContext(ctx, "app wired",
		"storage", cfg.StorageDriver,
		"ledger", cfg.LedgerDriver,
		"qstash", cfg.QStashEnabled,
		"cache", cfg.CacheEnabled,
	)
	return a, nil
}

// buildDispatcher picks QStash when enabled, otherwise the in-process pool
// that runs chunks through the job service.
func (a *App) buildDispatcher(cfg config.Config, logger *logging.Logger) (usecase.Dispatcher, error) {
	if cfg.QStashEnabled {
		return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
		}, logger.Named("qstash")), nil
	}

	pool, err := jobqueue.NewPoolDispatcher(cfg.WorkerPoolSize, func(ctx context.Context, task jobprogress.ChunkTask) error {
		return a.Jobs.RunChunk(ctx, task)
	}, logger.Named("chunks"))
	if err != nil {
		return nil, err
	}
	a.pool = pool
	return pool, nil
}

func (a *App) HTTPHandler() http.Handler {
	handler := httpapi.NewHandler(httpapi.Dependencies{
		Entities:         a.Services.Registry,
		Sweeps:           a.Services.Sweeps,
		Jobs:             a.Jobs,
		Teams:            a.Repos.Teams,
		Fixtures:         a.Repos.Fixtures,
		Events:           a.Repos.Events,
		RefreshTimezones: a.Services.Timezones.Refresh,
		RefreshCountries: a.Services.Countries.RefreshAll,
		ProviderBreaker:  a.Provider.BreakerState,
		DefaultMaxPages:  a.Config.APIFootballMaxPages,
	}, a.Logger)

	return httpapi.NewRouter(handler, a.Logger, a.Config.CORSAllowedOrigins, a.Config.InternalJobToken)
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      a.HTTPHandler(),
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}, nil
}

// Close drains in-process chunks, then releases the ledger and storage.
func (a *App) Close() error {
	var errs []error
	if a.pool != nil {
		if err := a.pool.Close(poolDrainTimeout); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
