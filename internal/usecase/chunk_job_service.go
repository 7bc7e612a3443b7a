package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/observability"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
	idgen "github.com/riskibarqy/football-stats/internal/platform/id"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// ChunkDomain is an "update all" target: how to list the stored ids and
// how to refresh one of them.
type ChunkDomain struct {
	List   func(ctx context.Context) ([]int64, error)
	Update func(ctx context.Context, id int64) error
}

// Dispatcher hands a chunk to whatever runs it: the in-process pool or a
// queue that calls back into RunChunk.
type Dispatcher interface {
	Dispatch(ctx context.Context, task jobprogress.ChunkTask) error
}

type ChunkJobConfig struct {
	ChunkSize   int
	Concurrency int
}

type ChunkJobService struct {
	ledger     jobprogress.Ledger
	dispatcher Dispatcher
	domains    map[string]ChunkDomain
	ids        idgen.Generator
	cfg        ChunkJobConfig
	logger     *logging.Logger
	spawn      func(func())
	encode     func(any) ([]byte, error)
}

func NewChunkJobService(
	ledger jobprogress.Ledger,
	dispatcher Dispatcher,
	domains map[string]ChunkDomain,
	ids idgen.Generator,
	cfg ChunkJobConfig,
	logger *logging.Logger,
) *ChunkJobService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &ChunkJobService{
		ledger:     ledger,
		dispatcher: dispatcher,
		domains:    domains,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
		spawn:      func(fn func()) { go fn() },
		encode:     sonic.Marshal,
	}
}

// UpdateAll starts a background refresh of every stored id of domain and
// returns the job id to poll.
func (s *ChunkJobService) UpdateAll(ctx context.Context, domain string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChunkJobService.UpdateAll")
	defer span.End()

	domain = strings.ToLower(strings.TrimSpace(domain))
	target, ok := s.domains[domain]
	if !ok {
		return "", fmt.Errorf("%w: domain %q does not support update all", ErrInvalidInput, domain)
	}
	jobID, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate job id: %w", err)
	}
	if err := s.ledger.Init(ctx, jobID, domain, 0); err != nil {
		return "", fmt.Errorf("init job %s: %w", jobID, err)
	}

	managerCtx := context.WithoutCancel(ctx)
	s.spawn(func() { s.manage(managerCtx, jobID, domain, target) })

	s.logger.InfoContext(ctx, "update all job started", "job_id", jobID, "domain", domain)
	return jobID, nil
}

func (s *ChunkJobService) manage(ctx context.Context, jobID, domain string, target ChunkDomain) {
	defer func() {
		if r := recover(); r != nil {
			s.failManager(ctx, jobID, fmt.Errorf("manager panic: %v", r))
		}
	}()

	ids, err := target.List(ctx)
	if err != nil {
		s.failManager(ctx, jobID, fmt.Errorf("list %s ids: %w", domain, err))
		return
	}
	if err := s.ledger.Init(ctx, jobID, domain, int64(len(ids))); err != nil {
		s.failManager(ctx, jobID, fmt.Errorf("init job total: %w", err))
		return
	}

	if len(ids) == 0 {
		if err := s.ledger.Complete(ctx, jobID); err != nil {
			s.failManager(ctx, jobID, fmt.Errorf("complete empty job: %w", err))
			return
		}
		s.logger.InfoContext(ctx, "update all job has nothing to refresh", "job_id", jobID, "domain", domain)
		return
	}

	ranges := batch.Partition(len(ids), s.cfg.ChunkSize)
	for _, r := range ranges {
		chunk := ids[r.Start:r.End]
		task := jobprogress.ChunkTask{
			JobID:  jobID,
			Domain: domain,
			Range:  rangeLabel(chunk),
			IDs:    chunk,
		}
		if err := s.dispatcher.Dispatch(ctx, task); err != nil {
			s.logger.WarnContext(ctx, "dispatch chunk failed", "job_id", jobID, "range", task.Range, "error", err)
			s.recordChunkFailure(ctx, task, fmt.Errorf("dispatch chunk: %w", err))
		}
	}

	s.logger.InfoContext(ctx, "update all job dispatched", "job_id", jobID, "domain", domain, "total", len(ids), "chunks", len(ranges))
}

// RunChunk refreshes every id of one chunk and reports the outcome to the
// ledger once. A chunk that cannot run at all is recorded as failed as a
// whole.
func (s *ChunkJobService) RunChunk(ctx context.Context, task jobprogress.ChunkTask) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChunkJobService.RunChunk",
		attribute.String("football_stats.job_id", task.JobID),
		attribute.String("football_stats.range", task.Range),
	)
	defer span.End()

	target, ok := s.domains[task.Domain]
	if !ok {
		cause := fmt.Errorf("%w: unknown domain %q", ErrInvalidInput, task.Domain)
		observability.IncChunkRun(task.Domain, "failed")
		s.recordChunkFailure(ctx, task, cause)
		return cause
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chunk %s panic: %v", task.Range, r)
			observability.IncChunkRun(task.Domain, "failed")
			s.recordChunkFailure(ctx, task, err)
		}
	}()

	var (
		mu        sync.Mutex
		errs      []jobprogress.ErrorEntry
		succeeded atomic.Int64
	)
	p := pool.New().WithMaxGoroutines(s.cfg.Concurrency)
	for _, id := range task.IDs {
		p.Go(func() {
			if err := target.Update(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, jobprogress.ErrorEntry{
					RangeOrID:    strconv.FormatInt(id, 10),
					ErrorMessage: err.Error(),
				})
				mu.Unlock()
				return
			}
			succeeded.Add(1)
		})
	}
	p.Wait()

	size := int64(len(task.IDs))
	delta := jobprogress.Delta{Processed: size, Successful: succeeded.Load(), Failed: size - succeeded.Load()}
	outcome := "ok"
	if delta.Failed > 0 {
		outcome = "partial"
	}
	recorded, err := s.ledger.RecordChunk(ctx, task.JobID, task.Range, delta, errs)
	if err != nil {
		return fmt.Errorf("%w: record chunk %s: %v", ErrDependencyUnavailable, task.Range, err)
	}
	if !recorded {
		outcome = "duplicate"
	}
	observability.IncChunkRun(task.Domain, outcome)
	return nil
}

func (s *ChunkJobService) Status(ctx context.Context, jobID string) (jobprogress.Progress, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChunkJobService.Status")
	defer span.End()

	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return jobprogress.Progress{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	progress, ok, err := s.ledger.Get(ctx, jobID, jobprogress.DefaultErrorLimit)
	if err != nil {
		return jobprogress.Progress{}, fmt.Errorf("get job %s: %w", jobID, err)
	}
	if !ok {
		return jobprogress.Progress{}, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}
	return progress, nil
}

func (s *ChunkJobService) Domains() []string {
	out := make([]string, 0, len(s.domains))
	for name := range s.domains {
		out = append(out, name)
	}
	return out
}

func (s *ChunkJobService) recordChunkFailure(ctx context.Context, task jobprogress.ChunkTask, cause error) {
	size := int64(len(task.IDs))
	delta := jobprogress.Delta{Processed: size, Failed: size}
	entry := jobprogress.ErrorEntry{RangeOrID: task.Range, ErrorMessage: cause.Error()}
	if _, err := s.ledger.RecordChunk(ctx, task.JobID, task.Range, delta, []jobprogress.ErrorEntry{entry}); err != nil {
		s.logger.ErrorContext(ctx, "record chunk failure failed", "job_id", task.JobID, "range", task.Range, "error", err)
	}
}

type managerError struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func (s *ChunkJobService) failManager(ctx context.Context, jobID string, cause error) {
	s.logger.ErrorContext(ctx, "update all manager failed", "job_id", jobID, "error", cause)

	payload, err := s.encode(managerError{Status: jobprogress.StatusErrorManagerTask, Error: cause.Error()})
	if err != nil {
		payload = []byte(`{"status":"` + jobprogress.StatusErrorManagerTask + `","error":` + strconv.Quote(cause.Error()) + `}`)
	}
	if err := s.ledger.MarkManagerError(ctx, jobID, payload); err != nil {
		s.logger.ErrorContext(ctx, "mark manager error failed", "job_id", jobID, "error", err)
	}
}

func rangeLabel(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	return strconv.FormatInt(ids[0], 10) + "-" + strconv.FormatInt(ids[len(ids)-1], 10)
}
