package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

// Job is one cron entry. Run receives a context that is cancelled on Stop.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

type Scheduler struct {
	cron   *cron.Cron
	logger *logging.Logger
	jobs   []Job

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

func New(logger *logging.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.Named("scheduler"),
		jobs:   jobs,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers every job with a non-empty spec and starts the cron loop.
// An invalid spec fails the whole start.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	for _, job := range s.jobs {
		spec := strings.TrimSpace(job.Spec)
		if spec == "" || job.Run == nil {
			continue
		}
		if _, err := s.cron.AddFunc(spec, s.wrap(job)); err != nil {
			return fmt.Errorf("schedule job %s: %w", job.Name, err)
		}
		s.logger.Info("job scheduled", "job", job.Name, "spec", spec)
	}

	s.cron.Start()
	s.running = true
	return nil
}

// Stop cancels in-flight jobs and waits for them up to timeout.
func (s *Scheduler) Stop(timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.cancel()

	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(timeout):
		s.logger.Warn("scheduler stop timed out", "timeout", timeout.String())
	}
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) wrap(job Job) func() {
	return func() {
		start := time.Now()
		s.logger.InfoContext(s.ctx, "scheduled job started", "job", job.Name)
		if err := job.Run(s.ctx); err != nil {
			s.logger.ErrorContext(s.ctx, "scheduled job failed", "job", job.Name, "error", err, "duration", time.Since(start).String())
			return
		}
		s.logger.InfoContext(s.ctx, "scheduled job finished", "job", job.Name, "duration", time.Since(start).String())
	}
}
