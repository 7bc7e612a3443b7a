// Package memory is the single-process job progress ledger used in dev and
// tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
)

type job struct {
	progress  jobprogress.Progress
	chunks    map[string]struct{}
	expiresAt time.Time
}

type Ledger struct {
	mu        sync.Mutex
	jobs      map[string]*job
	ttl       time.Duration
	maxErrors int
	now       func() time.Time
}

func NewLedger(ttl time.Duration, maxErrors int) *Ledger {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if maxErrors <= 0 {
		maxErrors = 1000
	}
	return &Ledger{
		jobs:      make(map[string]*job),
		ttl:       ttl,
		maxErrors: maxErrors,
		now:       time.Now,
	}
}

// lookup returns the live job, creating it when create is set. Callers hold mu.
func (l *Ledger) lookup(jobID string, create bool) *job {
	j, ok := l.jobs[jobID]
	if ok && !j.expiresAt.After(l.now()) {
		delete(l.jobs, jobID)
		ok = false
	}
	if !ok {
		if !create {
			return nil
		}
		j = &job{progress: jobprogress.Progress{JobID: jobID}, chunks: make(map[string]struct{})}
		l.jobs[jobID] = j
	}
	j.expiresAt = l.now().Add(l.ttl)
	return j
}

func (l *Ledger) Init(_ context.Context, jobID, domain string, total int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jobs[jobID] = &job{
		progress: jobprogress.Progress{
			JobID:  jobID,
			Domain: domain,
			Total:  total,
			Status: jobprogress.StatusProcessing,
		},
		chunks:    make(map[string]struct{}),
		expiresAt: l.now().Add(l.ttl),
	}
	return nil
}

func (l *Ledger) RecordChunk(_ context.Context, jobID, chunk string, delta jobprogress.Delta, errs []jobprogress.ErrorEntry) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	j := l.lookup(jobID, true)
	if chunk != "" {
		if _, done := j.chunks[chunk]; done {
			return false, nil
		}
		j.chunks[chunk] = struct{}{}
	}
	j.progress.Processed += delta.Processed
	j.progress.Successful += delta.Successful
	j.progress.Failed += delta.Failed
	for _, entry := range errs {
		if len(j.progress.Errors) >= l.maxErrors {
			break
		}
		j.progress.Errors = append(j.progress.Errors, entry)
	}
	return true, nil
}

func (l *Ledger) Complete(_ context.Context, jobID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	j := l.lookup(jobID, true)
	if j.progress.Status != jobprogress.StatusErrorManagerTask {
		j.progress.Status = jobprogress.StatusCompleted
	}
	return nil
}

func (l *Ledger) MarkManagerError(_ context.Context, jobID string, payload []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	j := l.lookup(jobID, true)
	j.progress.Status = jobprogress.StatusErrorManagerTask
	j.progress.ManagerError = string(payload)
	return nil
}

func (l *Ledger) Get(_ context.Context, jobID string, errorLimit int) (jobprogress.Progress, bool, error) {
	if errorLimit <= 0 || errorLimit > jobprogress.DefaultErrorLimit {
		errorLimit = jobprogress.DefaultErrorLimit
	}

	l.mu.Lock()
	j := l.lookup(jobID, false)
	if j == nil {
		l.mu.Unlock()
		return jobprogress.Progress{}, false, nil
	}
	p := j.progress
	n := min(len(p.Errors), errorLimit)
	p.Errors = append(make([]jobprogress.ErrorEntry, 0, n), p.Errors[:n]...)
	l.mu.Unlock()

	p.Finalize()
	return p, true, nil
}
