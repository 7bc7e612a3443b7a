// Package jobprogress describes the shared ledger that chunked "update all"
// jobs report into.
package jobprogress

import "context"

const (
	StatusProcessing       = "processing"
	StatusCompleted        = "completed"
	StatusErrorManagerTask = "error_manager_task"
	DefaultErrorLimit      = 100
)

type ErrorEntry struct {
	RangeOrID    string `json:"range_or_id"`
	ErrorMessage string `json:"error_message"`
}

// Delta is what one chunk adds to the shared counters.
type Delta struct {
	Processed  int64
	Successful int64
	Failed     int64
}

type Progress struct {
	JobID           string       `json:"job_id"`
	Domain          string       `json:"domain"`
	Total           int64        `json:"total"`
	Processed       int64        `json:"processed"`
	Successful      int64        `json:"successful"`
	Failed          int64        `json:"failed"`
	Status          string       `json:"status"`
	ProgressPercent float64      `json:"progress_percent"`
	Errors          []ErrorEntry `json:"errors"`
	ManagerError    string       `json:"manager_error,omitempty"`
}

// Finalize derives the percentage and the reported status from the raw
// counters. A manager error always wins, and a stored completed status is
// kept even when Total is 0.
func (p *Progress) Finalize() {
	p.ProgressPercent = 0
	if p.Total > 0 {
		p.ProgressPercent = float64(p.Processed) / float64(p.Total) * 100
	}
	if p.Status == StatusErrorManagerTask {
		return
	}
	if p.Total > 0 && p.Processed >= p.Total {
		p.Status = StatusCompleted
	}
}

// Ledger mutations must be atomic increments and appends on the store side.
//
// RecordChunk applies a chunk's delta at most once per chunk label; a
// repeated label is ignored and reported as recorded=false. An empty label
// is never deduplicated. Complete marks a job that had nothing to dispatch.
type Ledger interface {
	Init(ctx context.Context, jobID, domain string, total int64) error
	RecordChunk(ctx context.Context, jobID, chunk string, delta Delta, errs []ErrorEntry) (recorded bool, err error)
	Complete(ctx context.Context, jobID string) error
	MarkManagerError(ctx context.Context, jobID string, payload []byte) error
	Get(ctx context.Context, jobID string, errorLimit int) (Progress, bool, error)
}

// ChunkTask is one contiguous slice of a job's id space. Range is the
// human readable "start-end" label recorded against chunk level failures.
type ChunkTask struct {
	JobID  string  `json:"job_id" validate:"required"`
	Domain string  `json:"domain" validate:"required"`
	Range  string  `json:"range"`
	IDs    []int64 `json:"ids" validate:"required,min=1"`
}
