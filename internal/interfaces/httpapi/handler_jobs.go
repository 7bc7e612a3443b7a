package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

func (h *Handler) UpdateAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateAll")
	defer span.End()

	if h.deps.Jobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: chunk jobs are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	domain := r.PathValue("domain")
	jobID, err := h.deps.Jobs.UpdateAll(ctx, domain)
	if err != nil {
		h.logger.WarnContext(ctx, "start update all failed", "domain", domain, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetJob")
	defer span.End()

	if h.deps.Jobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: chunk jobs are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	progress, err := h.deps.Jobs.Status(ctx, r.PathValue("jobID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, progress)
}

// RunChunk is the queue callback for one chunk. Failures that were already
// written to the ledger are acknowledged so the queue does not redeliver
// and count the chunk twice.
func (h *Handler) RunChunk(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunChunk")
	defer span.End()

	if h.deps.Jobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: chunk jobs are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var task jobprogress.ChunkTask
	if err := decodeJSON(r, &task); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(task); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.deps.Jobs.RunChunk(ctx, task); err != nil {
		if errors.Is(err, usecase.ErrDependencyUnavailable) {
			h.logger.ErrorContext(ctx, "chunk not recorded", "job_id", task.JobID, "range", task.Range, "error", err)
			writeError(ctx, w, err)
			return
		}
		h.logger.WarnContext(ctx, "chunk failed", "job_id", task.JobID, "range", task.Range, "error", err)
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"job_id": task.JobID,
		"range":  task.Range,
	})
}
