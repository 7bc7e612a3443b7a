// Package redis stores chunked job progress in a Redis hash, an error list
// and a set of recorded chunk labels. Mutations are MULTI blocks or a single
// script of increments and appends, so chunks finishing concurrently on
// different workers never lose updates and a redelivered chunk counts once.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

const (
	fieldDomain       = "domain"
	fieldTotal        = "total"
	fieldProcessed    = "processed"
	fieldSuccessful   = "successful"
	fieldFailed       = "failed"
	fieldStatus       = "status"
	fieldManagerError = "manager_error"
)

// recordChunkScript gates the increments on SADD of the chunk label.
// KEYS: state, errors, chunks. ARGV: label, processed, successful, failed,
// ttl seconds, max errors, entries...
var recordChunkScript = goredis.NewScript(`
if ARGV[1] ~= '' then
	if redis.call('SADD', KEYS[3], ARGV[1]) == 0 then
		return 0
	end
	redis.call('EXPIRE', KEYS[3], ARGV[5])
end
redis.call('HINCRBY', KEYS[1], 'processed', ARGV[2])
redis.call('HINCRBY', KEYS[1], 'successful', ARGV[3])
redis.call('HINCRBY', KEYS[1], 'failed', ARGV[4])
redis.call('EXPIRE', KEYS[1], ARGV[5])
if #ARGV > 6 then
	redis.call('RPUSH', KEYS[2], unpack(ARGV, 7))
	redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[6]) - 1)
	redis.call('EXPIRE', KEYS[2], ARGV[5])
end
return 1
`)

type Config struct {
	KeyPrefix string
	TTL       time.Duration
	MaxErrors int
}

type Ledger struct {
	client    goredis.Cmdable
	prefix    string
	ttl       time.Duration
	maxErrors int64
	logger    *logging.Logger
}

func NewLedger(client goredis.Cmdable, cfg Config, logger *logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "football-stats:job"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = 1000
	}
	return &Ledger{
		client:    client,
		prefix:    cfg.KeyPrefix,
		ttl:       cfg.TTL,
		maxErrors: int64(cfg.MaxErrors),
		logger:    logger,
	}
}

func (l *Ledger) stateKey(jobID string) string {
	return l.prefix + ":" + jobID
}

func (l *Ledger) errorsKey(jobID string) string {
	return l.prefix + ":" + jobID + ":errors"
}

func (l *Ledger) chunksKey(jobID string) string {
	return l.prefix + ":" + jobID + ":chunks"
}

func (l *Ledger) ttlSeconds() int64 {
	return max(int64(l.ttl/time.Second), 1)
}

func (l *Ledger) Init(ctx context.Context, jobID, domain string, total int64) error {
	state, errs := l.stateKey(jobID), l.errorsKey(jobID)
	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, errs, l.chunksKey(jobID))
		pipe.HSet(ctx, state,
			fieldDomain, domain,
			fieldTotal, total,
			fieldProcessed, 0,
			fieldSuccessful, 0,
			fieldFailed, 0,
			fieldStatus, jobprogress.StatusProcessing,
		)
		pipe.Expire(ctx, state, l.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("init job %s: %w", jobID, err)
	}
	return nil
}

func (l *Ledger) RecordChunk(ctx context.Context, jobID, chunk string, delta jobprogress.Delta, entries []jobprogress.ErrorEntry) (bool, error) {
	args := make([]any, 0, 6+len(entries))
	args = append(args, chunk, delta.Processed, delta.Successful, delta.Failed, l.ttlSeconds(), l.maxErrors)
	for _, entry := range entries {
		raw, err := sonic.MarshalString(entry)
		if err != nil {
			return false, fmt.Errorf("encode job error entry: %w", err)
		}
		args = append(args, raw)
	}

	keys := []string{l.stateKey(jobID), l.errorsKey(jobID), l.chunksKey(jobID)}
	applied, err := recordChunkScript.Run(ctx, l.client, keys, args...).Int64()
	if err != nil {
		return false, fmt.Errorf("record chunk %q for job %s: %w", chunk, jobID, err)
	}
	if applied == 0 {
		l.logger.InfoContext(ctx, "chunk already recorded", "job_id", jobID, "range", chunk)
		return false, nil
	}
	return true, nil
}

func (l *Ledger) Complete(ctx context.Context, jobID string) error {
	state := l.stateKey(jobID)
	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, state, fieldStatus, jobprogress.StatusCompleted)
		pipe.Expire(ctx, state, l.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("complete job %s: %w", jobID, err)
	}
	return nil
}

func (l *Ledger) MarkManagerError(ctx context.Context, jobID string, payload []byte) error {
	state := l.stateKey(jobID)
	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, state,
			fieldStatus, jobprogress.StatusErrorManagerTask,
			fieldManagerError, string(payload),
		)
		pipe.Expire(ctx, state, l.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("mark manager error for job %s: %w", jobID, err)
	}
	return nil
}

func (l *Ledger) Get(ctx context.Context, jobID string, errorLimit int) (jobprogress.Progress, bool, error) {
	if errorLimit <= 0 || errorLimit > jobprogress.DefaultErrorLimit {
		errorLimit = jobprogress.DefaultErrorLimit
	}

	var (
		stateCmd *goredis.MapStringStringCmd
		errsCmd  *goredis.StringSliceCmd
	)
	_, err := l.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		stateCmd = pipe.HGetAll(ctx, l.stateKey(jobID))
		errsCmd = pipe.LRange(ctx, l.errorsKey(jobID), 0, int64(errorLimit-1))
		return nil
	})
	if err != nil && !errors.Is(err, goredis.Nil) {
		return jobprogress.Progress{}, false, fmt.Errorf("get job %s: %w", jobID, err)
	}

	fields := stateCmd.Val()
	if len(fields) == 0 {
		return jobprogress.Progress{}, false, nil
	}

	p := jobprogress.Progress{
		JobID:        jobID,
		Domain:       fields[fieldDomain],
		Total:        parseCounter(fields[fieldTotal]),
		Processed:    parseCounter(fields[fieldProcessed]),
		Successful:   parseCounter(fields[fieldSuccessful]),
		Failed:       parseCounter(fields[fieldFailed]),
		Status:       fields[fieldStatus],
		ManagerError: fields[fieldManagerError],
		Errors:       make([]jobprogress.ErrorEntry, 0, len(errsCmd.Val())),
	}
	for _, raw := range errsCmd.Val() {
		var entry jobprogress.ErrorEntry
		if err := sonic.UnmarshalString(raw, &entry); err != nil {
			l.logger.WarnContext(ctx, "skip undecodable job error entry", "job_id", jobID, "error", err)
			continue
		}
		p.Errors = append(p.Errors, entry)
	}
	p.Finalize()
	return p, true, nil
}

func parseCounter(raw string) int64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
