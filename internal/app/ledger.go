package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	memoryledger "github.com/riskibarqy/football-stats/internal/infrastructure/ledger/memory"
	redisledger "github.com/riskibarqy/football-stats/internal/infrastructure/ledger/redis"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

func BuildLedger(ctx context.Context, cfg config.Config, logger *logging.Logger) (jobprogress.Ledger, func() error, error) {
	switch cfg.LedgerDriver {
	case config.DriverMemory:
		return memoryledger.NewLedger(cfg.LedgerTTL, cfg.LedgerMaxErrors), func() error { return nil }, nil
	case config.DriverRedis:
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.InfoContext(ctx, "redis ledger connected", "addr", opts.Addr, "db", opts.DB)
		return redisledger.NewLedger(client, redisledger.Config{
			KeyPrefix: cfg.LedgerKeyPrefix,
			TTL:       cfg.LedgerTTL,
			MaxErrors: cfg.LedgerMaxErrors,
		}, logger), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported ledger driver %q", cfg.LedgerDriver)
	}
}
