package scheduler

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-stats/internal/usecase"
)

type Sweeper interface {
	UpdateBySeason(ctx context.Context, domain string, season int) (usecase.SweepResult, error)
}

type TimezoneRefresher interface {
	Refresh(ctx context.Context) (usecase.Counts, error)
}

// SeasonSweepJob runs every domain for season in order. A failed domain is
// reported after the remaining domains have run.
func SeasonSweepJob(spec string, sweeps Sweeper, season int, domains []string) Job {
	return Job{
		Name: "season-sweep",
		Spec: spec,
		Run: func(ctx context.Context) error {
			var failed []string
			for _, domain := range domains {
				if _, err := sweeps.UpdateBySeason(ctx, domain, season); err != nil {
					failed = append(failed, domain)
				}
			}
			if len(failed) > 0 {
				return fmt.Errorf("season %d sweep failed for domains %v", season, failed)
			}
			return nil
		},
	}
}

func TimezoneJob(spec string, timezones TimezoneRefresher) Job {
	return Job{
		Name: "timezone-refresh",
		Spec: spec,
		Run: func(ctx context.Context) error {
			counts, err := timezones.Refresh(ctx)
			if err != nil {
				return err
			}
			if counts.Errors > 0 {
				return fmt.Errorf("timezone refresh reported %d errors", counts.Errors)
			}
			return nil
		},
	}
}
