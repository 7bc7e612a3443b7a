// Command ingest runs ingestion operations from a terminal against the
// same storage and ledger the API uses.
//
// Usage:
//
//	ingest entity team 33
//	ingest league-season fixtures --league 39 --season 2023
//	ingest season teams --season 2024
//	ingest all players --wait
//	ingest status 0b7c7f5e-...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/football-stats/internal/app"
	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var logger = logging.NewConsole(logging.ParseLevel("info"))

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "ingest",
		Short:         "football-stats ingestion CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		entityCmd(),
		leagueSeasonCmd(),
		seasonCmd(),
		leagueCmd(),
		allCmd(),
		statusCmd(),
		timezonesCmd(),
		countriesCmd(),
	)

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func entityCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "entity <kind> <id>",
		Short: "Refresh one entity (country, league-season, venue, team, player, coach, fixture)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := usecase.ParseRef(args[0], args[1], season)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app.App) error {
				if err := a.Services.Registry.Refresh(ctx, ref); err != nil {
					return err
				}
				return printJSON(map[string]any{"ref": ref.String(), "refreshed": true})
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year, required for league-season")
	return cmd
}

func leagueSeasonCmd() *cobra.Command {
	var (
		leagueID int64
		season   int
		maxPages int
	)
	cmd := &cobra.Command{
		Use:   "league-season <domain>",
		Short: "Ingest one domain for a single league season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				pages := maxPages
				if pages <= 0 {
					pages = a.Config.APIFootballMaxPages
				}
				counts, err := a.Services.Sweeps.UpdateByLeagueSeason(ctx, args[0], leagueID, season, pages)
				if err != nil {
					return err
				}
				return printJSON(counts)
			})
		},
	}
	cmd.Flags().Int64Var(&leagueID, "league", 0, "League ID")
	cmd.Flags().IntVar(&season, "season", 0, "Season year")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Page cap, defaults to API_FOOTBALL_MAX_PAGES")
	_ = cmd.MarkFlagRequired("league")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func seasonCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "season <domain>",
		Short: "Ingest one domain for every stored league of a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				result, err := a.Services.Sweeps.UpdateBySeason(ctx, args[0], season)
				if err != nil {
					return err
				}
				return printJSON(result)
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func leagueCmd() *cobra.Command {
	var leagueID int64
	cmd := &cobra.Command{
		Use:   "league <domain>",
		Short: "Ingest one domain for every stored season of a league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				result, err := a.Services.Sweeps.UpdateByLeague(ctx, args[0], leagueID)
				if err != nil {
					return err
				}
				return printJSON(result)
			})
		},
	}
	cmd.Flags().Int64Var(&leagueID, "league", 0, "League ID")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

func allCmd() *cobra.Command {
	var (
		wait     bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "all <domain>",
		Short: "Refresh every stored id of a domain as a chunked job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				jobID, err := a.Jobs.UpdateAll(ctx, args[0])
				if err != nil {
					return err
				}
				if !wait {
					if !a.Config.QStashEnabled {
						logger.Warn("in-process chunks are drained on exit; pass --wait to follow progress")
					}
					return printJSON(map[string]string{"job_id": jobID})
				}
				progress, err := waitForJob(ctx, a.Jobs, jobID, interval)
				if err != nil {
					return err
				}
				return printJSON(progress)
			})
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll the ledger until the job completes")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Poll interval with --wait")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the ledger state of a chunked job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				progress, err := a.Jobs.Status(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(progress)
			})
		},
	}
}

func timezonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timezones",
		Short: "Replace the stored timezone list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				counts, err := a.Services.Timezones.Refresh(ctx)
				if err != nil {
					return err
				}
				return printJSON(counts)
			})
		},
	}
}

func countriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "Reload the country reference list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				counts, err := a.Services.Countries.RefreshAll(ctx)
				if err != nil {
					return err
				}
				return printJSON(counts)
			})
		},
	}
}

type jobStatusReader interface {
	Status(ctx context.Context, jobID string) (jobprogress.Progress, error)
}

func waitForJob(ctx context.Context, jobs jobStatusReader, jobID string, interval time.Duration) (jobprogress.Progress, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		progress, err := jobs.Status(ctx, jobID)
		if err != nil {
			return jobprogress.Progress{}, err
		}
		switch progress.Status {
		case jobprogress.StatusCompleted:
			return progress, nil
		case jobprogress.StatusErrorManagerTask:
			return progress, fmt.Errorf("job %s failed: %s", jobID, progress.ManagerError)
		}
		logger.Info("job progress", "job_id", jobID, "processed", progress.Processed, "total", progress.Total,
			"percent", fmt.Sprintf("%.1f", progress.ProgressPercent))

		select {
		case <-ctx.Done():
			return progress, ctx.Err()
		case <-ticker.C:
		}
	}
}

// withApp handles config loading, wiring and interrupt cancellation.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	start := time.Now()
	err = fn(ctx, a)
	logger.Debug("command finished", "duration", time.Since(start).Round(time.Millisecond))
	return err
}

func printJSON(v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
