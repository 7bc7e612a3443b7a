package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-stats/internal/domain/coach"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/normalizer"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
)

type PlayerService struct {
	deps
}

// UpdateByID refreshes one player profile.
func (s *PlayerService) UpdateByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateByID")
	defer span.End()

	if id <= 0 {
		return false, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	page, err := s.source.PlayerProfiles(ctx, feed.Query{Player: id})
	if err != nil {
		return false, fmt.Errorf("fetch player id=%d: %w", id, err)
	}

	var counts Counts
	records := make([]player.Player, 0, len(page.Entries))
	for _, entry := range page.Entries {
		record, err := normalizer.Player(entry.Player)
		if err != nil {
			counts.Errors++
			continue
		}
		if record.ID == id {
			records = append(records, record)
		}
	}
	records = batch.DedupeLast(records, playerKey)
	counts.Success = len(records)
	if !writeBatch(ctx, s.logger, "players", &counts, records, s.repos.Players.BulkUpsert) {
		return false, fmt.Errorf("store player id=%d: %w", id, ErrDependencyUnavailable)
	}
	return counts.Success > 0, nil
}

// UpdateByLeagueSeason walks the player listing of a league season and
// writes the players and their season statistics. Only players count
// towards success; statistics that cannot be stored count as errors.
func (s *PlayerService) UpdateByLeagueSeason(ctx context.Context, leagueID int64, season int, maxPages int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateByLeagueSeason")
	defer span.End()

	resolver := s.session()
	return walkPages(ctx, s.logger, "players", maxPages,
		func(ctx context.Context, page int) (feed.Page[feed.PlayerEntry], error) {
			return s.source.Players(ctx, feed.Query{League: leagueID, Season: season, Page: page})
		},
		func(ctx context.Context, entries []feed.PlayerEntry) Counts {
			return s.writePlayers(ctx, resolver, entries, leagueID, season)
		},
	)
}

func (s *PlayerService) writePlayers(ctx context.Context, resolver *Resolver, entries []feed.PlayerEntry, leagueID int64, season int) Counts {
	var (
		counts    Counts
		statError int
		players   = make([]player.Player, 0, len(entries))
		stats     = make([]playerstats.SeasonStat, 0, len(entries))
	)

	for _, entry := range entries {
		record, err := normalizer.Player(entry.Player)
		if err != nil {
			counts.Errors++
			s.logger.DebugContext(ctx, "player rejected", "player_id", entry.Player.ID, "error", err)
			continue
		}
		players = append(players, record)

		for _, block := range entry.Statistics {
			stat, err := normalizer.SeasonStat(record.ID, block, leagueID, season)
			if err != nil {
				statError++
				continue
			}
			if !s.ensureTeam(ctx, resolver, block.Team) || !s.ensureLeagueSeason(ctx, resolver, stat.LeagueID, stat.Season) {
				statError++
				s.logger.WarnContext(ctx, "season stat dependency unresolved",
					"player_id", stat.PlayerID, "team_id", stat.TeamID, "league_id", stat.LeagueID, "season", stat.Season)
				continue
			}
			stats = append(stats, stat)
		}
	}

	players = batch.DedupeLast(players, playerKey)
	counts.Success = len(players)
	if !writeBatch(ctx, s.logger, "players", &counts, players, s.repos.Players.BulkUpsert) {
		counts.Errors += statError + len(stats)
		return counts
	}

	stats = batch.DedupeLast(stats, func(st playerstats.SeasonStat) (seasonStatKey, bool) {
		return seasonStatKey{st.PlayerID, st.TeamID, st.LeagueID, st.Season}, st.PlayerID > 0
	})
	if _, err := s.repos.SeasonStats.BulkUpsert(ctx, stats); err != nil {
		s.logger.WarnContext(ctx, "batch write failed", "table", "player_season_stats", "records", len(stats), "error", err)
		statError += len(stats)
	}
	counts.Errors += statError
	return counts
}

type seasonStatKey struct {
	player, team, league int64
	season               int
}

func playerKey(p player.Player) (int64, bool) {
	return p.ID, p.ID > 0
}

type CoachService struct {
	deps
}

func (s *CoachService) UpdateByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoachService.UpdateByID")
	defer span.End()

	if id <= 0 {
		return false, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	page, err := s.source.Coaches(ctx, feed.Query{ID: id})
	if err != nil {
		return false, fmt.Errorf("fetch coach id=%d: %w", id, err)
	}

	counts, written := s.writeCoaches(ctx, s.session(), page.Entries)
	if !written {
		return false, fmt.Errorf("store coach id=%d: %w", id, ErrDependencyUnavailable)
	}
	return counts.Success > 0, nil
}

// UpdateByTeam refreshes every coach the source lists for a team.
func (s *CoachService) UpdateByTeam(ctx context.Context, teamID int64) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoachService.UpdateByTeam")
	defer span.End()

	if teamID <= 0 {
		return Counts{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	resolver := s.session()
	return walkPages(ctx, s.logger, "coachs", 0,
		func(ctx context.Context, page int) (feed.Page[feed.CoachEntry], error) {
			return s.source.Coaches(ctx, feed.Query{Team: teamID, Page: page})
		},
		func(ctx context.Context, entries []feed.CoachEntry) Counts {
			counts, _ := s.writeCoaches(ctx, resolver, entries)
			return counts
		},
	)
}

// writeCoaches rejects a coach whose current team cannot be resolved. False
// means the batch write failed.
func (s *CoachService) writeCoaches(ctx context.Context, resolver *Resolver, entries []feed.CoachEntry) (Counts, bool) {
	var counts Counts
	records := make([]coach.Coach, 0, len(entries))
	for _, entry := range entries {
		record, err := normalizer.Coach(entry)
		if err != nil {
			counts.Errors++
			s.logger.DebugContext(ctx, "coach rejected", "coach_id", entry.ID, "error", err)
			continue
		}
		if record.TeamID != nil && !s.ensureTeam(ctx, resolver, entry.Team) {
			counts.Errors++
			s.logger.WarnContext(ctx, "coach team unresolved", "coach_id", record.ID, "team_id", *record.TeamID)
			continue
		}
		records = append(records, record)
	}

	records = batch.DedupeLast(records, func(c coach.Coach) (int64, bool) { return c.ID, c.ID > 0 })
	counts.Success = len(records)
	written := writeBatch(ctx, s.logger, "coaches", &counts, records, s.repos.Coaches.BulkUpsert)
	return counts, written
}
