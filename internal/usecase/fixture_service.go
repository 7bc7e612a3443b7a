package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/normalizer"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
)

type FixtureService struct {
	deps
}

// UpdateByID refreshes one match and the events, lineups, statistics and
// player statistics embedded in the by-id payload.
func (s *FixtureService) UpdateByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateByID")
	defer span.End()

	if id <= 0 {
		return false, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	page, err := s.source.Fixtures(ctx, feed.Query{ID: id})
	if err != nil {
		return false, fmt.Errorf("fetch fixture id=%d: %w", id, err)
	}

	resolver := s.session()
	_, stored, written := s.writeFixtures(ctx, resolver, page.Entries)
	if !written {
		return false, fmt.Errorf("store fixture id=%d: %w", id, ErrDependencyUnavailable)
	}
	if _, ok := stored[id]; !ok {
		return false, nil
	}

	for _, entry := range page.Entries {
		if entry.Fixture.ID != id {
			continue
		}
		var details Counts
		details.Add(s.writeEvents(ctx, resolver, id, entry.Events))
		details.Add(s.writeLineups(ctx, resolver, id, entry.Lineups))
		details.Add(s.writeStatistics(ctx, resolver, id, entry.Statistics))
		details.Add(s.writePlayerStats(ctx, resolver, id, entry.Players))
		s.logger.DebugContext(ctx, "fixture details stored", "fixture_id", id, "success", details.Success, "errors", details.Errors)
		break
	}
	return true, nil
}

// UpdateByLeagueSeason walks the fixture listing of a league season.
func (s *FixtureService) UpdateByLeagueSeason(ctx context.Context, leagueID int64, season int, maxPages int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateByLeagueSeason")
	defer span.End()

	resolver := s.session()
	return walkPages(ctx, s.logger, "fixtures", maxPages,
		func(ctx context.Context, page int) (feed.Page[feed.FixtureEntry], error) {
			return s.source.Fixtures(ctx, feed.Query{League: leagueID, Season: season, Page: page})
		},
		func(ctx context.Context, entries []feed.FixtureEntry) Counts {
			counts, _, _ := s.writeFixtures(ctx, resolver, entries)
			return counts
		},
	)
}

func (s *FixtureService) UpdateEventsByLeagueSeason(ctx context.Context, leagueID int64, season int, _ int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateEventsByLeagueSeason")
	defer span.End()

	return s.eachStoredFixture(ctx, "fixtures/events", leagueID, season, func(ctx context.Context, r *Resolver, id int64) (Counts, error) {
		page, err := s.source.FixtureEvents(ctx, id)
		if err != nil {
			return Counts{}, err
		}
		return s.writeEvents(ctx, r, id, page.Entries), nil
	})
}

func (s *FixtureService) UpdateLineupsByLeagueSeason(ctx context.Context, leagueID int64, season int, _ int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateLineupsByLeagueSeason")
	defer span.End()

	return s.eachStoredFixture(ctx, "fixtures/lineups", leagueID, season, func(ctx context.Context, r *Resolver, id int64) (Counts, error) {
		page, err := s.source.FixtureLineups(ctx, id)
		if err != nil {
			return Counts{}, err
		}
		return s.writeLineups(ctx, r, id, page.Entries), nil
	})
}

func (s *FixtureService) UpdateStatisticsByLeagueSeason(ctx context.Context, leagueID int64, season int, _ int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateStatisticsByLeagueSeason")
	defer span.End()

	return s.eachStoredFixture(ctx, "fixtures/statistics", leagueID, season, func(ctx context.Context, r *Resolver, id int64) (Counts, error) {
		page, err := s.source.FixtureStatistics(ctx, id)
		if err != nil {
			return Counts{}, err
		}
		return s.writeStatistics(ctx, r, id, page.Entries), nil
	})
}

func (s *FixtureService) UpdatePlayerStatsByLeagueSeason(ctx context.Context, leagueID int64, season int, _ int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdatePlayerStatsByLeagueSeason")
	defer span.End()

	return s.eachStoredFixture(ctx, "fixtures/players", leagueID, season, func(ctx context.Context, r *Resolver, id int64) (Counts, error) {
		page, err := s.source.FixturePlayers(ctx, id)
		if err != nil {
			return Counts{}, err
		}
		return s.writePlayerStats(ctx, r, id, page.Entries), nil
	})
}

// eachStoredFixture runs fn for every stored match of a league season. A
// failed match costs one error and the walk moves on.
func (s *FixtureService) eachStoredFixture(ctx context.Context, name string, leagueID int64, season int, fn func(context.Context, *Resolver, int64) (Counts, error)) (Counts, error) {
	ids, err := s.repos.Fixtures.ListIDsByLeagueSeason(ctx, leagueID, season)
	if err != nil {
		return Counts{}, fmt.Errorf("list fixtures league=%d season=%d: %w", leagueID, season, err)
	}

	var counts Counts
	resolver := s.session()
	for _, id := range ids {
		c, err := fn(ctx, resolver, id)
		if err != nil {
			counts.Errors++
			s.logger.WarnContext(ctx, "fetch fixture details failed", "listing", name, "fixture_id", id, "error", err)
			continue
		}
		counts.Add(c)
	}
	return counts, nil
}

// writeFixtures rejects a match whose venue or either team cannot be
// resolved. The returned set holds the ids written; false means the batch
// write failed.
func (s *FixtureService) writeFixtures(ctx context.Context, resolver *Resolver, entries []feed.FixtureEntry) (Counts, map[int64]struct{}, bool) {
	var counts Counts
	records := make([]fixture.Fixture, 0, len(entries))
	for _, entry := range entries {
		record, err := normalizer.Fixture(entry)
		if err != nil {
			counts.Errors++
			s.logger.DebugContext(ctx, "fixture rejected", "fixture_id", entry.Fixture.ID, "error", err)
			continue
		}
		if record.VenueID != nil {
			fragment, usable := normalizer.FixtureVenueFragment(entry)
			if !s.ensureVenue(ctx, resolver, *record.VenueID, fragment, usable) {
				counts.Errors++
				s.logger.WarnContext(ctx, "fixture venue unresolved", "fixture_id", record.ID, "venue_id", *record.VenueID)
				continue
			}
		}
		if !s.ensureTeam(ctx, resolver, entry.Teams.Home) || !s.ensureTeam(ctx, resolver, entry.Teams.Away) {
			counts.Errors++
			s.logger.WarnContext(ctx, "fixture team unresolved", "fixture_id", record.ID,
				"home_team_id", record.HomeTeamID, "away_team_id", record.AwayTeamID)
			continue
		}
		records = append(records, record)
	}

	records = batch.DedupeLast(records, func(f fixture.Fixture) (int64, bool) { return f.ID, f.ID > 0 })
	counts.Success = len(records)
	if !writeBatch(ctx, s.logger, "fixtures", &counts, records, s.repos.Fixtures.BulkUpsert) {
		return counts, nil, false
	}

	stored := make(map[int64]struct{}, len(records))
	for _, r := range records {
		stored[r.ID] = struct{}{}
	}
	return counts, stored, true
}

// writeEvents keeps an event whose player cannot be resolved but drops the
// player link; the snapshot still names the player.
func (s *FixtureService) writeEvents(ctx context.Context, resolver *Resolver, fixtureID int64, entries []feed.EventEntry) Counts {
	var counts Counts
	normalized := make([]fixture.Event, 0, len(entries))
	sources := make([]feed.EventEntry, 0, len(entries))
	for i, entry := range entries {
		record, err := normalizer.Event(fixtureID, i, entry)
		if err != nil {
			counts.Errors++
			continue
		}
		normalized = append(normalized, record)
		sources = append(sources, entry)
	}
	normalizer.AssignEventIDs(normalized)

	records := make([]fixture.Event, 0, len(normalized))
	for i, record := range normalized {
		entry := sources[i]
		if !s.ensureTeam(ctx, resolver, entry.Team) {
			counts.Errors++
			s.logger.WarnContext(ctx, "event team unresolved", "fixture_id", fixtureID, "team_id", record.TeamID)
			continue
		}
		if record.PlayerID != nil && !s.ensurePlayer(ctx, resolver, entry.Player) {
			record.PlayerID = nil
		}
		records = append(records, record)
	}

	records = batch.DedupeLast(records, func(e fixture.Event) (int64, bool) { return e.ID, e.ID > 0 })
	counts.Success = len(records)
	writeBatch(ctx, s.logger, "fixture_events", &counts, records, s.repos.Events.BulkUpsert)
	return counts
}

func (s *FixtureService) writeLineups(ctx context.Context, resolver *Resolver, fixtureID int64, entries []feed.LineupEntry) Counts {
	var counts Counts
	records := make([]fixture.Lineup, 0, len(entries))
	for _, entry := range entries {
		record, err := normalizer.Lineup(fixtureID, entry)
		if err != nil {
			counts.Errors++
			continue
		}
		ref := feed.TeamRef{ID: entry.Team.ID, Name: entry.Team.Name, Logo: entry.Team.Logo}
		if !s.ensureTeam(ctx, resolver, ref) {
			counts.Errors++
			s.logger.WarnContext(ctx, "lineup team unresolved", "fixture_id", fixtureID, "team_id", record.TeamID)
			continue
		}
		records = append(records, record)
	}

	records = batch.DedupeLast(records, func(l fixture.Lineup) (fixtureTeam, bool) {
		return fixtureTeam{l.FixtureID, l.TeamID}, l.TeamID > 0
	})
	counts.Success = len(records)
	writeBatch(ctx, s.logger, "fixture_lineups", &counts, records, s.repos.Lineups.BulkUpsert)
	return counts
}

func (s *FixtureService) writeStatistics(ctx context.Context, resolver *Resolver, fixtureID int64, entries []feed.TeamStatisticsEntry) Counts {
	var counts Counts
	records := make([]fixture.TeamStatistic, 0, len(entries))
	for _, entry := range entries {
		record, err := normalizer.TeamStatistics(fixtureID, entry)
		if err != nil {
			counts.Errors++
			continue
		}
		if !s.ensureTeam(ctx, resolver, entry.Team) {
			counts.Errors++
			s.logger.WarnContext(ctx, "statistics team unresolved", "fixture_id", fixtureID, "team_id", record.TeamID)
			continue
		}
		records = append(records, record)
	}

	records = batch.DedupeLast(records, func(st fixture.TeamStatistic) (fixtureTeam, bool) {
		return fixtureTeam{st.FixtureID, st.TeamID}, st.TeamID > 0
	})
	counts.Success = len(records)
	writeBatch(ctx, s.logger, "fixture_team_statistics", &counts, records, s.repos.Statistics.BulkUpsert)
	return counts
}

func (s *FixtureService) writePlayerStats(ctx context.Context, resolver *Resolver, fixtureID int64, entries []feed.FixturePlayersTeamEntry) Counts {
	var counts Counts
	records := make([]playerstats.FixtureStat, 0, len(entries)*16)
	for _, entry := range entries {
		rows, errs := normalizer.FixturePlayerStats(fixtureID, entry)
		counts.Errors += len(errs)
		if len(rows) == 0 {
			continue
		}
		if !s.ensureTeam(ctx, resolver, entry.Team) {
			counts.Errors += len(rows)
			s.logger.WarnContext(ctx, "player stats team unresolved", "fixture_id", fixtureID, "team_id", rows[0].TeamID)
			continue
		}
		for _, row := range rows {
			id := row.PlayerID
			ref := feed.PersonRef{ID: &id, Name: row.Player.Name, Photo: row.Player.Image}
			if !s.ensurePlayer(ctx, resolver, ref) {
				counts.Errors++
				s.logger.WarnContext(ctx, "player stats player unresolved", "fixture_id", fixtureID, "player_id", id)
				continue
			}
			records = append(records, row)
		}
	}

	records = batch.DedupeLast(records, func(st playerstats.FixtureStat) (playerFixtureKey, bool) {
		return playerFixtureKey{st.PlayerID, st.FixtureID, st.TeamID}, st.PlayerID > 0
	})
	counts.Success = len(records)
	writeBatch(ctx, s.logger, "player_fixture_stats", &counts, records, s.repos.FixtureStats.BulkUpsert)
	return counts
}

type fixtureTeam struct {
	fixture, team int64
}

type playerFixtureKey struct {
	player, fixture, team int64
}
