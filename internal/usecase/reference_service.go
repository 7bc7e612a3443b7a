package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-stats/internal/domain/country"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
	"github.com/riskibarqy/football-stats/internal/normalizer"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
)

type CountryService struct {
	deps
}

// UpdateByCode refreshes one country. The boolean reports whether the
// source knew the code.
func (s *CountryService) UpdateByCode(ctx context.Context, code string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CountryService.UpdateByCode")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return false, fmt.Errorf("%w: country code is required", ErrInvalidInput)
	}
	page, err := s.source.Countries(ctx, feed.Query{Code: code})
	if err != nil {
		return false, fmt.Errorf("fetch country code=%s: %w", code, err)
	}

	counts, written := s.writeCountries(ctx, page.Entries)
	if !written {
		return false, fmt.Errorf("store country code=%s: %w", code, ErrDependencyUnavailable)
	}
	return counts.Success > 0, nil
}

// RefreshAll reloads the whole country reference list.
func (s *CountryService) RefreshAll(ctx context.Context) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CountryService.RefreshAll")
	defer span.End()

	return walkPages(ctx, s.logger, "countries", 0,
		func(ctx context.Context, page int) (feed.Page[feed.CountryEntry], error) {
			return s.source.Countries(ctx, feed.Query{Page: page})
		},
		func(ctx context.Context, entries []feed.CountryEntry) Counts {
			counts, _ := s.writeCountries(ctx, entries)
			return counts
		},
	)
}

// writeCountries reports false when the batch write failed.
func (s *CountryService) writeCountries(ctx context.Context, entries []feed.CountryEntry) (Counts, bool) {
	var counts Counts
	records := make([]country.Country, 0, len(entries))
	for _, entry := range entries {
		record, err := normalizer.Country(entry)
		if err != nil {
			counts.Errors++
			s.logger.DebugContext(ctx, "country rejected", "name", entry.Name, "error", err)
			continue
		}
		records = append(records, record)
	}
	records = batch.DedupeLast(records, func(c country.Country) (string, bool) { return c.Code, c.Code != "" })
	counts.Success = len(records)
	written := writeBatch(ctx, s.logger, "countries", &counts, records, s.repos.Countries.BulkUpsert)
	return counts, written
}

type LeagueService struct {
	deps
}

// UpdateByID refreshes one league season. The boolean reports whether the
// requested season was stored.
func (s *LeagueService) UpdateByID(ctx context.Context, leagueID int64, season int) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateByID")
	defer span.End()

	key := league.Key{LeagueID: leagueID, Season: season}
	if !key.Valid() {
		return false, fmt.Errorf("%w: league id and season are required", ErrInvalidInput)
	}
	page, err := s.source.Leagues(ctx, feed.Query{ID: leagueID, Season: season})
	if err != nil {
		return false, fmt.Errorf("fetch league=%d season=%d: %w", leagueID, season, err)
	}

	stored, _, written := s.writeSeasons(ctx, s.session(), page.Entries, season)
	if !written {
		return false, fmt.Errorf("store league=%d season=%d: %w", leagueID, season, ErrDependencyUnavailable)
	}
	_, ok := stored[key]
	return ok, nil
}

// UpdateBySeasonFromFeed discovers every league running in season and
// stores its league season rows.
func (s *LeagueService) UpdateBySeasonFromFeed(ctx context.Context, season int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateBySeasonFromFeed")
	defer span.End()

	if season <= 0 {
		return Counts{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	resolver := s.session()
	return walkPages(ctx, s.logger, "leagues", 0,
		func(ctx context.Context, page int) (feed.Page[feed.LeagueEntry], error) {
			return s.source.Leagues(ctx, feed.Query{Season: season, Page: page})
		},
		func(ctx context.Context, entries []feed.LeagueEntry) Counts {
			_, counts, _ := s.writeSeasons(ctx, resolver, entries, season)
			return counts
		},
	)
}

// writeSeasons stores the league seasons of entries. A non-zero season
// keeps only that year. The returned set holds the keys written; false
// means the batch write failed.
func (s *LeagueService) writeSeasons(ctx context.Context, resolver *Resolver, entries []feed.LeagueEntry, season int) (map[league.Key]struct{}, Counts, bool) {
	var counts Counts
	records := make([]league.Season, 0, len(entries))
	for _, entry := range entries {
		seasons, err := normalizer.LeagueSeasons(entry)
		if err != nil {
			counts.Errors++
			s.logger.DebugContext(ctx, "league rejected", "league_id", entry.League.ID, "error", err)
			continue
		}
		if season > 0 {
			seasons = filterSeason(seasons, season)
		}
		if len(seasons) == 0 {
			continue
		}
		if seasons[0].CountryCode != nil && !s.ensureCountry(ctx, resolver, entry.Country) {
			counts.Errors += len(seasons)
			s.logger.WarnContext(ctx, "league country unresolved", "league_id", entry.League.ID, "country", *seasons[0].CountryCode)
			continue
		}
		records = append(records, seasons...)
	}

	records = batch.DedupeLast(records, func(l league.Season) (league.Key, bool) { return l.Key(), l.Key().Valid() })
	counts.Success = len(records)
	if !writeBatch(ctx, s.logger, "league_seasons", &counts, records, s.repos.Leagues.BulkUpsert) {
		return nil, counts, false
	}

	stored := make(map[league.Key]struct{}, len(records))
	for _, r := range records {
		stored[r.Key()] = struct{}{}
	}
	return stored, counts, true
}

func filterSeason(in []league.Season, season int) []league.Season {
	out := in[:0]
	for _, s := range in {
		if s.Season == season {
			out = append(out, s)
		}
	}
	return out
}

type VenueService struct {
	deps
}

func (s *VenueService) UpdateByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.UpdateByID")
	defer span.End()

	if id <= 0 {
		return false, fmt.Errorf("%w: venue id is required", ErrInvalidInput)
	}
	page, err := s.source.Venues(ctx, feed.Query{ID: id})
	if err != nil {
		return false, fmt.Errorf("fetch venue id=%d: %w", id, err)
	}

	var counts Counts
	records := make([]venue.Venue, 0, len(page.Entries))
	for _, entry := range page.Entries {
		record, err := normalizer.Venue(entry)
		if err != nil {
			counts.Errors++
			continue
		}
		if record.ID == id {
			records = append(records, record)
		}
	}
	records = batch.DedupeLast(records, func(v venue.Venue) (int64, bool) { return v.ID, v.ID > 0 })
	counts.Success = len(records)
	if !writeBatch(ctx, s.logger, "venues", &counts, records, s.repos.Venues.BulkUpsert) {
		return false, fmt.Errorf("store venue id=%d: %w", id, ErrDependencyUnavailable)
	}
	return counts.Success > 0, nil
}

type TeamService struct {
	deps
}

func (s *TeamService) UpdateByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateByID")
	defer span.End()

	if id <= 0 {
		return false, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	page, err := s.source.Teams(ctx, feed.Query{ID: id})
	if err != nil {
		return false, fmt.Errorf("fetch team id=%d: %w", id, err)
	}

	entries := make([]feed.TeamEntry, 0, len(page.Entries))
	for _, entry := range page.Entries {
		if entry.Team.ID == id {
			entries = append(entries, entry)
		}
	}
	counts, written := s.writeTeams(ctx, entries)
	if !written {
		return false, fmt.Errorf("store team id=%d: %w", id, ErrDependencyUnavailable)
	}
	if counts.Success == 0 && counts.Errors > 0 {
		return false, fmt.Errorf("store team id=%d: %w", id, ErrRejected)
	}
	return counts.Success > 0, nil
}

// UpdateByLeagueSeason stores the teams of a league season together with
// their home venues.
func (s *TeamService) UpdateByLeagueSeason(ctx context.Context, leagueID int64, season int, maxPages int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateByLeagueSeason")
	defer span.End()

	return walkPages(ctx, s.logger, "teams", maxPages,
		func(ctx context.Context, page int) (feed.Page[feed.TeamEntry], error) {
			return s.source.Teams(ctx, feed.Query{League: leagueID, Season: season, Page: page})
		},
		func(ctx context.Context, entries []feed.TeamEntry) Counts {
			counts, _ := s.writeTeams(ctx, entries)
			return counts
		},
	)
}

// writeTeams upserts the embedded venues first. Team venue links are soft,
// so a venue that cannot be stored does not reject its team. False means
// the team write failed.
func (s *TeamService) writeTeams(ctx context.Context, entries []feed.TeamEntry) (Counts, bool) {
	var counts Counts
	teams := make([]team.Team, 0, len(entries))
	venues := make([]venue.Venue, 0, len(entries))
	for _, entry := range entries {
		record, err := normalizer.Team(entry)
		if err != nil {
			counts.Errors++
			s.logger.DebugContext(ctx, "team rejected", "team_id", entry.Team.ID, "error", err)
			continue
		}
		teams = append(teams, record)
		if v, ok := normalizer.VenueFromFragment(entry.Venue); ok {
			venues = append(venues, v)
		}
	}

	if _, err := s.repos.Venues.BulkUpsert(ctx, venues); err != nil {
		s.logger.WarnContext(ctx, "team venues write failed", "venues", len(venues), "error", err)
	}

	teams = batch.DedupeLast(teams, func(t team.Team) (int64, bool) { return t.ID, t.ID > 0 })
	counts.Success = len(teams)
	written := writeBatch(ctx, s.logger, "teams", &counts, teams, s.repos.Teams.BulkUpsert)
	return counts, written
}
