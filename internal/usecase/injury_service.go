package usecase

import (
	"context"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/injury"
	"github.com/riskibarqy/football-stats/internal/normalizer"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
)

type InjuryService struct {
	deps
}

// UpdateByLeagueSeason walks the injury listing of a league season. An
// injury needs its player, team and match stored.
func (s *InjuryService) UpdateByLeagueSeason(ctx context.Context, leagueID int64, season int, maxPages int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InjuryService.UpdateByLeagueSeason")
	defer span.End()

	resolver := s.session()
	return walkPages(ctx, s.logger, "injuries", maxPages,
		func(ctx context.Context, page int) (feed.Page[feed.InjuryEntry], error) {
			return s.source.Injuries(ctx, feed.Query{League: leagueID, Season: season, Page: page})
		},
		func(ctx context.Context, entries []feed.InjuryEntry) Counts {
			return s.writeInjuries(ctx, resolver, entries)
		},
	)
}

func (s *InjuryService) writeInjuries(ctx context.Context, resolver *Resolver, entries []feed.InjuryEntry) Counts {
	var counts Counts
	records := make([]injury.Injury, 0, len(entries))
	for _, entry := range entries {
		record, err := normalizer.Injury(entry)
		if err != nil {
			counts.Errors++
			continue
		}
		person := feed.PersonRef{ID: entry.Player.ID, Name: entry.Player.Name, Photo: entry.Player.Photo}
		if !s.ensurePlayer(ctx, resolver, person) ||
			!s.ensureTeam(ctx, resolver, entry.Team) ||
			!s.ensureFixture(ctx, resolver, record.FixtureID) {
			counts.Errors++
			s.logger.WarnContext(ctx, "injury dependency unresolved",
				"player_id", record.PlayerID, "team_id", record.TeamID, "fixture_id", record.FixtureID)
			continue
		}
		records = append(records, record)
	}

	records = batch.DedupeLast(records, func(i injury.Injury) ([2]int64, bool) {
		return [2]int64{i.PlayerID, i.FixtureID}, i.PlayerID > 0 && i.FixtureID > 0
	})
	counts.Success = len(records)
	writeBatch(ctx, s.logger, "injuries", &counts, records, s.repos.Injuries.BulkUpsert)
	return counts
}
