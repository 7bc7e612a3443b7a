package normalizer

import (
	"strings"

	"github.com/riskibarqy/football-stats/internal/domain/country"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
)

// Country rejects entries without a code; "World" style pseudo countries
// have none and cannot be keyed.
func Country(entry feed.CountryEntry) (country.Country, error) {
	if err := check(entry); err != nil {
		return country.Country{}, err
	}
	code := trimmedPtr(entry.Code)
	if code == nil {
		return country.Country{}, reject("country %q has no code", entry.Name)
	}
	return country.Country{
		Code: *code,
		Name: strings.TrimSpace(entry.Name),
		Flag: entry.Flag,
	}, nil
}

// CountryFromFragment accepts the country block embedded in a league entry.
func CountryFromFragment(entry feed.CountryEntry) (country.Country, bool) {
	out, err := Country(entry)
	return out, err == nil
}

// LeagueSeasons flattens one league entry into a record per season.
func LeagueSeasons(entry feed.LeagueEntry) ([]league.Season, error) {
	if err := check(entry); err != nil {
		return nil, err
	}
	if len(entry.Seasons) == 0 {
		return nil, reject("league %d has no seasons", entry.League.ID)
	}

	out := make([]league.Season, 0, len(entry.Seasons))
	for _, s := range entry.Seasons {
		out = append(out, league.Season{
			LeagueID:    entry.League.ID,
			Season:      s.Year,
			Name:        strings.TrimSpace(entry.League.Name),
			Type:        entry.League.Type,
			Logo:        entry.League.Logo,
			CountryName: entry.Country.Name,
			CountryCode: trimmedPtr(entry.Country.Code),
			StartDate:   ParseDate(s.Start),
			EndDate:     ParseDate(s.End),
			Current:     s.Current,
			Coverage: league.Coverage{
				Events:            s.Coverage.Fixtures.Events,
				Lineups:           s.Coverage.Fixtures.Lineups,
				FixtureStatistics: s.Coverage.Fixtures.StatisticsFixtures,
				PlayerStatistics:  s.Coverage.Fixtures.StatisticsPlayers,
				Standings:         s.Coverage.Standings,
				Players:           s.Coverage.Players,
				Injuries:          s.Coverage.Injuries,
			},
		})
	}
	return out, nil
}

func Venue(entry feed.VenueEntry) (venue.Venue, error) {
	id, ok := idOf(entry.ID)
	if !ok {
		return venue.Venue{}, reject("venue has no id")
	}
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return venue.Venue{}, reject("venue %d has no name", id)
	}
	return venue.Venue{
		ID:       id,
		Name:     name,
		Address:  entry.Address,
		City:     entry.City,
		Country:  entry.Country,
		Capacity: entry.Capacity,
		Surface:  entry.Surface,
		Image:    entry.Image,
	}, nil
}

// VenueFromFragment accepts a partial venue embedded in another payload.
// Without both an id and a name the fragment is unusable.
func VenueFromFragment(entry feed.VenueEntry) (venue.Venue, bool) {
	out, err := Venue(entry)
	return out, err == nil
}

func Team(entry feed.TeamEntry) (team.Team, error) {
	if err := check(entry.Team); err != nil {
		return team.Team{}, err
	}
	return team.Team{
		ID:       entry.Team.ID,
		Name:     strings.TrimSpace(entry.Team.Name),
		Code:     entry.Team.Code,
		Country:  entry.Team.Country,
		Founded:  entry.Team.Founded,
		National: entry.Team.National,
		Logo:     entry.Team.Logo,
		VenueID:  optionalID(entry.Venue.ID),
	}, nil
}

// TeamFromFragment builds a minimal team from an embedded reference.
func TeamFromFragment(ref feed.TeamRef) (team.Team, bool) {
	id, ok := idOf(ref.ID)
	name := strings.TrimSpace(ref.Name)
	if !ok || name == "" {
		return team.Team{}, false
	}
	return team.Team{ID: id, Name: name, Logo: ref.Logo}, true
}
