package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

var errSourceDown = errors.New("source down")

// fakeSource serves canned pages. Listing fields hold one slice per page;
// fails maps "resource:page" to an error.
type fakeSource struct {
	mu    sync.Mutex
	calls map[string]int
	fails map[string]error

	countries    []feed.CountryEntry
	leagues      []feed.LeagueEntry
	venues       map[int64]feed.VenueEntry
	teams        map[int64]feed.TeamEntry
	teamPages    [][]feed.TeamEntry
	profiles     map[int64]feed.PlayerInfo
	playerPages  [][]feed.PlayerEntry
	coaches      map[int64]feed.CoachEntry
	fixtures     map[int64]feed.FixtureEntry
	fixturePages [][]feed.FixtureEntry
	events       map[int64][]feed.EventEntry
	statistics   map[int64][]feed.TeamStatisticsEntry
	injuryPages  [][]feed.InjuryEntry
	timezones    []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls:      make(map[string]int),
		fails:      make(map[string]error),
		venues:     make(map[int64]feed.VenueEntry),
		teams:      make(map[int64]feed.TeamEntry),
		profiles:   make(map[int64]feed.PlayerInfo),
		coaches:    make(map[int64]feed.CoachEntry),
		fixtures:   make(map[int64]feed.FixtureEntry),
		events:     make(map[int64][]feed.EventEntry),
		statistics: make(map[int64][]feed.TeamStatisticsEntry),
	}
}

func (f *fakeSource) hit(resource string, page int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[resource]++
	if page < 1 {
		page = 1
	}
	if err, ok := f.fails[resource+":"+strconv.Itoa(page)]; ok {
		return err
	}
	return f.fails[resource]
}

func (f *fakeSource) callCount(resource string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[resource]
}

func paged[T any](pages [][]T, page int) feed.Page[T] {
	if page < 1 {
		page = 1
	}
	if page > len(pages) {
		return feed.Page[T]{Current: page, Total: len(pages)}
	}
	return feed.Page[T]{Entries: pages[page-1], Current: page, Total: len(pages)}
}

func single[T any](entry T, ok bool) feed.Page[T] {
	if !ok {
		return feed.Page[T]{Current: 1, Total: 1}
	}
	return feed.Page[T]{Entries: []T{entry}, Current: 1, Total: 1}
}

func (f *fakeSource) Countries(_ context.Context, q feed.Query) (feed.Page[feed.CountryEntry], error) {
	if err := f.hit("countries", q.Page); err != nil {
		return feed.Page[feed.CountryEntry]{}, err
	}
	if q.Code == "" {
		return feed.Page[feed.CountryEntry]{Entries: f.countries, Current: 1, Total: 1}, nil
	}
	for _, c := range f.countries {
		if c.Code != nil && *c.Code == q.Code {
			return single(c, true), nil
		}
	}
	return single(feed.CountryEntry{}, false), nil
}

func (f *fakeSource) Leagues(_ context.Context, q feed.Query) (feed.Page[feed.LeagueEntry], error) {
	if err := f.hit("leagues", q.Page); err != nil {
		return feed.Page[feed.LeagueEntry]{}, err
	}
	out := make([]feed.LeagueEntry, 0, len(f.leagues))
	for _, l := range f.leagues {
		if q.ID == 0 || l.League.ID == q.ID {
			out = append(out, l)
		}
	}
	return feed.Page[feed.LeagueEntry]{Entries: out, Current: 1, Total: 1}, nil
}

func (f *fakeSource) Venues(_ context.Context, q feed.Query) (feed.Page[feed.VenueEntry], error) {
	if err := f.hit("venues", q.Page); err != nil {
		return feed.Page[feed.VenueEntry]{}, err
	}
	v, ok := f.venues[q.ID]
	return single(v, ok), nil
}

func (f *fakeSource) Teams(_ context.Context, q feed.Query) (feed.Page[feed.TeamEntry], error) {
	if err := f.hit("teams", q.Page); err != nil {
		return feed.Page[feed.TeamEntry]{}, err
	}
	if q.ID > 0 {
		t, ok := f.teams[q.ID]
		return single(t, ok), nil
	}
	return paged(f.teamPages, q.Page), nil
}

func (f *fakeSource) Players(_ context.Context, q feed.Query) (feed.Page[feed.PlayerEntry], error) {
	if err := f.hit("players", q.Page); err != nil {
		return feed.Page[feed.PlayerEntry]{}, err
	}
	return paged(f.playerPages, q.Page), nil
}

func (f *fakeSource) PlayerProfiles(_ context.Context, q feed.Query) (feed.Page[feed.PlayerProfileEntry], error) {
	if err := f.hit("players/profiles", q.Page); err != nil {
		return feed.Page[feed.PlayerProfileEntry]{}, err
	}
	p, ok := f.profiles[q.Player]
	return single(feed.PlayerProfileEntry{Player: p}, ok), nil
}

func (f *fakeSource) Coaches(_ context.Context, q feed.Query) (feed.Page[feed.CoachEntry], error) {
	if err := f.hit("coachs", q.Page); err != nil {
		return feed.Page[feed.CoachEntry]{}, err
	}
	if q.ID > 0 {
		c, ok := f.coaches[q.ID]
		return single(c, ok), nil
	}
	out := make([]feed.CoachEntry, 0, len(f.coaches))
	for _, c := range f.coaches {
		if c.Team.ID != nil && *c.Team.ID == q.Team {
			out = append(out, c)
		}
	}
	return feed.Page[feed.CoachEntry]{Entries: out, Current: 1, Total: 1}, nil
}

func (f *fakeSource) Fixtures(_ context.Context, q feed.Query) (feed.Page[feed.FixtureEntry], error) {
	if err := f.hit("fixtures", q.Page); err != nil {
		return feed.Page[feed.FixtureEntry]{}, err
	}
	if q.ID > 0 {
		fx, ok := f.fixtures[q.ID]
		return single(fx, ok), nil
	}
	return paged(f.fixturePages, q.Page), nil
}

func (f *fakeSource) FixtureEvents(_ context.Context, fixtureID int64) (feed.Page[feed.EventEntry], error) {
	if err := f.hit("fixtures/events", 1); err != nil {
		return feed.Page[feed.EventEntry]{}, err
	}
	return feed.Page[feed.EventEntry]{Entries: f.events[fixtureID], Current: 1, Total: 1}, nil
}

func (f *fakeSource) FixtureLineups(_ context.Context, _ int64) (feed.Page[feed.LineupEntry], error) {
	if err := f.hit("fixtures/lineups", 1); err != nil {
		return feed.Page[feed.LineupEntry]{}, err
	}
	return feed.Page[feed.LineupEntry]{Current: 1, Total: 1}, nil
}

func (f *fakeSource) FixtureStatistics(_ context.Context, fixtureID int64) (feed.Page[feed.TeamStatisticsEntry], error) {
	if err := f.hit("fixtures/statistics", 1); err != nil {
		return feed.Page[feed.TeamStatisticsEntry]{}, err
	}
	return feed.Page[feed.TeamStatisticsEntry]{Entries: f.statistics[fixtureID], Current: 1, Total: 1}, nil
}

func (f *fakeSource) FixturePlayers(_ context.Context, _ int64) (feed.Page[feed.FixturePlayersTeamEntry], error) {
	if err := f.hit("fixtures/players", 1); err != nil {
		return feed.Page[feed.FixturePlayersTeamEntry]{}, err
	}
	return feed.Page[feed.FixturePlayersTeamEntry]{Current: 1, Total: 1}, nil
}

func (f *fakeSource) Injuries(_ context.Context, q feed.Query) (feed.Page[feed.InjuryEntry], error) {
	if err := f.hit("injuries", q.Page); err != nil {
		return feed.Page[feed.InjuryEntry]{}, err
	}
	return paged(f.injuryPages, q.Page), nil
}

func (f *fakeSource) Timezones(_ context.Context) ([]string, error) {
	if err := f.hit("timezone", 1); err != nil {
		return nil, err
	}
	return f.timezones, nil
}

func memoryRepositories(store *memory.Store) Repositories {
	logger := logging.NewNop()
	return Repositories{
		Countries:    memory.NewCountryRepository(store, logger),
		Leagues:      memory.NewLeagueRepository(store, logger),
		Venues:       memory.NewVenueRepository(store, logger),
		Teams:        memory.NewTeamRepository(store, logger),
		Players:      memory.NewPlayerRepository(store, logger),
		Coaches:      memory.NewCoachRepository(store, logger),
		Fixtures:     memory.NewFixtureRepository(store, logger),
		Events:       memory.NewFixtureEventRepository(store, logger),
		Lineups:      memory.NewFixtureLineupRepository(store, logger),
		Statistics:   memory.NewFixtureStatisticRepository(store, logger),
		FixtureStats: memory.NewPlayerFixtureStatRepository(store, logger),
		SeasonStats:  memory.NewPlayerSeasonStatRepository(store, logger),
		Injuries:     memory.NewInjuryRepository(store, logger),
		Timezones:    memory.NewTimezoneRepository(store, logger),
	}
}

func newTestServices(source Source) (*Services, Repositories) {
	repos := memoryRepositories(memory.NewStore())
	return NewServices(source, repos, logging.NewNop()), repos
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func teamRef(id int64, name string) feed.TeamRef {
	return feed.TeamRef{ID: int64Ptr(id), Name: name}
}

func teamEntry(id int64, name string) feed.TeamEntry {
	return feed.TeamEntry{Team: feed.TeamInfo{ID: id, Name: name}}
}

// fixtureEntry builds a finished match. venueID 0 leaves the venue empty.
func fixtureEntry(id, home, away, venueID int64, venueName string) feed.FixtureEntry {
	var e feed.FixtureEntry
	e.Fixture.ID = id
	e.Fixture.Status.Short = "FT"
	e.Fixture.Status.Long = "Match Finished"
	if venueID > 0 {
		e.Fixture.Venue.ID = int64Ptr(venueID)
		e.Fixture.Venue.Name = venueName
	}
	e.League.ID = 39
	e.League.Season = 2024
	e.Teams.Home = teamRef(home, "Home "+strconv.FormatInt(home, 10))
	e.Teams.Away = teamRef(away, "Away "+strconv.FormatInt(away, 10))
	return e
}
